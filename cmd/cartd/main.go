package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phxkhxwat/Project-Adv-Compro/internal/address"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/cart"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/config"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/httpx"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/order"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/stock"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/storage"
)

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		return storage.NewFile(cfg.StateDir)
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return storage.NewPG(pool), nil
	case "redis":
		return storage.NewRedis(cfg.RedisAddr), nil
	default:
		return nil, fmt.Errorf("unknown CART_STORE %q", cfg.StoreBackend)
	}
}

func main() {
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("[cartd] store: %v", err)
	}

	stockClient := stock.NewClient(cfg.StockBaseURL)
	catalog := stock.NewCatalog(stockClient)
	orders := order.NewClient(cfg.OrderBaseURL)
	addresses := address.NewClient(cfg.AddressBaseURL)

	mgr := cart.NewManager(st, orders)
	if lines, err := mgr.Load(context.Background()); err != nil {
		log.Printf("[cartd] cart hydrate failed, starting empty: %v", err)
	} else {
		log.Printf("[cartd] cart hydrated with %d line(s)", len(lines))
	}

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/catalog", catalogHandler(catalog))

	r.GET("/cart", getCartHandler(mgr))
	r.POST("/cart/items", addItemHandler(mgr, catalog))
	r.PUT("/cart/items/:stock_id", updateItemHandler(mgr))
	r.DELETE("/cart/items/:stock_id", removeItemHandler(mgr))

	r.POST("/checkout", checkoutHandler(mgr, st, addresses))

	r.GET("/orders", listOrdersHandler(orders, st))

	r.POST("/session", loginHandler(st))
	r.DELETE("/session", logoutHandler(st))

	log.Printf("cartd listening on %s", cfg.CartAddr)
	log.Fatal(r.Run(cfg.CartAddr))
}
