package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/phxkhxwat/Project-Adv-Compro/internal/address"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/cart"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/order"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/session"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/stock"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/storage"
)

// cartLineView is what the pages rendered per line.
type cartLineView struct {
	StockID  int64           `json:"stock_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartView struct {
	Items []cartLineView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func viewOf(lines []cart.Line) cartView {
	v := cartView{Items: make([]cartLineView, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		v.Items = append(v.Items, cartLineView{
			StockID:  l.StockID,
			Name:     l.DisplayName(),
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Subtotal: l.Subtotal(),
		})
		v.Total = v.Total.Add(l.Subtotal())
	}
	return v
}

func writeCartError(c *gin.Context, err error) {
	var sub *order.SubmissionError
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInsufficientStock), errors.Is(err, cart.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/login"})
	case errors.Is(err, cart.ErrNoAddress):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error(), "redirect": "/profile"})
	case errors.As(err, &sub):
		c.JSON(http.StatusBadGateway, gin.H{"error": sub.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func getCartHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, viewOf(mgr.Lines()))
	}
}

func addItemHandler(mgr *cart.Manager, catalog *stock.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			StockID  int64 `json:"stock_id"`
			Quantity int   `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		item, err := catalog.Lookup(c.Request.Context(), req.StockID)
		if err != nil {
			if errors.Is(err, stock.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		lines, err := mgr.AddItem(c.Request.Context(), *item, req.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, viewOf(lines))
	}
}

func updateItemHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		stockID, err := strconv.ParseInt(c.Param("stock_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock id"})
			return
		}
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		// quantity < 1 is a no-op by contract; the unchanged cart comes back
		lines, err := mgr.UpdateQuantity(c.Request.Context(), stockID, req.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, viewOf(lines))
	}
}

func removeItemHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		stockID, err := strconv.ParseInt(c.Param("stock_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock id"})
			return
		}
		lines, err := mgr.RemoveItem(c.Request.Context(), stockID)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, viewOf(lines))
	}
}

func checkoutHandler(mgr *cart.Manager, st storage.Store, addresses *address.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user, err := session.Load(ctx, st)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var addr *address.Address
		if user != nil {
			addr, err = addresses.Active(ctx, user.UserID)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
		}
		orderID, err := mgr.Checkout(ctx, user, addr)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
	}
}

func catalogHandler(catalog *stock.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Refresh(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		items := stock.Filter(catalog.Items(), c.Query("q"))
		if c.Query("sort") == "price" {
			stock.SortByPrice(items)
		}
		c.JSON(http.StatusOK, gin.H{"q": c.Query("q"), "items": items})
	}
}

func listOrdersHandler(orders *order.Client, st storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user, err := session.Load(ctx, st)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": cart.ErrNotAuthenticated.Error(), "redirect": "/login"})
			return
		}
		list, err := orders.ListByUser(ctx, user.UserID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func loginHandler(st storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID int64  `json:"user_id"`
			Email  string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and email are required"})
			return
		}
		if err := session.Save(c.Request.Context(), st, session.Identity{UserID: req.UserID, Email: req.Email}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user_id": req.UserID, "email": req.Email})
	}
}

func logoutHandler(st storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := session.Clear(c.Request.Context(), st); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
