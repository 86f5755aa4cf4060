// Package storage is the durable local-storage port behind the cart.
// It mirrors the two slots the storefront kept in browser localStorage:
// the serialized cart and the logged-in identity.
package storage

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	CartSlot    = "cart"
	SessionSlot = "user"
)

// CartLine is the persisted shape of one cart entry.
type CartLine struct {
	StockID  int64           `json:"stock_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name,omitempty"`
}

// Session is the persisted logged-in identity.
type Session struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

type Store interface {
	LoadCart(ctx context.Context) ([]CartLine, error)
	SaveCart(ctx context.Context, lines []CartLine) error
	ClearCart(ctx context.Context) error

	LoadSession(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, s *Session) error
	ClearSession(ctx context.Context) error
}

// decodeLines recovers a nil cart from a malformed payload. A corrupt slot
// is never an error: the cart is reconstructible, the user just starts empty.
func decodeLines(raw []byte) []CartLine {
	if len(raw) == 0 {
		return nil
	}
	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil
	}
	return lines
}

// decodeSession returns nil (logged out) for absent or malformed payloads.
func decodeSession(raw []byte) *Session {
	if len(raw) == 0 {
		return nil
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.UserID == 0 {
		return nil
	}
	return &s
}
