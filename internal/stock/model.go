package stock

import "github.com/shopspring/decimal"

// Item is a purchasable drone as reported by the Stock Service.
// Quantity is the units still available, not a cart amount.
type Item struct {
	StockID     int64           `json:"stock_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}
