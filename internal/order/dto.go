package order

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one cart line reduced to what the Order Service needs.
// swagger:model OrderItem
type Item struct {
	StockID  int64           `json:"stock_id" example:"1"`
	Quantity int             `json:"quantity" example:"2"`
	Price    decimal.Decimal `json:"price" example:"6700"`
}

// CreateRequest is the one-shot order submission payload.
// swagger:model CreateOrderRequest
type CreateRequest struct {
	UserID     int64           `json:"user_id" example:"7"`
	AddressID  int64           `json:"address_id" example:"3"`
	TotalPrice decimal.Decimal `json:"total_price" example:"25400"`
	Items      []Item          `json:"items"`
}

// Receipt carries the order identifier returned on success. The service
// has answered with both integers and opaque strings, so both are accepted
// and normalized to a string for display.
type Receipt struct {
	OrderID string `json:"order_id"`
}

func (r *Receipt) UnmarshalJSON(b []byte) error {
	var raw struct {
		OrderID json.RawMessage `json:"order_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.OrderID) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.OrderID, &s); err == nil {
		r.OrderID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.OrderID, &n); err != nil {
		return err
	}
	r.OrderID = n.String()
	return nil
}

// Order is a past order as listed by the history endpoints.
type Order struct {
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	AddressID  int64           `json:"address_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}
