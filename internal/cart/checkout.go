package cart

import (
	"context"
	"fmt"

	"github.com/phxkhxwat/Project-Adv-Compro/internal/address"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/order"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/session"
)

// Submitter places a built order exactly once per call.
type Submitter interface {
	PlaceOrder(ctx context.Context, req order.CreateRequest) (*order.Receipt, error)
}

// Checkout runs the gate chain and submits the cart as one order:
//
//	no user    -> ErrNotAuthenticated (caller redirects to login)
//	no address -> ErrNoAddress        (caller redirects to profile)
//	no lines   -> ErrEmptyCart
//
// Only one attempt may be in flight per Manager; a concurrent call gets
// ErrCheckoutInFlight instead of double-submitting the same snapshot.
// On success the cart is cleared, in memory and in storage, and the order
// id is returned for display. On any failure the cart is untouched so the
// user can retry immediately.
func (m *Manager) Checkout(ctx context.Context, user *session.Identity, addr *address.Address) (string, error) {
	m.mu.Lock()
	if m.checkingOut {
		m.mu.Unlock()
		return "", ErrCheckoutInFlight
	}
	if user == nil {
		m.mu.Unlock()
		return "", ErrNotAuthenticated
	}
	if addr == nil {
		m.mu.Unlock()
		return "", ErrNoAddress
	}
	if len(m.lines) == 0 {
		m.mu.Unlock()
		return "", ErrEmptyCart
	}

	req := order.CreateRequest{
		UserID:     user.UserID,
		AddressID:  addr.ID,
		TotalPrice: m.total(),
		Items:      make([]order.Item, 0, len(m.lines)),
	}
	for _, l := range m.snapshot() {
		req.Items = append(req.Items, order.Item{
			StockID:  l.StockID,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
		})
	}
	m.checkingOut = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.checkingOut = false
		m.mu.Unlock()
	}()

	rcpt, err := m.orders.PlaceOrder(ctx, req)
	if err != nil {
		return "", err
	}

	// The single state transition that empties the cart.
	m.mu.Lock()
	m.lines = make(map[int64]*Line)
	m.mu.Unlock()
	if err := m.store.ClearCart(ctx); err != nil {
		return rcpt.OrderID, fmt.Errorf("clear cart after order %s: %w", rcpt.OrderID, err)
	}
	return rcpt.OrderID, nil
}
