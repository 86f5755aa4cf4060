// Package cart owns the shopping cart lifecycle: add, update and remove
// with write-through persistence, exact totals, and the checkout protocol
// against the Order Service.
package cart

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/phxkhxwat/Project-Adv-Compro/internal/stock"
	"github.com/phxkhxwat/Project-Adv-Compro/internal/storage"
)

// Line is one product's presence in the cart. UnitPrice is snapshotted
// from the Stock Service when the line is first created and never changes
// afterwards, merges included.
type Line struct {
	StockID   int64
	Quantity  int
	UnitPrice decimal.Decimal
	Name      string
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DisplayName falls back to a synthesized label when the stock item
// carried no name.
func (l Line) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Drone Stock %d", l.StockID)
}

// Manager is the authoritative in-memory cart, mirrored to a Store on
// every mutation. One Manager instance owns one cart; other instances
// sharing the same Store reconcile last-writer-wins, which is accepted.
type Manager struct {
	mu          sync.Mutex
	store       storage.Store
	orders      Submitter
	lines       map[int64]*Line
	checkingOut bool
}

func NewManager(store storage.Store, orders Submitter) *Manager {
	return &Manager{
		store:  store,
		orders: orders,
		lines:  make(map[int64]*Line),
	}
}

// Load hydrates the cart from the persisted slot, replacing the in-memory
// state. Absent or malformed storage is an empty cart, never an error;
// lines that no longer satisfy the invariants are dropped.
func (m *Manager) Load(ctx context.Context) ([]Line, error) {
	persisted, err := m.store.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	next := make(map[int64]*Line, len(persisted))
	for _, p := range persisted {
		if p.StockID == 0 || p.Quantity < 1 {
			continue
		}
		next[p.StockID] = &Line{
			StockID:   p.StockID,
			Quantity:  p.Quantity,
			UnitPrice: p.Price,
			Name:      p.Name,
		}
	}
	m.mu.Lock()
	m.lines = next
	out := m.snapshot()
	m.mu.Unlock()
	return out, nil
}

// AddItem validates the requested quantity against the item's available
// stock and creates or merges the line. The stock check is best-effort:
// it runs against the snapshot the caller fetched, which may be stale.
func (m *Manager) AddItem(ctx context.Context, item stock.Item, qty int) ([]Line, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	want := qty
	if existing, ok := m.lines[item.StockID]; ok {
		want += existing.Quantity
	}
	if want > item.Quantity {
		return nil, ErrInsufficientStock
	}

	if existing, ok := m.lines[item.StockID]; ok {
		existing.Quantity = want
	} else {
		m.lines[item.StockID] = &Line{
			StockID:   item.StockID,
			Quantity:  qty,
			UnitPrice: item.Price,
			Name:      item.Name,
		}
	}
	if err := m.persist(ctx); err != nil {
		return nil, err
	}
	return m.snapshot(), nil
}

// UpdateQuantity overwrites a line's quantity. Values below 1 are a no-op,
// as is an unknown stock id. The new quantity is not re-checked against
// current stock availability; only AddItem does that.
func (m *Manager) UpdateQuantity(ctx context.Context, stockID int64, qty int) ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line, ok := m.lines[stockID]
	if !ok || qty < 1 {
		return m.snapshot(), nil
	}
	line.Quantity = qty
	if err := m.persist(ctx); err != nil {
		return nil, err
	}
	return m.snapshot(), nil
}

// RemoveItem drops the line if present. Removing an absent id is a no-op.
func (m *Manager) RemoveItem(ctx context.Context, stockID int64) ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.lines, stockID)
	if err := m.persist(ctx); err != nil {
		return nil, err
	}
	return m.snapshot(), nil
}

// Total is recomputed from the lines on every call, never cached.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total()
}

// Lines returns the current line set ordered by stock id.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Manager) total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range m.lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// snapshot must be called with mu held.
func (m *Manager) snapshot() []Line {
	out := make([]Line, 0, len(m.lines))
	for _, l := range m.lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockID < out[j].StockID })
	return out
}

// persist mirrors the line set to the Store. Write-through: callers hold
// mu, so no read observes the cart before the write lands.
func (m *Manager) persist(ctx context.Context) error {
	lines := make([]storage.CartLine, 0, len(m.lines))
	for _, l := range m.lines {
		lines = append(lines, storage.CartLine{
			StockID:  l.StockID,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Name:     l.Name,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].StockID < lines[j].StockID })
	if err := m.store.SaveCart(ctx, lines); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
