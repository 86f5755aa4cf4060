package stock

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("stock item not found")

// Catalog is a read-through cache over the Stock Service, keyed by stock id.
// It is refreshed explicitly (once per catalog render); lookups between
// refreshes see the same snapshot, so stock checks against it are
// best-effort by construction.
type Catalog struct {
	mu     sync.RWMutex
	client *Client
	items  map[int64]Item
	loaded bool
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client, items: make(map[int64]Item)}
}

// Refresh replaces the snapshot with the service's current list.
func (c *Catalog) Refresh(ctx context.Context) error {
	items, err := c.client.List(ctx)
	if err != nil {
		return err
	}
	next := make(map[int64]Item, len(items))
	for _, it := range items {
		next[it.StockID] = it
	}
	c.mu.Lock()
	c.items = next
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Lookup returns the snapshotted item, fetching the list first if the
// catalog has never been loaded.
func (c *Catalog) Lookup(ctx context.Context, stockID int64) (*Item, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[stockID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := it
	return &cp, nil
}

// Items returns the snapshot ordered by stock id.
func (c *Catalog) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockID < out[j].StockID })
	return out
}

// Filter keeps items whose name or description contains q, case-insensitive.
func Filter(items []Item, q string) []Item {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, it)
		}
	}
	return out
}

// SortByPrice orders items cheapest first, stock id as tie-break.
func SortByPrice(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if c := items[i].Price.Cmp(items[j].Price); c != 0 {
			return c < 0
		}
		return items[i].StockID < items[j].StockID
	})
}
