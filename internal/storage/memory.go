package storage

import (
	"context"
	"sync"
)

// Memory keeps both slots in process memory. Used by tests and by cartd
// when no durability is wanted.
type Memory struct {
	mu      sync.RWMutex
	cart    []CartLine
	session *Session
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) LoadCart(ctx context.Context) ([]CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]CartLine(nil), m.cart...), nil
}

func (m *Memory) SaveCart(ctx context.Context, lines []CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = append([]CartLine(nil), lines...)
	return nil
}

func (m *Memory) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	return nil
}

func (m *Memory) LoadSession(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, nil
	}
	cp := *m.session
	return &cp, nil
}

func (m *Memory) SaveSession(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		m.session = nil
		return nil
	}
	cp := *s
	m.session = &cp
	return nil
}

func (m *Memory) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
