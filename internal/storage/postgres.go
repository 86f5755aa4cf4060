package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PG keeps the two slots in a key-value table:
//
//	CREATE TABLE IF NOT EXISTS client_state (
//	  slot       TEXT PRIMARY KEY,
//	  payload    JSONB NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PG struct{ db *pgxpool.Pool }

func NewPG(db *pgxpool.Pool) *PG { return &PG{db: db} }

func (r *PG) load(ctx context.Context, slot string) []byte {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT payload FROM client_state WHERE slot=$1`, slot).Scan(&raw)
	if err != nil {
		// absent row and scan failure both hydrate as empty
		return nil
	}
	return raw
}

func (r *PG) save(ctx context.Context, slot string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO client_state (slot, payload, updated_at)
		VALUES ($1,$2,NOW())
		ON CONFLICT (slot) DO UPDATE SET payload = $2, updated_at = NOW()
	`, slot, raw)
	return err
}

func (r *PG) clear(ctx context.Context, slot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM client_state WHERE slot=$1`, slot)
	return err
}

func (r *PG) LoadCart(ctx context.Context) ([]CartLine, error) {
	return decodeLines(r.load(ctx, CartSlot)), nil
}

func (r *PG) SaveCart(ctx context.Context, lines []CartLine) error {
	return r.save(ctx, CartSlot, lines)
}

func (r *PG) ClearCart(ctx context.Context) error {
	return r.clear(ctx, CartSlot)
}

func (r *PG) LoadSession(ctx context.Context) (*Session, error) {
	return decodeSession(r.load(ctx, SessionSlot)), nil
}

func (r *PG) SaveSession(ctx context.Context, s *Session) error {
	if s == nil {
		return r.clear(ctx, SessionSlot)
	}
	return r.save(ctx, SessionSlot, s)
}

func (r *PG) ClearSession(ctx context.Context) error {
	return r.clear(ctx, SessionSlot)
}
