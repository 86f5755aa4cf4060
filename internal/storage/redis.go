package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis keeps each slot under its own key. Values never expire; the cart
// is cleared explicitly on checkout success.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis accepts either a redis:// URL or a plain "host:port" address.
func NewRedis(addr string) *Redis {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		}
	}
	return &Redis{client: redis.NewClient(opts), prefix: "cartd:"}
}

func (r *Redis) Ping(ctx context.Context) bool {
	return r.client.Ping(ctx).Err() == nil
}

func (r *Redis) key(slot string) string { return r.prefix + slot }

func (r *Redis) load(ctx context.Context, slot string) []byte {
	raw, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if err != nil {
		// redis.Nil and transport errors both hydrate as empty
		return nil
	}
	return raw
}

func (r *Redis) save(ctx context.Context, slot string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(slot), raw, 0).Err()
}

func (r *Redis) clear(ctx context.Context, slot string) error {
	return r.client.Del(ctx, r.key(slot)).Err()
}

func (r *Redis) LoadCart(ctx context.Context) ([]CartLine, error) {
	return decodeLines(r.load(ctx, CartSlot)), nil
}

func (r *Redis) SaveCart(ctx context.Context, lines []CartLine) error {
	return r.save(ctx, CartSlot, lines)
}

func (r *Redis) ClearCart(ctx context.Context) error {
	return r.clear(ctx, CartSlot)
}

func (r *Redis) LoadSession(ctx context.Context) (*Session, error) {
	return decodeSession(r.load(ctx, SessionSlot)), nil
}

func (r *Redis) SaveSession(ctx context.Context, s *Session) error {
	if s == nil {
		return r.clear(ctx, SessionSlot)
	}
	return r.save(ctx, SessionSlot, s)
}

func (r *Redis) ClearSession(ctx context.Context) error {
	return r.clear(ctx, SessionSlot)
}
