// Package session holds the logged-in user marker. There is no auth here:
// an identity either exists in the session slot or it does not.
package session

import (
	"context"

	"github.com/phxkhxwat/Project-Adv-Compro/internal/storage"
)

// Identity is the logged-in user as the storefront kept it.
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Load returns nil when nobody is logged in, including when the persisted
// slot is absent or malformed.
func Load(ctx context.Context, st storage.Store) (*Identity, error) {
	s, err := st.LoadSession(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	return &Identity{UserID: s.UserID, Email: s.Email}, nil
}

func Save(ctx context.Context, st storage.Store, id Identity) error {
	return st.SaveSession(ctx, &storage.Session{UserID: id.UserID, Email: id.Email})
}

func Clear(ctx context.Context, st storage.Store) error {
	return st.ClearSession(ctx)
}
