package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// File persists each slot as a small JSON file under a state directory.
// This is the daemon's stand-in for browser localStorage: values survive
// restarts, absent or unreadable files hydrate as empty.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) slotPath(slot string) string {
	return filepath.Join(f.dir, slot+".json")
}

func (f *File) read(slot string) []byte {
	raw, err := os.ReadFile(f.slotPath(slot))
	if err != nil {
		return nil
	}
	return raw
}

func (f *File) write(slot string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(f.slotPath(slot), raw, 0o600)
}

func (f *File) remove(slot string) error {
	err := os.Remove(f.slotPath(slot))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *File) LoadCart(ctx context.Context) ([]CartLine, error) {
	return decodeLines(f.read(CartSlot)), nil
}

func (f *File) SaveCart(ctx context.Context, lines []CartLine) error {
	return f.write(CartSlot, lines)
}

func (f *File) ClearCart(ctx context.Context) error {
	return f.remove(CartSlot)
}

func (f *File) LoadSession(ctx context.Context) (*Session, error) {
	return decodeSession(f.read(SessionSlot)), nil
}

func (f *File) SaveSession(ctx context.Context, s *Session) error {
	if s == nil {
		return f.remove(SessionSlot)
	}
	return f.write(SessionSlot, s)
}

func (f *File) ClearSession(ctx context.Context) error {
	return f.remove(SessionSlot)
}
