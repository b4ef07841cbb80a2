// Package media maps image locators to Telegram file ids: it uploads
// locators once, stores the resulting mapping and resolves locators into
// sendable files.
package media

import (
	"context"
	"path/filepath"
	"strings"
)

// Mapping is locator -> Telegram file_id.
type Mapping map[string]string

type Store interface {
	Load(ctx context.Context) (Mapping, error)
	Save(ctx context.Context, m Mapping) error
	Close() error
}

// Open picks a store implementation from the file extension:
// .db, .sqlite and .sqlite3 use SQLite, everything else JSON.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	default:
		return NewJSONStore(path), nil
	}
}

// LoadMapping opens path, reads the mapping and closes the store.
func LoadMapping(ctx context.Context, path string) (Mapping, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Load(ctx)
}

// SaveMapping opens path, writes m and closes the store.
func SaveMapping(ctx context.Context, path string, m Mapping) error {
	s, err := Open(path)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, m); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}
