// Package storage provides the local key-value blob stores used for board
// state, the server-side counterpart of browser local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/database"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("storage: key not found")

//go:generate mockgen -source=store.go -destination=../mocks/storage/mock_store.go -package=mock_storage

// Store persists opaque values under string keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll > %w", err)
		}
		db, err := database.OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("database.OpenSQLite(%s) > %w", cfg.Path, err)
		}
		return NewSQLiteStore(db), nil
	case DriverFile:
		store, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("NewFileStore(%s) > %w", cfg.Path, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
