// Package store is the persisted client-side mirror: a small string-keyed
// KV store standing in for the browser localStorage the web client used.
// The mirror is advisory; readers must treat any decode failure as absence.
package store

import (
	"context"
	"fmt"
)

// Store is the interface for mirror backends.
type Store interface {
	// Get returns the value for key, or xerrors.ErrNotFound when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set writes a single key.
	Set(ctx context.Context, key, value string) error

	// Delete removes a single key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Batch applies all writes and deletes as one unit. Readers never
	// observe a state with only part of the batch applied.
	Batch(ctx context.Context, set map[string]string, del []string) error
}

// Config holds the store configuration.
type Config struct {
	Driver string // file, memory, redis

	// file driver
	Path string

	// redis driver
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// New creates a store backend based on configuration.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "file", "":
		path := cfg.Path
		if path == "" {
			path = ".backoffice/session.json"
		}
		return NewFileStore(path)

	case "memory":
		return NewMemoryStore(), nil

	case "redis":
		return NewRedisStore(cfg)

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
