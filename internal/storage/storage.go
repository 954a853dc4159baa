// Package storage defines the key-value medium that persists the
// portal's named JSON collections. Implementations live in the
// memory, sqlite, and postgres subpackages.
package storage

import (
	"context"
	"errors"
)

// Collection keys. These are the complete persisted schema: each key
// maps to one JSON blob.
const (
	KeyAdmin         = "admin"
	KeyUsers         = "users"
	KeyRegistrations = "registrations"
)

// ErrKeyNotFound is returned by Load when a key has never been saved.
var ErrKeyNotFound = errors.New("key not found")

// Store is a named-collection key-value medium. Load returns
// ErrKeyNotFound for an absent key; Save overwrites unconditionally.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}
