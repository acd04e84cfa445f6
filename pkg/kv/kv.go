// Package kv defines the key/value blob contract snapshots are persisted through.
package kv

import (
	"context"
	"errors"

	"github.com/angelmondragon/partcustody/pkg/enums"
)

// ErrNotFound is returned by Get when the key has never been written or was removed.
var ErrNotFound = errors.New("kv: key not found")

// Store is an opaque blob store addressed by string keys.
// Remove on an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Driver is implemented by backends that can report which driver they are.
type Driver interface {
	Driver() enums.StorageDriver
}

// DriverOf returns the backend's driver, or an empty value when it does not say.
func DriverOf(store Store) enums.StorageDriver {
	if d, ok := store.(Driver); ok {
		return d.Driver()
	}
	return ""
}
