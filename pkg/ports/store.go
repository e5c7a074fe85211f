package ports

import (
	"context"
)

// KVStore defines the interface of the external key-value storage engine.
// Values are opaque bytes; callers own the encoding.
type KVStore interface {
	// Get retrieves the value for key.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored.
	List(ctx context.Context) ([]string, error)
}
