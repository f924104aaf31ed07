package interfaces

import (
	"context"
)

// Storage is a byte-oriented key-value store. Fetching a missing key returns
// an error wrapping storage.ErrKeyNotFound.
type Storage interface {
	Store(ctx context.Context, key string, value []byte) error
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
