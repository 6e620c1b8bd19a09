package port

import (
	"context"
)

// KVStore persists opaque string values under string keys.
// GetItem reports found=false with a nil error when the key is absent.
type KVStore interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
