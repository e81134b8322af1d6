package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-key expiration
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
