package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	SortedSetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// SetNX stores value only if key is absent; reports whether it was stored.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	// MGet returns one entry per key, nil for missing keys.
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	// Del removes key and reports whether it existed.
	Del(ctx context.Context, key string) (bool, error)
	// Incr atomically increments key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}

// SortedSetStore provides ordered index operations.
type SortedSetStore interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key, member string) error
	// ZRange returns all members in ascending score order.
	ZRange(ctx context.Context, key string) ([]string, error)
}
