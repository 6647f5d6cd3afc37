package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Summarizer produces a short summary of a single product review. It is
// best-effort: implementations never fail, they degrade to an excerpt of
// the raw review instead.
type Summarizer interface {
	Summarize(ctx context.Context, review string) string
}
