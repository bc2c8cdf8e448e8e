package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching encoded query results
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogReader exposes the read-only recipe snapshot
type CatalogReader interface {
	Recipes() []Recipe
	Len() int
}
