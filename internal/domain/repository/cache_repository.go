package repository

import (
	"context"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

// CacheRepository product lookup cache keyed by the exact query string
type CacheRepository interface {
	// Get returns the stored products only if they were written less than
	// expiry ago.
	Get(ctx context.Context, key string, expiry time.Duration) ([]entity.ProductResult, bool, error)

	// Put replaces any prior entry for key and stamps it with the current time
	Put(ctx context.Context, key string, products []entity.ProductResult) error

	// Stats counts stored and still-fresh entries
	Stats(ctx context.Context, expiry time.Duration) (entity.CacheStats, error)
}
