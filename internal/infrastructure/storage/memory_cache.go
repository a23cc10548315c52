package storage

import (
	"context"
	"sync"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
)

type memoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]entity.CacheEntry
	now     func() time.Time
}

// NewMemoryCacheRepository in-memory cache with the same expiry rule as the
// SQLite store
func NewMemoryCacheRepository() repository.CacheRepository {
	return &memoryCacheRepository{
		entries: make(map[string]entity.CacheEntry),
		now:     time.Now,
	}
}

// Get returns fresh products for key
func (m *memoryCacheRepository) Get(ctx context.Context, key string, expiry time.Duration) ([]entity.ProductResult, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.entries[key]
	if !exists {
		return nil, false, nil
	}
	if m.now().Unix()-entry.StoredAt.Unix() >= int64(expiry/time.Second) {
		return nil, false, nil
	}

	products := make([]entity.ProductResult, len(entry.Products))
	copy(products, entry.Products)
	return products, true, nil
}

// Put replaces the entry for key
func (m *memoryCacheRepository) Put(ctx context.Context, key string, products []entity.ProductResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]entity.ProductResult, len(products))
	copy(stored, products)
	m.entries[key] = entity.CacheEntry{Key: key, Products: stored, StoredAt: m.now()}
	return nil
}

// Stats counts stored and fresh entries
func (m *memoryCacheRepository) Stats(ctx context.Context, expiry time.Duration) (entity.CacheStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := entity.CacheStats{Entries: len(m.entries)}
	now := m.now().Unix()
	for _, entry := range m.entries {
		if now-entry.StoredAt.Unix() < int64(expiry/time.Second) {
			stats.Fresh++
		}
	}
	return stats, nil
}
