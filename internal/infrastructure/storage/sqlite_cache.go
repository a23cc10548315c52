package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
)

type sqliteCacheRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteCacheRepository product_cache table backed cache
func NewSQLiteCacheRepository(db *sql.DB) repository.CacheRepository {
	return &sqliteCacheRepository{db: db, now: time.Now}
}

// Get returns the cached products for key while they are fresh
func (s *sqliteCacheRepository) Get(ctx context.Context, key string, expiry time.Duration) ([]entity.ProductResult, bool, error) {
	var (
		data     string
		storedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT product_data, timestamp FROM product_cache WHERE product_name = ?`, key,
	).Scan(&data, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read cache %q: %w", entity.ErrStorage, key, err)
	}

	if s.now().Unix()-storedAt >= int64(expiry/time.Second) {
		return nil, false, nil
	}

	var products []entity.ProductResult
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false, fmt.Errorf("%w: decode cache %q: %w", entity.ErrStorage, key, err)
	}
	return products, true, nil
}

// Put stores products under key, replacing any previous row
func (s *sqliteCacheRepository) Put(ctx context.Context, key string, products []entity.ProductResult) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("%w: encode cache %q: %w", entity.ErrStorage, key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO product_cache (product_name, product_data, timestamp) VALUES (?, ?, ?)`,
		key, string(data), s.now().Unix())
	if err != nil {
		return fmt.Errorf("%w: write cache %q: %w", entity.ErrStorage, key, err)
	}
	return nil
}

// Stats counts all rows and the rows younger than expiry
func (s *sqliteCacheRepository) Stats(ctx context.Context, expiry time.Duration) (entity.CacheStats, error) {
	threshold := s.now().Unix() - int64(expiry/time.Second)

	var stats entity.CacheStats
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN timestamp > ? THEN 1 ELSE 0 END), 0)
FROM product_cache`, threshold).Scan(&stats.Entries, &stats.Fresh)
	if err != nil {
		return entity.CacheStats{}, fmt.Errorf("%w: cache stats: %w", entity.ErrStorage, err)
	}
	return stats, nil
}
