package repository

import (
	"context"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

// ShoppingSearch third-party shopping search API
type ShoppingSearch interface {
	Search(ctx context.Context, query string) ([]entity.RawProduct, error)
}

// PageFetcher downloads a product page and returns its visible text
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
