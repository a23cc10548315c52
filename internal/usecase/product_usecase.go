package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/offer"
	"github.com/Arshath015/Ekonomi/internal/domain/pricing"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
	"github.com/Arshath015/Ekonomi/internal/metrics"
)

// DefaultCacheExpiry how long a product lookup stays fresh
const DefaultCacheExpiry = 24 * time.Hour

// ProductUseCase shopping lookup business logic
type ProductUseCase interface {
	// FetchProductDetails returns enriched results for productName, from
	// cache when fresh
	FetchProductDetails(ctx context.Context, productName string) ([]entity.ProductResult, error)

	// ExportProducts renders the lookup result as a downloadable document
	ExportProducts(ctx context.Context, productName string) (*Export, error)
}

// Export an encoded product document
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductConfig lookup tuning
type ProductConfig struct {
	CacheExpiry       time.Duration
	USDToINR          float64
	OfferFetchTimeout time.Duration
}

type productUseCase struct {
	cache    repository.CacheRepository
	search   repository.ShoppingSearch
	pages    repository.PageFetcher
	exporter repository.ProductExporter
	metrics  *metrics.Metrics
	cfg      ProductConfig

	// concurrent misses for one key share a single upstream lookup
	inflight singleflight.Group
}

// NewProductUseCase wires the lookup to its collaborators. Zero config
// values fall back to the defaults.
func NewProductUseCase(
	cache repository.CacheRepository,
	search repository.ShoppingSearch,
	pages repository.PageFetcher,
	exporter repository.ProductExporter,
	m *metrics.Metrics,
	cfg ProductConfig,
) ProductUseCase {
	if cfg.CacheExpiry <= 0 {
		cfg.CacheExpiry = DefaultCacheExpiry
	}
	if cfg.USDToINR <= 0 {
		cfg.USDToINR = pricing.DefaultUSDToINR
	}
	if cfg.OfferFetchTimeout <= 0 {
		cfg.OfferFetchTimeout = 5 * time.Second
	}

	return &productUseCase{
		cache:    cache,
		search:   search,
		pages:    pages,
		exporter: exporter,
		metrics:  m,
		cfg:      cfg,
	}
}

// FetchProductDetails cache, then search + per-item enrichment on a miss
func (u *productUseCase) FetchProductDetails(ctx context.Context, productName string) ([]entity.ProductResult, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, fmt.Errorf("%w: product name is required", entity.ErrInvalidInput)
	}

	cached, ok, err := u.cache.Get(ctx, productName, u.cfg.CacheExpiry)
	if err != nil {
		return nil, err
	}
	if ok {
		u.metrics.CacheLookup(metrics.OutcomeHit)
		return cached, nil
	}
	u.metrics.CacheLookup(metrics.OutcomeMiss)

	v, err, shared := u.inflight.Do(productName, func() (any, error) {
		return u.lookup(ctx, productName)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("joined in-flight product lookup", "product", productName)
	}
	return v.([]entity.ProductResult), nil
}

func (u *productUseCase) lookup(ctx context.Context, productName string) ([]entity.ProductResult, error) {
	raw, err := u.search.Search(ctx, productName)
	u.metrics.Upstream(metrics.UpstreamSearch, err)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch data from search API: %w", entity.ErrUpstreamUnavailable, err)
	}

	products := make([]entity.ProductResult, 0, len(raw))
	for _, p := range raw {
		products = append(products, u.enrich(ctx, p))
	}

	if len(products) > 0 {
		if err := u.cache.Put(ctx, productName, products); err != nil {
			return nil, err
		}
	}

	slog.Info("product lookup completed", "product", productName, "results", len(products))
	return products, nil
}

func (u *productUseCase) enrich(ctx context.Context, p entity.RawProduct) entity.ProductResult {
	return entity.ProductResult{
		Name:       strings.TrimSpace(p.Title),
		PriceInINR: pricing.Convert(pricing.ParsePrice(p.Price), u.cfg.USDToINR),
		URL:        p.Link,
		Offer:      u.scanOffers(ctx, p.Link),
	}
}

// scanOffers a failed page only degrades this item's offer text
func (u *productUseCase) scanOffers(ctx context.Context, link string) string {
	if strings.TrimSpace(link) == "" {
		return offer.Unavailable
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.OfferFetchTimeout)
	defer cancel()

	text, err := u.pages.FetchText(ctx, link)
	u.metrics.Upstream(metrics.UpstreamPage, err)
	if err != nil {
		slog.Warn("offer page fetch failed", "url", link, "error", err)
		return offer.FetchFailed
	}
	return offer.Extract(text)
}

// ExportProducts lookup (cached or fresh) rendered by the exporter
func (u *productUseCase) ExportProducts(ctx context.Context, productName string) (*Export, error) {
	products, err := u.FetchProductDetails(ctx, productName)
	if err != nil {
		return nil, err
	}

	data, err := u.exporter.ExportProducts(productName, products)
	if err != nil {
		return nil, fmt.Errorf("failed to export products: %w", err)
	}

	return &Export{
		Filename:    exportFilename(productName) + u.exporter.Extension(),
		ContentType: u.exporter.ContentType(),
		Data:        data,
	}, nil
}

func exportFilename(productName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(productName))

	name = strings.Trim(name, "_")
	if name == "" {
		return "products"
	}
	return name
}
