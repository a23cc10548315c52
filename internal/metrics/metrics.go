// Package metrics exposes Prometheus counters for lookups, upstream calls
// and the persisted cache.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Arshath015/Ekonomi/internal/domain/repository"
)

// Outcome label values.
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Upstream label values.
const (
	UpstreamSearch = "search"
	UpstreamLLM    = "llm"
	UpstreamPage   = "offer_page"
)

var (
	cacheEntriesDesc = prometheus.NewDesc(
		"ekonomi_product_cache_entries",
		"Rows in the product cache table",
		nil, nil,
	)
	cacheFreshDesc = prometheus.NewDesc(
		"ekonomi_product_cache_fresh_entries",
		"Rows in the product cache table younger than the expiry window",
		nil, nil,
	)
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	cacheLookups     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	chatReplies      *prometheus.CounterVec
}

// New creates the counters and registers them, plus a cache collector when
// cache is non-nil, on reg.
func New(reg prometheus.Registerer, cache repository.CacheRepository, expiry time.Duration) *Metrics {
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ekonomi_cache_lookups_total",
			Help: "Product cache lookups by outcome",
		}, []string{"outcome"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ekonomi_upstream_requests_total",
			Help: "Calls to third-party services by upstream and outcome",
		}, []string{"upstream", "outcome"}),
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ekonomi_chat_replies_total",
			Help: "Chat replies by whether the placeholder was substituted",
		}, []string{"placeholder"}),
	}

	reg.MustRegister(m.cacheLookups, m.upstreamRequests, m.chatReplies)
	if cache != nil {
		reg.MustRegister(&CacheCollector{cache: cache, expiry: expiry})
	}
	return m
}

// CacheLookup records a cache hit or miss
func (m *Metrics) CacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// Upstream records one call to a third-party service
func (m *Metrics) Upstream(upstream string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.upstreamRequests.WithLabelValues(upstream, outcome).Inc()
}

// ChatReply records a reply sent back to a user
func (m *Metrics) ChatReply(placeholder bool) {
	if m == nil {
		return
	}
	label := "false"
	if placeholder {
		label = "true"
	}
	m.chatReplies.WithLabelValues(label).Inc()
}

// CacheCollector reads the cache table size on each scrape.
type CacheCollector struct {
	cache  repository.CacheRepository
	expiry time.Duration
}

// Describe sends the metric descriptors to the channel.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheEntriesDesc
	ch <- cacheFreshDesc
}

// Collect queries the store and emits gauges.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stats, err := c.cache.Stats(ctx, c.expiry)
	if err != nil {
		slog.Error("failed to collect cache metrics", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(stats.Entries))
	ch <- prometheus.MustNewConstMetric(cacheFreshDesc, prometheus.GaugeValue, float64(stats.Fresh))
}
