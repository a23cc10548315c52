package entity

import "time"

// ProductResult enriched shopping result returned to clients and cached
type ProductResult struct {
	Name       string  `json:"name"`
	PriceInINR float64 `json:"price_in_inr"`
	URL        string  `json:"url"`
	Offer      string  `json:"offer"`
}

// RawProduct shopping result as returned by the search API
type RawProduct struct {
	Title string
	Price string
	Link  string
}

// CacheStats cache table counters
type CacheStats struct {
	Entries int
	Fresh   int
}

// CacheEntry a stored product lookup
type CacheEntry struct {
	Key      string
	Products []ProductResult
	StoredAt time.Time
}
