package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

const (
	// DefaultHost RapidAPI host of the Google shopping search endpoint
	DefaultHost = "google-search-master-mega.p.rapidapi.com"

	// DefaultBaseURL scheme and host the shopping path is appended to
	DefaultBaseURL = "https://" + DefaultHost
)

// RapidAPIClient shopping search over RapidAPI
type RapidAPIClient struct {
	baseURL string
	host    string
	apiKey  string
	client  *http.Client
}

// NewRapidAPIClient creates a search client. Empty baseURL or host fall back
// to the public endpoint.
func NewRapidAPIClient(baseURL, host, apiKey string, timeout time.Duration) *RapidAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if host == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RapidAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		host:    host,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type shoppingResponse struct {
	Shopping []shoppingItem `json:"shopping"`
}

type shoppingItem struct {
	Title string `json:"title"`
	Price any    `json:"price"`
	Link  string `json:"link"`
}

// Search runs a US/English shopping query, first page of 50 results.
// Any non-200 answer is an error.
func (c *RapidAPIClient) Search(ctx context.Context, query string) ([]entity.RawProduct, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("gl", "us")
	params.Set("hl", "en")
	params.Set("autocorrect", "true")
	params.Set("num", "50")
	params.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shopping?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %s", resp.Status)
	}

	var body shoppingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	products := make([]entity.RawProduct, 0, len(body.Shopping))
	for _, item := range body.Shopping {
		products = append(products, entity.RawProduct{
			Title: item.Title,
			Price: priceString(item.Price),
			Link:  item.Link,
		})
	}
	return products, nil
}

// priceString the API usually sends "$12.99" but numbers show up too
func priceString(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	default:
		return ""
	}
}
