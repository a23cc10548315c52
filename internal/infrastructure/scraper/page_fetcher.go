package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultTimeout bound on a single product page download
const DefaultTimeout = 5 * time.Second

const maxPageBytes = 2 << 20

// PageFetcher downloads product pages for offer scanning
type PageFetcher struct {
	client *http.Client
}

// NewPageFetcher creates a fetcher whose every request is bounded by timeout
func NewPageFetcher(timeout time.Duration) *PageFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PageFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// FetchText GETs pageURL and returns its visible text. Non-200 answers are
// errors.
func (f *PageFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Ekonomi-OfferScanner/1.0)")
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %s", resp.Status)
	}

	return VisibleText(io.LimitReader(resp.Body, maxPageBytes))
}

// hiddenTags content never rendered as text
var hiddenTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// VisibleText strips markup and collapses whitespace. Plain text input comes
// back unchanged apart from whitespace.
func VisibleText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)

	var (
		sb    strings.Builder
		depth int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.Join(strings.Fields(sb.String()), " "), nil
			}
			return "", z.Err()
		case html.StartTagToken:
			if name, _ := z.TagName(); hiddenTags[string(name)] {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); hiddenTags[string(name)] && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth == 0 {
				sb.Write(z.Text())
				sb.WriteByte(' ')
			}
		}
	}
}
