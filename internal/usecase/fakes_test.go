package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

// fakeSearch implements repository.ShoppingSearch for testing
type fakeSearch struct {
	products []entity.RawProduct
	err      error
	calls    atomic.Int32
	release  chan struct{}
}

func (f *fakeSearch) Search(ctx context.Context, query string) ([]entity.RawProduct, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

// fakePages implements repository.PageFetcher, failing for the listed URLs
type fakePages struct {
	mu     sync.Mutex
	pages  map[string]string
	failed map[string]bool
	calls  []string
}

func (f *fakePages) FetchText(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("page fetch without a deadline")
	}
	if f.failed[url] {
		return "", errors.New("connection failed: timeout")
	}
	return f.pages[url], nil
}

// failingCache implements repository.CacheRepository with a broken store
type failingCache struct {
	getErr error
	putErr error
}

func (f *failingCache) Get(ctx context.Context, key string, expiry time.Duration) ([]entity.ProductResult, bool, error) {
	return nil, false, f.getErr
}

func (f *failingCache) Put(ctx context.Context, key string, products []entity.ProductResult) error {
	return f.putErr
}

func (f *failingCache) Stats(ctx context.Context, expiry time.Duration) (entity.CacheStats, error) {
	return entity.CacheStats{}, nil
}

// fakeExporter implements repository.ProductExporter
type fakeExporter struct {
	got []entity.ProductResult
}

func (f *fakeExporter) ExportProducts(query string, products []entity.ProductResult) ([]byte, error) {
	f.got = products
	return []byte("xlsx:" + query), nil
}

func (f *fakeExporter) ContentType() string { return "application/test" }

func (f *fakeExporter) Extension() string { return ".xlsx" }

// fakeAI implements repository.AIRepository
type fakeAI struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeAI) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

// failingChat implements repository.ChatRepository with a broken store
type failingChat struct{}

func (failingChat) Append(ctx context.Context, conv entity.Conversation) (entity.Conversation, error) {
	return entity.Conversation{}, entity.ErrStorage
}

func (failingChat) ListByUser(ctx context.Context, userID string) ([]entity.Conversation, error) {
	return nil, entity.ErrStorage
}
