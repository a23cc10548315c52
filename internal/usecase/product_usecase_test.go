package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/offer"
	"github.com/Arshath015/Ekonomi/internal/infrastructure/storage"
)

func rawProducts() []entity.RawProduct {
	return []entity.RawProduct{
		{Title: "  Sony WH-1000XM5  ", Price: "$399.99", Link: "https://shop.test/sony"},
		{Title: "Bose QC45", Price: "$10", Link: "https://shop.test/bose"},
		{Title: "Generic Headphones", Price: "call for price", Link: ""},
	}
}

func newPages() *fakePages {
	return &fakePages{
		pages: map[string]string{
			"https://shop.test/sony": "Get 20% off today with Free Shipping",
			"https://shop.test/bose": "nothing special",
		},
		failed: map[string]bool{},
	}
}

func newProductUseCase(search *fakeSearch, pages *fakePages) ProductUseCase {
	return NewProductUseCase(storage.NewMemoryCacheRepository(), search, pages, &fakeExporter{}, nil, ProductConfig{USDToINR: 86})
}

func TestFetchProductDetails_EnrichesResults(t *testing.T) {
	uc := newProductUseCase(&fakeSearch{products: rawProducts()}, newPages())

	got, err := uc.FetchProductDetails(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("FetchProductDetails() error = %v", err)
	}

	want := []entity.ProductResult{
		{Name: "Sony WH-1000XM5", PriceInINR: 34399.14, URL: "https://shop.test/sony", Offer: "20% off | Free Shipping"},
		{Name: "Bose QC45", PriceInINR: 860, URL: "https://shop.test/bose", Offer: offer.NoOffersFound},
		{Name: "Generic Headphones", PriceInINR: 0, URL: "", Offer: offer.Unavailable},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FetchProductDetails() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestFetchProductDetails_CachedWithinWindow(t *testing.T) {
	search := &fakeSearch{products: rawProducts()}
	pages := newPages()
	uc := newProductUseCase(search, pages)
	ctx := context.Background()

	first, err := uc.FetchProductDetails(ctx, "headphones")
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	pageCalls := len(pages.calls)

	second, err := uc.FetchProductDetails(ctx, "headphones")
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs:\n%+v\n%+v", first, second)
	}
	if n := search.calls.Load(); n != 1 {
		t.Errorf("search called %d times, want 1", n)
	}
	if len(pages.calls) != pageCalls {
		t.Errorf("cache hit re-scraped offer pages")
	}
}

func TestFetchProductDetails_PartialFailureIsolation(t *testing.T) {
	pages := newPages()
	pages.failed["https://shop.test/sony"] = true
	uc := newProductUseCase(&fakeSearch{products: rawProducts()}, pages)

	got, err := uc.FetchProductDetails(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("FetchProductDetails() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d products, want 3", len(got))
	}
	if got[0].Offer != offer.FetchFailed {
		t.Errorf("failed item offer = %q, want %q", got[0].Offer, offer.FetchFailed)
	}
	if got[0].Name != "Sony WH-1000XM5" || got[0].PriceInINR != 34399.14 {
		t.Errorf("failed item lost its other fields: %+v", got[0])
	}
	if got[1].Offer != offer.NoOffersFound {
		t.Errorf("healthy item offer = %q, want %q", got[1].Offer, offer.NoOffersFound)
	}
}

func TestFetchProductDetails_UpstreamFailure(t *testing.T) {
	cache := storage.NewMemoryCacheRepository()
	search := &fakeSearch{err: errors.New("search API returned 500 Internal Server Error")}
	uc := NewProductUseCase(cache, search, newPages(), &fakeExporter{}, nil, ProductConfig{})

	_, err := uc.FetchProductDetails(context.Background(), "tv")
	if !errors.Is(err, entity.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}

	stats, _ := cache.Stats(context.Background(), DefaultCacheExpiry)
	if stats.Entries != 0 {
		t.Errorf("failed lookup was cached")
	}
}

func TestFetchProductDetails_EmptyResultNotCached(t *testing.T) {
	search := &fakeSearch{}
	uc := newProductUseCase(search, newPages())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := uc.FetchProductDetails(ctx, "unobtainium")
		if err != nil {
			t.Fatalf("call %d error = %v", i, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("call %d = %#v, want empty non-nil slice", i, got)
		}
	}
	if n := search.calls.Load(); n != 2 {
		t.Errorf("search called %d times, want 2 (empty results are not cached)", n)
	}
}

func TestFetchProductDetails_StorageFailure(t *testing.T) {
	ctx := context.Background()

	uc := NewProductUseCase(&failingCache{getErr: entity.ErrStorage}, &fakeSearch{products: rawProducts()}, newPages(), &fakeExporter{}, nil, ProductConfig{})
	if _, err := uc.FetchProductDetails(ctx, "tv"); !errors.Is(err, entity.ErrStorage) {
		t.Errorf("read failure: error = %v, want ErrStorage", err)
	}

	uc = NewProductUseCase(&failingCache{putErr: entity.ErrStorage}, &fakeSearch{products: rawProducts()}, newPages(), &fakeExporter{}, nil, ProductConfig{})
	if _, err := uc.FetchProductDetails(ctx, "tv"); !errors.Is(err, entity.ErrStorage) {
		t.Errorf("write failure: error = %v, want ErrStorage", err)
	}
}

func TestFetchProductDetails_EmptyName(t *testing.T) {
	uc := newProductUseCase(&fakeSearch{}, newPages())
	if _, err := uc.FetchProductDetails(context.Background(), "   "); !errors.Is(err, entity.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestFetchProductDetails_ConcurrentMissesShareLookup(t *testing.T) {
	search := &fakeSearch{products: rawProducts(), release: make(chan struct{})}
	uc := newProductUseCase(search, newPages())

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]entity.ProductResult, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.FetchProductDetails(context.Background(), "headphones")
		}(i)
	}

	// let every caller reach the in-flight lookup before it completes
	time.Sleep(50 * time.Millisecond)
	close(search.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d error = %v", i, errs[i])
		}
		if !reflect.DeepEqual(results[i], results[0]) {
			t.Errorf("caller %d got a different result", i)
		}
	}
	if n := search.calls.Load(); n != 1 {
		t.Errorf("search called %d times, want 1", n)
	}
}

func TestExportProducts(t *testing.T) {
	exporter := &fakeExporter{}
	uc := NewProductUseCase(storage.NewMemoryCacheRepository(), &fakeSearch{products: rawProducts()}, newPages(), exporter, nil, ProductConfig{})

	export, err := uc.ExportProducts(context.Background(), "noise cancelling / headphones")
	if err != nil {
		t.Fatalf("ExportProducts() error = %v", err)
	}
	if export.Filename != "noise_cancelling___headphones.xlsx" {
		t.Errorf("Filename = %q", export.Filename)
	}
	if export.ContentType != "application/test" {
		t.Errorf("ContentType = %q", export.ContentType)
	}
	if string(export.Data) != "xlsx:noise cancelling / headphones" {
		t.Errorf("Data = %q", export.Data)
	}
	if len(exporter.got) != 3 {
		t.Errorf("exporter received %d products, want 3", len(exporter.got))
	}
}

func TestExportFilename(t *testing.T) {
	tests := map[string]string{
		"iPhone 15":    "iPhone_15",
		"  ":           "products",
		"../../etc":    "etc",
		"usb-c cable!": "usb-c_cable",
	}
	for in, want := range tests {
		if got := exportFilename(in); got != want {
			t.Errorf("exportFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
