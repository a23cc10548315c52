package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRapidAPIClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shopping" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		want := map[string]string{"q": "iphone 15", "gl": "us", "hl": "en", "autocorrect": "true", "num": "50", "page": "1"}
		for k, v := range want {
			if q.Get(k) != v {
				t.Errorf("query param %s = %q, want %q", k, q.Get(k), v)
			}
		}
		if r.Header.Get("x-rapidapi-key") != "secret" {
			t.Errorf("x-rapidapi-key = %q", r.Header.Get("x-rapidapi-key"))
		}
		if r.Header.Get("x-rapidapi-host") != "search.test" {
			t.Errorf("x-rapidapi-host = %q", r.Header.Get("x-rapidapi-host"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"shopping":[
			{"title":"  iPhone 15 128GB  ","price":"$799.00","link":"https://store.test/iphone"},
			{"title":"iPhone 15 Case","price":19.5,"link":"https://store.test/case","rating":4.5}
		]}`))
	}))
	defer server.Close()

	client := NewRapidAPIClient(server.URL+"/", "search.test", "secret", time.Second)
	products, err := client.Search(context.Background(), "iphone 15")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Search() returned %d products, want 2", len(products))
	}
	if products[0].Title != "  iPhone 15 128GB  " || products[0].Price != "$799.00" || products[0].Link != "https://store.test/iphone" {
		t.Errorf("unexpected first product: %+v", products[0])
	}
	if products[1].Price != "19.5" {
		t.Errorf("numeric price = %q, want %q", products[1].Price, "19.5")
	}
}

func TestRapidAPIClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewRapidAPIClient(server.URL, "", "k", time.Second)
	if _, err := client.Search(context.Background(), "tv"); err == nil {
		t.Error("Search() should fail on a non-200 status")
	}
}

func TestRapidAPIClient_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	products, err := NewRapidAPIClient(server.URL, "", "k", time.Second).Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Search() = %+v, want no products", products)
	}
}

func TestRapidAPIClient_Defaults(t *testing.T) {
	client := NewRapidAPIClient("", "", "k", 0)
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.host != DefaultHost {
		t.Errorf("host = %q, want %q", client.host, DefaultHost)
	}
	if client.client.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.client.Timeout)
	}
}
