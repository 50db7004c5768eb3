package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lifelegallysingle/prswarm/internal/search"
)

func serpPayload() map[string]any {
	return map[string]any{
		"organic_results": []map[string]string{
			{
				"title":   "Why  solo living\nis reshaping city life",
				"link":    " https://example.com/solo-living ",
				"source":  "The Weekly",
				"snippet": "Solo households now outnumber couples.",
			},
			{
				"title":   "Second story",
				"link":    "https://example.com/second",
				"source":  "The Weekly",
				"snippet": "More coverage.",
			},
		},
	}
}

func TestSerpAPISearch(t *testing.T) {
	t.Parallel()

	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("api_key")
		_ = json.NewEncoder(w).Encode(serpPayload())
	}))
	defer srv.Close()

	client, err := search.NewSerpAPI(search.SerpAPIConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewSerpAPI: %v", err)
	}

	results, err := client.Search(context.Background(), "Sam Lee The Weekly", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "Sam Lee The Weekly" {
		t.Fatalf("query = %q", gotQuery)
	}
	if gotKey != "test-key" {
		t.Fatalf("api_key = %q", gotKey)
	}
	if len(results) != 1 {
		t.Fatalf("results = %#v", results)
	}
	want := search.Result{
		Title:   "Why solo living is reshaping city life",
		Link:    "https://example.com/solo-living",
		Source:  "The Weekly",
		Snippet: "Solo households now outnumber couples.",
	}
	if results[0] != want {
		t.Fatalf("result = %#v, want %#v", results[0], want)
	}
}

func TestSerpAPIRetriesServerError(t *testing.T) {
	t.Parallel()

	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(serpPayload())
	}))
	defer srv.Close()

	client, err := search.NewSerpAPI(search.SerpAPIConfig{APIKey: "test-key", BaseURL: srv.URL, MaxRetries: 2})
	if err != nil {
		t.Fatalf("NewSerpAPI: %v", err)
	}

	results, err := client.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %#v", results)
	}
	if got := atomic.LoadInt64(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestSerpAPIPermanentErrorNoRetry(t *testing.T) {
	t.Parallel()

	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := search.NewSerpAPI(search.SerpAPIConfig{APIKey: "bad-key", BaseURL: srv.URL, MaxRetries: 3})
	if err != nil {
		t.Fatalf("NewSerpAPI: %v", err)
	}

	if _, err := client.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error for 401 response")
	}
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestSerpAPIRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := search.NewSerpAPI(search.SerpAPIConfig{APIKey: "  "}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSerpAPIRateLimitHonorsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(serpPayload())
	}))
	defer srv.Close()

	client, err := search.NewSerpAPI(search.SerpAPIConfig{APIKey: "test-key", BaseURL: srv.URL, RateLimit: 1})
	if err != nil {
		t.Fatalf("NewSerpAPI: %v", err)
	}

	// The single token is spent here.
	if _, err := client.Search(context.Background(), "first", 1); err != nil {
		t.Fatalf("first search: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Search(ctx, "second", 1); err == nil {
		t.Fatal("expected limiter wait to fail on short deadline")
	}
}
