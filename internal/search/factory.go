package search

import (
	"fmt"
	"strings"
	"time"
)

// ProviderConfig selects and configures a search backend.
type ProviderConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	RateLimit      int
	RequestTimeout time.Duration
	MaxRetries     int
}

// NewClient returns the provider named by cfg.Provider. Supported
// providers are "mock", "serpapi" and "duckduckgo"; empty defaults
// to mock.
func NewClient(cfg ProviderConfig) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "mock":
		return &MockClient{}, nil
	case "serpapi":
		return NewSerpAPI(SerpAPIConfig{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			RateLimit:      cfg.RateLimit,
			RequestTimeout: cfg.RequestTimeout,
			MaxRetries:     cfg.MaxRetries,
		})
	case "duckduckgo":
		return NewDuckDuckGo(DuckDuckGoConfig{
			BaseURL:        cfg.BaseURL,
			RateLimit:      cfg.RateLimit,
			RequestTimeout: cfg.RequestTimeout,
			MaxRetries:     cfg.MaxRetries,
		}), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.Provider)
	}
}
