package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lifelegallysingle/prswarm/internal/retry"
	"golang.org/x/time/rate"
)

const serpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPIConfig wires a SerpAPI-backed client.
type SerpAPIConfig struct {
	APIKey string

	// BaseURL overrides the SerpAPI endpoint. Useful for local stubs.
	BaseURL string

	// RateLimit is the maximum requests per minute. <=0 disables throttling.
	RateLimit int

	// RequestTimeout bounds each HTTP call. Defaults to 10s.
	RequestTimeout time.Duration

	// MaxRetries bounds retries of transient HTTP failures.
	MaxRetries int
}

// SerpAPIClient queries the SerpAPI web search API and normalizes its
// organic results.
type SerpAPIClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// NewSerpAPI validates the config and builds a client.
func NewSerpAPI(cfg SerpAPIConfig) (*SerpAPIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("serpapi: API key is required")
	}
	endpoint := strings.TrimSpace(cfg.BaseURL)
	if endpoint == "" {
		endpoint = serpAPIEndpoint
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SerpAPIClient{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    newMinuteLimiter(cfg.RateLimit),
		maxRetries: cfg.MaxRetries,
	}, nil
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Source  string `json:"source"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search runs one throttled query and returns up to numResults hits.
func (c *SerpAPIClient) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	if numResults <= 0 {
		numResults = 5
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := retry.Do(ctx, retry.Options{MaxRetries: c.maxRetries}, func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, query, numResults)
	})
	if err != nil {
		return nil, err
	}

	var parsed serpAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("serpapi: parse response: %w", err)
	}

	out := make([]Result, 0, numResults)
	for _, r := range parsed.OrganicResults {
		if len(out) == numResults {
			break
		}
		out = append(out, Result{
			Title:   CleanText(r.Title),
			Link:    strings.TrimSpace(r.Link),
			Source:  CleanText(r.Source),
			Snippet: CleanText(r.Snippet),
		})
	}
	return out, nil
}

func (c *SerpAPIClient) fetch(ctx context.Context, query string, numResults int) ([]byte, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(numResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &retry.Transient{Err: fmt.Errorf("serpapi: request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &retry.Transient{Err: fmt.Errorf("serpapi: read response: %w", err)}
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5 {
		return nil, &retry.Transient{Err: fmt.Errorf("serpapi: status %s", resp.Status)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: status %s", resp.Status)
	}
	return body, nil
}
