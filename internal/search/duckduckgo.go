package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lifelegallysingle/prswarm/internal/retry"
	"golang.org/x/time/rate"
)

const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGoConfig wires the keyless HTML search backend.
type DuckDuckGoConfig struct {
	// BaseURL overrides the endpoint. Useful for local stubs.
	BaseURL string

	// RateLimit is the maximum requests per minute. <=0 disables throttling.
	RateLimit int

	// RequestTimeout bounds each HTTP call. Defaults to 15s.
	RequestTimeout time.Duration

	MaxRetries int
}

// DuckDuckGoClient scrapes the DuckDuckGo HTML results page. It needs
// no API key, which makes it a useful fallback provider, but result
// markup is best-effort and ranking is not recency-ordered.
type DuckDuckGoClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// NewDuckDuckGo builds the HTML-scraping client.
func NewDuckDuckGo(cfg DuckDuckGoConfig) *DuckDuckGoClient {
	endpoint := strings.TrimSpace(cfg.BaseURL)
	if endpoint == "" {
		endpoint = duckDuckGoEndpoint
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DuckDuckGoClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    newMinuteLimiter(cfg.RateLimit),
		maxRetries: cfg.MaxRetries,
	}
}

// Search runs one throttled query and scrapes up to numResults hits.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	if numResults <= 0 {
		numResults = 5
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	doc, err := retry.Do(ctx, retry.Options{MaxRetries: c.maxRetries}, func(ctx context.Context) (*goquery.Document, error) {
		return c.fetchDocument(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	return parseResultsPage(doc, numResults), nil
}

func (c *DuckDuckGoClient) fetchDocument(ctx context.Context, query string) (*goquery.Document, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; prswarm/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &retry.Transient{Err: fmt.Errorf("duckduckgo: request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5 {
		return nil, &retry.Transient{Err: fmt.Errorf("duckduckgo: status %s", resp.Status)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo: status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: parse page: %w", err)
	}
	return doc, nil
}

func parseResultsPage(doc *goquery.Document, numResults int) []Result {
	out := make([]Result, 0, numResults)
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := CleanText(sel.Find("a.result__a").First().Text())
		href, _ := sel.Find("a.result__a").First().Attr("href")
		snippet := CleanText(sel.Find(".result__snippet").First().Text())
		source := CleanText(sel.Find(".result__url").First().Text())

		link := resolveRedirect(strings.TrimSpace(href))
		if title == "" || link == "" {
			return true
		}
		if source == "" {
			if u, err := url.Parse(link); err == nil {
				source = u.Host
			}
		}
		out = append(out, Result{Title: title, Link: link, Source: source, Snippet: snippet})
		return len(out) < numResults
	})
	return out
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> indirection.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if strings.HasPrefix(href, "//") {
		// Protocol-relative links from the HTML endpoint.
		return "https:" + href
	}
	return href
}
