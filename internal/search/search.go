// Package search provides the article/identity search boundary used by
// the discovery and research stages. All providers funnel into the same
// normalized Result shape before anything downstream sees them.
package search

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Result is one normalized search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// Client is the capability interface every search backend implements.
//
// Search returns an empty slice, not an error, when nothing matches the
// query. Errors are reserved for transport faults that survived the
// provider's own retry budget.
type Client interface {
	Search(ctx context.Context, query string, numResults int) ([]Result, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, query string, numResults int) ([]Result, error)

func (f ClientFunc) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	return f(ctx, query, numResults)
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs and trims the edges.
func CleanText(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// newMinuteLimiter builds a limiter enforcing a minimum inter-request
// interval of 60/perMinute seconds. Concurrent callers queue on Wait
// rather than burst. A non-positive perMinute disables limiting.
func newMinuteLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}
