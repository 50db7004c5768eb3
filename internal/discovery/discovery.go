// Package discovery establishes journalist identity from public search
// results. Anything it cannot verify stays at the "N/A" sentinel; the
// stage never guesses contact details.
package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/search"
)

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// Discoverer looks up journalist details through a search client.
type Discoverer struct {
	client     search.Client
	numResults int
}

// New builds a Discoverer. numResults defaults to 5.
func New(client search.Client, numResults int) *Discoverer {
	if numResults <= 0 {
		numResults = 5
	}
	return &Discoverer{client: client, numResults: numResults}
}

// Run searches public sources for the prospect and assembles a profile.
// Transport faults propagate: the batch runner records them as pipeline
// failures rather than silently producing an empty profile.
func (d *Discoverer) Run(ctx context.Context, prospect schema.Prospect) (schema.JournalistProfile, error) {
	query := Query(prospect)

	results, err := d.client.Search(ctx, query, d.numResults)
	if err != nil {
		return schema.JournalistProfile{}, fmt.Errorf("discovery search for %q: %w", prospect.Name, err)
	}

	profile := schema.JournalistProfile{
		ProspectName: prospect.Name,
		MatchedName:  prospect.Name,
		Publication:  prospect.Publication,
	}

	nameLower := strings.ToLower(prospect.Name)
	for _, r := range results {
		combined := r.Title + " " + r.Snippet
		if profile.Email == "" {
			if m := emailRe.FindString(combined); m != "" {
				profile.Email = m
			}
		}
		if profile.ProfileURL == "" && r.Link != "" {
			titleLower := strings.ToLower(r.Title)
			if strings.Contains(titleLower, "profile") || strings.Contains(titleLower, nameLower) {
				profile.ProfileURL = r.Link
			}
		}
		if r.Link != "" {
			profile.Citations = append(profile.Citations, schema.Citation{
				URL:         r.Link,
				Description: fmt.Sprintf("Search result for query %q", query),
			})
		}
	}

	return profile.Normalize(), nil
}

// Query builds the identity lookup query from the prospect row.
func Query(prospect schema.Prospect) string {
	parts := []string{prospect.Name}
	if prospect.Publication != "" {
		parts = append(parts, prospect.Publication)
	}
	if len(prospect.Keywords) > 0 {
		parts = append(parts, strings.Join(prospect.Keywords, " "))
	}
	return strings.Join(parts, " ")
}
