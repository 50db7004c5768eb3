package research_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lifelegallysingle/prswarm/internal/gen"
	"github.com/lifelegallysingle/prswarm/internal/research"
	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []search.Result {
	return []search.Result{
		{
			Title:   "The quiet rise of solo travel",
			Link:    "https://example.com/solo-travel",
			Source:  "Example Magazine",
			Snippet: "Solo travel bookings keep climbing, and the industry is catching up.",
		},
		{
			Title:   "An older piece",
			Link:    "https://example.com/older",
			Source:  "Example Magazine",
			Snippet: "Background reporting.",
		},
	}
}

func input(results []search.Result) research.Input {
	return research.Input{
		ProspectName: "Jane Roe",
		Outlet:       "Example Magazine",
		Keywords:     []string{"singles", "travel"},
		Results:      results,
	}
}

func TestQueryConcatenation(t *testing.T) {
	t.Parallel()

	q := research.Query("Jane Roe", "Example Magazine", []string{"a", "b", "c", "d", "e", "f", "g", "h"})
	assert.Equal(t, "Jane Roe Example Magazine a b c d e f", q)

	q = research.Query("Jane Roe", "", nil)
	assert.Equal(t, "Jane Roe", q)
}

func TestDeterministicEmptyResults(t *testing.T) {
	t.Parallel()

	out := research.Deterministic{}.Analyze(context.Background(), input(nil))
	assert.Equal(t, schema.ConfidenceLow, out.Confidence)
	assert.Equal(t, research.ReasonNoArticles, out.FailureReason)
	assert.Equal(t, schema.NeedsResearch, out.RequiredOpeningAnchor)
	assert.Equal(t, schema.NotFound, out.Title)
	assert.Equal(t, schema.NotFound, out.ThesisOneLiner)
	assert.Empty(t, out.KeyEvidenceBullets)
}

func TestDeterministicHighConfidence(t *testing.T) {
	t.Parallel()

	out := research.Deterministic{}.Analyze(context.Background(), input(sampleResults()))
	require.Equal(t, schema.ConfidenceHigh, out.Confidence)
	assert.Equal(t, "The quiet rise of solo travel", out.Title)
	assert.Equal(t, "https://example.com/solo-travel", out.URL)
	assert.Equal(t, "Example Magazine", out.Publisher)
	assert.Empty(t, out.FailureReason)
	assert.Equal(t,
		`Hi Jane Roe — I just read your recent piece "The quiet rise of solo travel" and had a follow-up idea.`,
		out.RequiredOpeningAnchor,
	)
}

func TestDeterministicMissingFieldForcesLow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*search.Result)
		reason string
	}{
		{"no title", func(r *search.Result) { r.Title = "" }, "latest piece is missing a title"},
		{"no link", func(r *search.Result) { r.Link = "" }, "latest piece is missing a url"},
		{"no source", func(r *search.Result) { r.Source = "" }, "latest piece is missing a source"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			results := sampleResults()
			tc.mutate(&results[0])

			out := research.Deterministic{}.Analyze(context.Background(), input(results))
			assert.Equal(t, schema.ConfidenceLow, out.Confidence)
			assert.Equal(t, tc.reason, out.FailureReason)
			assert.Equal(t, schema.NeedsResearch, out.RequiredOpeningAnchor)
		})
	}
}

func TestDeterministicTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	results := sampleResults()
	results[0].Snippet = strings.Repeat("— дash ", 60)

	out := research.Deterministic{}.Analyze(context.Background(), input(results))
	require.True(t, utf8.ValidString(out.ThesisOneLiner), "thesis = %q", out.ThesisOneLiner)
	assert.LessOrEqual(t, utf8.RuneCountInString(out.ThesisOneLiner), 180)
	require.Len(t, out.KeyEvidenceBullets, 1)
	require.True(t, utf8.ValidString(out.KeyEvidenceBullets[0]))
	assert.LessOrEqual(t, utf8.RuneCountInString(out.KeyEvidenceBullets[0]), 120)
}

// Same results in, byte-identical analysis out.
func TestDeterministicIdempotent(t *testing.T) {
	t.Parallel()

	first := research.Deterministic{}.Analyze(context.Background(), input(sampleResults()))
	second := research.Deterministic{}.Analyze(context.Background(), input(sampleResults()))
	require.True(t, reflect.DeepEqual(first, second))

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerativeValidReply(t *testing.T) {
	t.Parallel()

	reply := map[string]any{
		"title":                    "The quiet rise of solo travel",
		"url":                      "https://example.com/solo-travel",
		"publisher":                "Example Magazine",
		"thesis_one_liner":         "Solo travel is mainstream now.",
		"editorial_tension":        "Industry profits from a trend it barely understands.",
		"what_the_piece_left_open": "Whether solo infrastructure persists past the trend cycle.",
		"required_opening_anchor":  "Hi Jane — your solo travel piece stuck with me.",
		"confidence":               "high",
	}
	raw, err := json.Marshal(reply)
	require.NoError(t, err)

	strategy := research.Generative{Gen: gen.GeneratorFunc(
		func(context.Context, string, string) (string, error) {
			return "```json\n" + string(raw) + "\n```", nil
		},
	)}

	out := strategy.Analyze(context.Background(), input(sampleResults()))
	assert.Equal(t, schema.ConfidenceHigh, out.Confidence)
	assert.Equal(t, "Hi Jane — your solo travel piece stuck with me.", out.RequiredOpeningAnchor)
	assert.Equal(t, "The quiet rise of solo travel", out.Title)
}

func TestGenerativeHedgingReplyLosesAnchor(t *testing.T) {
	t.Parallel()

	reply := map[string]any{
		"title":                   "The quiet rise of solo travel",
		"url":                     "https://example.com/solo-travel",
		"required_opening_anchor": "Hi Jane — your solo travel piece stuck with me.",
		"confidence":              "low",
		"failure_reason":          "could not confirm publication date",
	}
	raw, err := json.Marshal(reply)
	require.NoError(t, err)

	strategy := research.Generative{Gen: gen.GeneratorFunc(
		func(context.Context, string, string) (string, error) {
			return string(raw), nil
		},
	)}

	// A non-high reply must not keep a usable anchor around.
	out := strategy.Analyze(context.Background(), input(sampleResults()))
	assert.Equal(t, schema.ConfidenceLow, out.Confidence)
	assert.Equal(t, schema.NeedsResearch, out.RequiredOpeningAnchor)
	assert.Equal(t, "could not confirm publication date", out.FailureReason)
}

func TestGenerativeInvalidReplyFallsBack(t *testing.T) {
	t.Parallel()

	for name, generate := range map[string]gen.GeneratorFunc{
		"not json": func(context.Context, string, string) (string, error) {
			return "sorry, I cannot help with that", nil
		},
		"empty object": func(context.Context, string, string) (string, error) {
			return "{}", nil
		},
		"generator error": func(context.Context, string, string) (string, error) {
			return "", errors.New("backend down")
		},
	} {
		t.Run(name, func(t *testing.T) {
			strategy := research.Generative{Gen: generate}
			out := strategy.Analyze(context.Background(), input(sampleResults()))

			// Deterministic evidence fields survive, confidence does not.
			assert.Equal(t, "The quiet rise of solo travel", out.Title)
			assert.Equal(t, schema.ConfidenceLow, out.Confidence)
			assert.Equal(t, research.ReasonGenerationInvalid, out.FailureReason)
			assert.Equal(t, schema.NeedsResearch, out.RequiredOpeningAnchor)
		})
	}
}

func TestExtractorConvertsSearchFault(t *testing.T) {
	t.Parallel()

	client := search.ClientFunc(func(context.Context, string, int) ([]search.Result, error) {
		return nil, errors.New("socket closed")
	})
	ex := research.New(client, research.Deterministic{}, 5)

	out := ex.LatestPiece(context.Background(), schema.NewProspect("Jane Roe", "Example Magazine", ""))
	assert.Equal(t, schema.ConfidenceLow, out.Confidence)
	assert.Contains(t, out.FailureReason, "article search failed")
	assert.Equal(t, schema.NeedsResearch, out.RequiredOpeningAnchor)
}

func TestExtractorUsesTopResult(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := search.ClientFunc(func(_ context.Context, query string, _ int) ([]search.Result, error) {
		gotQuery = query
		return sampleResults(), nil
	})
	ex := research.New(client, research.Deterministic{}, 5)

	out := ex.LatestPiece(context.Background(), schema.NewProspect("Jane Roe", "Example Magazine", "singles;travel"))
	assert.Equal(t, "Jane Roe Example Magazine singles travel", gotQuery)
	assert.Equal(t, schema.ConfidenceHigh, out.Confidence)
}
