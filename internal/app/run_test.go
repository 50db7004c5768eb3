package app_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lifelegallysingle/prswarm/internal/app"
	"github.com/lifelegallysingle/prswarm/internal/config"
	"github.com/lifelegallysingle/prswarm/internal/mockserp"
	"github.com/lifelegallysingle/prswarm/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prospectsCSV = `name,publication,keywords
Jane Roe,Example Magazine,singles;travel
Sam Lee,The Weekly,housing
Pat Kim,The Daily,dating
`

func writeProspects(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prospects.csv")
	require.NoError(t, os.WriteFile(path, []byte(prospectsCSV), 0o600))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	mock := mockserp.New([]search.Result{{
		Title:   "Why solo living is reshaping city life",
		Link:    "https://example.com/solo-living",
		Source:  "The Weekly",
		Snippet: "Solo households now outnumber couples in several major cities.",
	}})
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	cfg := config.Default()
	cfg.Search.Provider = "serpapi"
	cfg.Search.APIKey = "test-key"
	cfg.Search.BaseURL = srv.URL + "/search.json"
	cfg.Search.RateLimit = 0
	cfg.Concurrency = 2

	outDir := t.TempDir()
	err := app.Run(context.Background(), cfg, app.Options{
		ProspectsPath: writeProspects(t),
		OutDir:        outDir,
	})
	require.NoError(t, err)

	// One pitch per prospect, every one anchored to the canned piece.
	entries, err := os.ReadDir(filepath.Join(outDir, "pitches"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	raw, err := os.ReadFile(filepath.Join(outDir, "pitches", "jane-roe.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Hi Jane Roe — I just read your recent piece "Why solo living is reshaping city life"`)

	for _, rel := range []string{
		filepath.Join("research", "journalist_research.csv"),
		"pitch_summary.csv",
		"run_manifest.json",
	} {
		_, err := os.Stat(filepath.Join(outDir, rel))
		assert.NoError(t, err, rel)
	}

	var manifest struct {
		Total      int               `json:"total"`
		Successful int               `json:"successful"`
		Errors     []json.RawMessage `json:"errors"`
	}
	raw, err = os.ReadFile(filepath.Join(outDir, "run_manifest.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Equal(t, 3, manifest.Total)
	assert.Equal(t, 3, manifest.Successful)
	assert.Empty(t, manifest.Errors)

	// Discovery and research each queried once per prospect.
	assert.Len(t, mock.Calls(), 6)
}

func TestRunMockProviderRejectsAll(t *testing.T) {
	cfg := config.Default()
	outDir := t.TempDir()

	err := app.Run(context.Background(), cfg, app.Options{
		ProspectsPath: writeProspects(t),
		OutDir:        outDir,
		Limit:         2,
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(outDir, "pitches"))
	require.NoError(t, err)
	assert.Empty(t, entries, "mock provider has no results, so every prospect is rejected")

	raw, err := os.ReadFile(filepath.Join(outDir, "pitch_summary.csv"))
	require.NoError(t, err)
	summary := string(raw)
	assert.Contains(t, summary, "no real articles found")
	assert.NotContains(t, summary, "Pat Kim", "limit caps the batch at two prospects")
	assert.Equal(t, 3, strings.Count(summary, "\n"), "header plus two rejection rows")
}

func TestRunMissingProspectsFile(t *testing.T) {
	err := app.Run(context.Background(), config.Default(), app.Options{
		ProspectsPath: filepath.Join(t.TempDir(), "absent.csv"),
		OutDir:        t.TempDir(),
	})
	require.Error(t, err)
}
