package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/mockserp"
	"github.com/lifelegallysingle/prswarm/internal/search"
)

func main() {
	addr := defaultString("MOCK_SERPAPI_ADDR", ":8080")
	fixture := defaultString("MOCK_SERPAPI_FIXTURE", "")

	fs := flag.NewFlagSet("mock-serpapi", flag.ExitOnError)
	fs.StringVar(&addr, "addr", addr, "Listen address")
	fs.StringVar(&fixture, "fixture", fixture, "JSON file with an array of {title, link, source, snippet} results")
	_ = fs.Parse(os.Args[1:])

	results := defaultResults()
	if fixture != "" {
		loaded, err := mockserp.LoadResults(fixture)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
			os.Exit(1)
		}
		results = loaded
	}

	srv := mockserp.New(results)
	_, _ = fmt.Fprintf(os.Stdout, "mock-serpapi listening on %s (%d canned results)\n", addr, len(results))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func defaultResults() []search.Result {
	return []search.Result{
		{
			Title:   "Why more adults are choosing to stay single",
			Link:    "https://example.com/staying-single",
			Source:  "Example Magazine",
			Snippet: "A look at the growing number of adults building full lives outside of coupledom.",
		},
		{
			Title:   "The quiet rise of solo travel",
			Link:    "https://example.com/solo-travel",
			Source:  "Example Magazine",
			Snippet: "Solo travel bookings keep climbing, and the industry is catching up.",
		},
	}
}

func defaultString(envVar string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envVar))
	if v == "" {
		return fallback
	}
	return v
}
