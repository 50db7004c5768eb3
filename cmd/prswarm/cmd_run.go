package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lifelegallysingle/prswarm/internal/app"
	"github.com/lifelegallysingle/prswarm/internal/config"
	"github.com/lifelegallysingle/prswarm/internal/util"
)

var runFlags struct {
	prospects   string
	configPath  string
	out         string
	limit       int
	concurrency int
	provider    string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a prospects CSV into anchored pitch drafts",
	Long: `Run the full pipeline over a prospects CSV (columns: name, publication,
keywords). Accepted drafts land in <out>/pitches/<slug>.md; every run also
writes a research summary, a pitch summary and a JSON run manifest.

Environment:
  SEARCH_PROVIDER   Search backend: mock, serpapi or duckduckgo (default mock)
  SERPAPI_API_KEY   API key for the serpapi provider
  GEMINI_API_KEY    Enables generative research/angle/pitch stages
  GEMINI_MODEL      Gemini model name
A .env file in the working directory is loaded if present.`,
	RunE: runBatch,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.prospects, "prospects", "", "Path to prospects CSV file (required)")
	f.StringVar(&runFlags.configPath, "config", "config/config.yaml", "Path to YAML config file")
	f.StringVar(&runFlags.out, "out", "outputs", "Output directory")
	f.IntVar(&runFlags.limit, "limit", 0, "Maximum prospects to process (0 = all)")
	f.IntVar(&runFlags.concurrency, "concurrency", 0, "Override configured concurrency")
	f.StringVar(&runFlags.provider, "provider", "", "Override configured search provider")
	_ = runCmd.MarkFlagRequired("prospects")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	// Not an error to run without one.
	_ = godotenv.Load()

	// The default config path is optional; an explicitly set one must exist.
	required := cmd.Flags().Changed("config")
	cfg, err := config.Load(runFlags.configPath, required)
	if err != nil {
		return fmt.Errorf("config: %s", util.RedactSecrets(err.Error()))
	}
	if runFlags.concurrency != 0 {
		cfg.Concurrency = runFlags.concurrency
	}
	if runFlags.provider != "" {
		cfg.Search.Provider = runFlags.provider
	}

	if err := os.MkdirAll(runFlags.out, 0o755); err != nil {
		return err
	}

	return app.Run(cmd.Context(), cfg, app.Options{
		ProspectsPath: runFlags.prospects,
		OutDir:        runFlags.out,
		Limit:         runFlags.limit,
	})
}
