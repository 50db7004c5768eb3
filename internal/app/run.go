// Package app wires the configured adapters into a full batch run and
// owns the run's file outputs.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lifelegallysingle/prswarm/internal/angle"
	"github.com/lifelegallysingle/prswarm/internal/batch"
	"github.com/lifelegallysingle/prswarm/internal/config"
	"github.com/lifelegallysingle/prswarm/internal/discovery"
	"github.com/lifelegallysingle/prswarm/internal/gen"
	"github.com/lifelegallysingle/prswarm/internal/pipeline"
	"github.com/lifelegallysingle/prswarm/internal/pitch"
	"github.com/lifelegallysingle/prswarm/internal/report"
	"github.com/lifelegallysingle/prswarm/internal/research"
	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/search"
	"github.com/lifelegallysingle/prswarm/internal/util"
)

// Options are the per-invocation knobs on top of the resolved config.
type Options struct {
	ProspectsPath string
	OutDir        string

	// Limit caps the number of prospects processed; 0 means all.
	Limit int
}

// Run executes a full batch: read prospects, process them through the
// pipeline with bounded concurrency, and write pitches, summaries and
// the run manifest under OutDir.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	runID := fmt.Sprintf("run-%d", time.Now().UnixNano())
	logf := func(format string, args ...any) {
		prefix := make([]any, 0, len(args)+1)
		prefix = append(prefix, runID)
		prefix = append(prefix, args...)
		logger.Printf("run=%s "+format, prefix...)
	}
	runStart := time.Now()

	prospects, err := loadProspects(opts.ProspectsPath, opts.Limit)
	if err != nil {
		return err
	}
	logf("loaded %d prospects from %s", len(prospects), opts.ProspectsPath)

	pipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	logf(
		"batch start: provider=%s concurrency=%d rateLimit=%d generative=%t",
		cfg.Search.Provider,
		cfg.Concurrency,
		cfg.Search.RateLimit,
		cfg.Generator.APIKey != "",
	)

	outcomes, manifest := batch.Run(ctx, prospects, cfg.Concurrency, pipe.Run)

	pitchesDir := filepath.Join(opts.OutDir, "pitches")
	researchDir := filepath.Join(opts.OutDir, "research")
	for _, dir := range []string{pitchesDir, researchDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	accepted := 0
	for _, out := range outcomes {
		if out.Pitch == nil {
			continue
		}
		path, err := report.WritePitchMarkdown(pitchesDir, *out.Pitch)
		if err != nil {
			return err
		}
		accepted++
		logf("pitch written: prospect=%q path=%s", out.Prospect.Name, path)
	}

	if err := writeCSVFile(filepath.Join(researchDir, "journalist_research.csv"), outcomes, report.WriteResearchCSV); err != nil {
		return err
	}
	if err := writeCSVFile(filepath.Join(opts.OutDir, "pitch_summary.csv"), outcomes, report.WritePitchCSV); err != nil {
		return err
	}
	if err := report.WriteManifestJSON(filepath.Join(opts.OutDir, "run_manifest.json"), manifest); err != nil {
		return err
	}

	snap := manifest.Snapshot()
	logf(
		"batch complete: total=%d accepted=%d errors=%d duration=%s",
		snap.Total,
		accepted,
		len(snap.Errors),
		time.Since(runStart).Round(time.Millisecond),
	)
	return nil
}

func loadProspects(path string, limit int) ([]schema.Prospect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	prospects, err := report.ReadProspectsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read prospects %s: %w", path, err)
	}
	if limit > 0 && limit < len(prospects) {
		prospects = prospects[:limit]
	}
	return prospects, nil
}

func buildPipeline(ctx context.Context, cfg config.Config) (*pipeline.Pipeline, error) {
	client, err := search.NewClient(search.ProviderConfig{
		Provider:   cfg.Search.Provider,
		APIKey:     cfg.Search.APIKey,
		BaseURL:    cfg.Search.BaseURL,
		RateLimit:  cfg.Search.RateLimit,
		MaxRetries: cfg.Search.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("search client: %s", util.RedactSecrets(err.Error()))
	}

	var generator gen.Generator
	if cfg.Generator.APIKey != "" {
		g, err := gen.NewGemini(ctx, gen.GeminiConfig{
			APIKey:  cfg.Generator.APIKey,
			Model:   cfg.Generator.Model,
			BaseURL: cfg.Generator.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("generator: %s", util.RedactSecrets(err.Error()))
		}
		generator = g
	}

	var researchStrategy research.Strategy = research.Deterministic{}
	var angleStrategy angle.Strategy = angle.Deterministic{}
	if generator != nil {
		researchStrategy = research.Generative{Gen: generator}
		angleStrategy = angle.Generative{Gen: generator}
	}

	return &pipeline.Pipeline{
		Discovery: discovery.New(client, cfg.Search.NumResults),
		Research:  research.New(client, researchStrategy, cfg.Search.NumResults),
		Angles:    angle.New(angleStrategy),
		Composer: &pitch.Composer{
			Gen:           generator,
			BrandOneLiner: cfg.Brand.OneLiner,
		},
		BrandHint: cfg.Brand.AssetsHint,
	}, nil
}

func writeCSVFile(path string, outcomes []pipeline.Outcome, write func(w io.Writer, outcomes []pipeline.Outcome) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, outcomes); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
