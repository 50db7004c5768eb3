// Package batch fans the prospect pipeline out over a batch with
// bounded concurrency and auditable run accounting. One prospect's
// failure never cancels its siblings: partial-batch success is always
// preferred over total failure, so there is no fail-fast mode here.
package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/lifelegallysingle/prswarm/internal/pipeline"
	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/util"
	"golang.org/x/sync/semaphore"
)

// StagePipeline is the manifest stage recorded for unexpected faults
// that escaped a prospect's pipeline run.
const StagePipeline = "pipeline"

// StageNeedsResearch is the manifest stage recorded for gate rejections.
const StageNeedsResearch = "needs_research"

// RunFunc executes the pipeline for a single prospect.
type RunFunc func(ctx context.Context, prospect schema.Prospect) (pipeline.Outcome, error)

// Run processes all prospects with at most concurrency in flight
// (unbounded when concurrency <= 0). The returned outcomes are indexed
// like prospects; a faulted prospect leaves a zero Outcome and a
// manifest error under StagePipeline. The manifest is sealed before
// Run returns.
func Run(ctx context.Context, prospects []schema.Prospect, concurrency int, runOne RunFunc) ([]pipeline.Outcome, *RunManifest) {
	manifest := NewManifest(len(prospects))

	limit := int64(concurrency)
	if limit <= 0 {
		limit = int64(len(prospects))
	}
	if limit == 0 {
		limit = 1
	}
	sem := semaphore.NewWeighted(limit)

	outcomes := make([]pipeline.Outcome, len(prospects))

	var wg sync.WaitGroup
	for i, prospect := range prospects {
		if err := sem.Acquire(ctx, 1); err != nil {
			manifest.RecordError(prospect.Name, StagePipeline, err.Error())
			continue
		}
		wg.Add(1)
		go func(i int, prospect schema.Prospect) {
			defer wg.Done()
			defer sem.Release(1)

			out, err := runSafely(ctx, runOne, prospect)
			if err != nil {
				manifest.RecordError(prospect.Name, StagePipeline, util.RedactSecrets(err.Error()))
				return
			}
			outcomes[i] = out

			if out.Refusal != nil {
				manifest.RecordError(prospect.Name, StageNeedsResearch, out.Refusal.Reason)
				return
			}
			manifest.RecordSuccess()
		}(i, prospect)
	}

	wg.Wait()
	manifest.Finish()
	return outcomes, manifest
}

// runSafely isolates one prospect's execution: a panic inside the
// pipeline is converted into an error instead of crashing the batch.
func runSafely(ctx context.Context, runOne RunFunc, prospect schema.Prospect) (out pipeline.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return runOne(ctx, prospect)
}
