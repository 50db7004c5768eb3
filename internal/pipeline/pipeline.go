// Package pipeline sequences the per-prospect stages:
// discovery -> research -> anchor gate -> angle -> angle gate -> compose.
// Gate failures are ordinary data and terminate in a rejection; only
// genuinely unexpected adapter faults escape as errors.
package pipeline

import (
	"context"
	"fmt"

	"github.com/lifelegallysingle/prswarm/internal/angle"
	"github.com/lifelegallysingle/prswarm/internal/discovery"
	"github.com/lifelegallysingle/prswarm/internal/gate"
	"github.com/lifelegallysingle/prswarm/internal/pitch"
	"github.com/lifelegallysingle/prswarm/internal/research"
	"github.com/lifelegallysingle/prswarm/internal/schema"
)

// State names the position of a prospect inside the pipeline.
type State string

const (
	StateDiscovering State = "DISCOVERING"
	StateResearching State = "RESEARCHING"
	StateAnchorCheck State = "ANCHOR_CHECK"
	StateAngling     State = "ANGLING"
	StateAngleCheck  State = "ANGLE_CHECK"
	StateComposing   State = "COMPOSING"
	StateDone        State = "DONE"
	StateRejected    State = "REJECTED"
)

// Outcome is the terminal result for one prospect. Exactly one of
// Pitch and Refusal is set; Refusal implies State == StateRejected.
type Outcome struct {
	Prospect schema.Prospect
	State    State

	Profile schema.JournalistProfile
	Piece   schema.LatestPieceAnalysis
	Angle   *schema.PrimaryAngle

	Pitch   *schema.PitchDraft
	Refusal *schema.Refusal
}

// Pipeline wires the stage components for one run. Construct once,
// share across prospects; all components are safe for concurrent use.
type Pipeline struct {
	Discovery *discovery.Discoverer
	Research  *research.Extractor
	Angles    *angle.Synthesizer
	Composer  *pitch.Composer
	BrandHint string
}

// Run executes the full state machine for one prospect. Rejection is
// final: there are no retries at this layer.
func (p *Pipeline) Run(ctx context.Context, prospect schema.Prospect) (Outcome, error) {
	out := Outcome{Prospect: prospect, State: StateDiscovering}

	profile, err := p.Discovery.Run(ctx, prospect)
	if err != nil {
		return out, fmt.Errorf("discovery: %w", err)
	}
	out.Profile = profile

	out.State = StateResearching
	out.Piece = p.Research.LatestPiece(ctx, prospect)

	out.State = StateAnchorCheck
	if check := gate.CheckAnchor(&out.Piece); !check.OK {
		return reject(out, check.Reason), nil
	}

	out.State = StateAngling
	primary := p.Angles.Synthesize(ctx, out.Piece, p.BrandHint)
	out.Angle = &primary

	out.State = StateAngleCheck
	if check := gate.CheckAngle(out.Angle); !check.OK {
		return reject(out, check.Reason), nil
	}

	out.State = StateComposing
	draft, refusal := p.Composer.Compose(ctx, prospect, profile.Email, out.Piece, primary)
	if refusal != nil {
		return reject(out, refusal.Reason), nil
	}

	out.State = StateDone
	out.Pitch = &draft
	return out, nil
}

func reject(out Outcome, reason string) Outcome {
	out.State = StateRejected
	r := schema.NewRefusal(reason)
	out.Refusal = &r
	out.Pitch = nil
	return out
}
