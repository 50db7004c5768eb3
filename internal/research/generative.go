package research

import (
	"context"
	"encoding/json"

	"github.com/lifelegallysingle/prswarm/internal/gen"
	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/search"
)

const researchSystemPrompt = `You are a sharp media researcher.
You MUST:
- pick the writer's most recent relevant piece (or say why you can't)
- extract editorial tension and what the piece leaves open
- write an opening line that explicitly references the piece (title or unique detail)
- output STRICT JSON that matches the schema exactly
No marketing language. No generic claims. No hallucinated facts.`

// ReasonGenerationInvalid is the failure reason used when generator
// output cannot be parsed or validated.
const ReasonGenerationInvalid = "generation output invalid"

// Generative asks a Generator to analyze the search results, falling
// back to the deterministic strategy (downgraded to low confidence)
// whenever the reply does not parse as a valid analysis. Generator
// faults never propagate past this strategy.
type Generative struct {
	Gen      gen.Generator
	fallback Deterministic
}

type researchPrompt struct {
	ProspectName  string          `json:"prospect_name"`
	Outlet        string          `json:"outlet"`
	BeatKeywords  []string        `json:"beat_keywords"`
	SearchResults []search.Result `json:"search_results"`
}

// pieceWire mirrors LatestPieceAnalysis with a free-form confidence so
// sloppy generator output still decodes.
type pieceWire struct {
	Title                 string   `json:"title"`
	URL                   string   `json:"url"`
	Publisher             string   `json:"publisher"`
	PublishedDate         string   `json:"published_date"`
	ThesisOneLiner        string   `json:"thesis_one_liner"`
	WhoItServes           string   `json:"who_it_serves"`
	EditorialTension      string   `json:"editorial_tension"`
	WhatThePieceLeftOpen  string   `json:"what_the_piece_left_open"`
	WhyFits               string   `json:"why_fits"`
	RequiredOpeningAnchor string   `json:"required_opening_anchor"`
	Confidence            string   `json:"confidence"`
	FailureReason         string   `json:"failure_reason"`
	KeyEvidenceBullets    []string `json:"key_evidence_bullets"`
}

func (g Generative) Analyze(ctx context.Context, in Input) schema.LatestPieceAnalysis {
	payload, err := json.Marshal(researchPrompt{
		ProspectName:  in.ProspectName,
		Outlet:        in.Outlet,
		BeatKeywords:  in.Keywords,
		SearchResults: in.Results,
	})
	if err != nil {
		return g.degrade(ctx, in)
	}

	raw, err := g.Gen.Generate(ctx, researchSystemPrompt, string(payload))
	if err != nil {
		return g.degrade(ctx, in)
	}

	decoded := gen.Decode[pieceWire](raw)
	if !decoded.Ok() {
		return g.degrade(ctx, in)
	}

	w := decoded.Value
	if w.Title == "" && w.RequiredOpeningAnchor == "" {
		// Schema-shaped but empty replies are as useless as unparsable ones.
		return g.degrade(ctx, in)
	}

	out := schema.LatestPieceAnalysis{
		Title:                 w.Title,
		URL:                   w.URL,
		Publisher:             w.Publisher,
		PublishedDate:         w.PublishedDate,
		ThesisOneLiner:        w.ThesisOneLiner,
		WhoItServes:           w.WhoItServes,
		EditorialTension:      w.EditorialTension,
		WhatThePieceLeftOpen:  w.WhatThePieceLeftOpen,
		WhyFits:               w.WhyFits,
		RequiredOpeningAnchor: w.RequiredOpeningAnchor,
		Confidence:            schema.ParseConfidence(w.Confidence),
		FailureReason:         w.FailureReason,
		KeyEvidenceBullets:    w.KeyEvidenceBullets,
	}
	// A usable anchor exists only alongside high confidence.
	if out.Confidence != schema.ConfidenceHigh && out.RequiredOpeningAnchor != "" {
		out.RequiredOpeningAnchor = schema.NeedsResearch
	}
	return out
}

// degrade runs the deterministic fallback and forces low confidence so
// the anchor gate rejects the prospect with a stable reason.
func (g Generative) degrade(ctx context.Context, in Input) schema.LatestPieceAnalysis {
	out := g.fallback.Analyze(ctx, in)
	out.Confidence = schema.ConfidenceLow
	out.FailureReason = ReasonGenerationInvalid
	if out.RequiredOpeningAnchor != "" {
		out.RequiredOpeningAnchor = schema.NeedsResearch
	}
	return out
}
