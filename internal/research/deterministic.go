package research

import (
	"context"
	"fmt"

	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/search"
)

const (
	// ReasonNoArticles is the failure reason when search came back empty.
	ReasonNoArticles = "no real articles found"

	thesisMaxLen   = 180
	evidenceMaxLen = 120
)

// Deterministic analyzes results without any generative backend. The
// top-ranked result is taken as the latest piece; there is no
// date-based recency reasoning. If upstream ranking is not
// recency-ordered the anchor may reference an older piece. That is a
// known limitation carried over from the source behavior.
type Deterministic struct{}

func (Deterministic) Analyze(_ context.Context, in Input) schema.LatestPieceAnalysis {
	if len(in.Results) == 0 {
		return failedAnalysis(ReasonNoArticles)
	}

	r0 := in.Results[0]
	title := search.CleanText(r0.Title)
	link := search.CleanText(r0.Link)
	source := search.CleanText(r0.Source)
	snippet := search.CleanText(r0.Snippet)

	analysis := schema.LatestPieceAnalysis{
		Title:                orNotFound(title),
		URL:                  orNotFound(link),
		Publisher:            orNotFound(source),
		ThesisOneLiner:       orNotFound(truncate(snippet, thesisMaxLen)),
		WhoItServes:          "Readers of this coverage",
		EditorialTension:     "The unresolved tension or tradeoff surfaced in the piece",
		WhatThePieceLeftOpen: "What readers still want answered",
		WhyFits:              "Extends the conversation with a singles-first lens",
	}
	if snippet != "" {
		analysis.KeyEvidenceBullets = []string{truncate(snippet, evidenceMaxLen)}
	}

	// High confidence requires all three evidence fields; a missing one
	// names itself in the failure reason.
	switch {
	case title == "":
		analysis.Confidence = schema.ConfidenceLow
		analysis.FailureReason = "latest piece is missing a title"
	case link == "":
		analysis.Confidence = schema.ConfidenceLow
		analysis.FailureReason = "latest piece is missing a url"
	case source == "":
		analysis.Confidence = schema.ConfidenceLow
		analysis.FailureReason = "latest piece is missing a source"
	default:
		analysis.Confidence = schema.ConfidenceHigh
	}

	if analysis.Confidence == schema.ConfidenceHigh {
		analysis.RequiredOpeningAnchor = Anchor(in.ProspectName, title)
	} else {
		analysis.RequiredOpeningAnchor = schema.NeedsResearch
	}
	return analysis
}

// Anchor renders the fixed greeting template with the verbatim title.
func Anchor(prospectName, title string) string {
	return fmt.Sprintf(`Hi %s — I just read your recent piece "%s" and had a follow-up idea.`, prospectName, title)
}

func orNotFound(s string) string {
	if s == "" {
		return schema.NotFound
	}
	return s
}

// truncate caps s at max runes; slicing bytes could split a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
