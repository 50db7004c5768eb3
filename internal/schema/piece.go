package schema

import "strings"

// Confidence is the three-level trust tag attached to derived evidence.
// Gate decisions key off it.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence normalizes a free-form confidence string, defaulting
// to low for anything unrecognized.
func ParseConfidence(raw string) Confidence {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// LatestPieceAnalysis is a compact, auditable representation of a
// writer's most recent relevant piece. Produced once per prospect by
// the research stage and never mutated after the anchor gate reads it.
//
// Invariant: a non-sentinel RequiredOpeningAnchor never coexists with
// low confidence or a missing title.
type LatestPieceAnalysis struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date,omitempty"`

	ThesisOneLiner   string `json:"thesis_one_liner"`
	WhoItServes      string `json:"who_it_serves"`
	EditorialTension string `json:"editorial_tension"`

	WhatThePieceLeftOpen string `json:"what_the_piece_left_open"`
	WhyFits              string `json:"why_fits"`

	// RequiredOpeningAnchor is the exact opening line the pitch must
	// start with. Empty or NEEDS_RESEARCH when evidence is missing.
	RequiredOpeningAnchor string `json:"required_opening_anchor"`

	Confidence    Confidence `json:"confidence"`
	FailureReason string     `json:"failure_reason,omitempty"`

	KeyEvidenceBullets []string `json:"key_evidence_bullets"`
}

// PrimaryAngle is the single ownable pitch angle derived from a piece
// analysis. Exactly one angle per prospect; candidate lists are
// deliberately not part of the model.
type PrimaryAngle struct {
	AngleName        string     `json:"angle_name"`
	OneSentenceAngle string     `json:"one_sentence_angle"`
	TensionHook      string     `json:"tension_hook"`
	WhatMakesItNew   string     `json:"what_makes_it_new"`
	WhyYou           string     `json:"why_you"`
	WhyUs            string     `json:"why_us"`
	ProofPoints      []string   `json:"proof_points"`
	RiskOrObjection  string     `json:"risk_or_objection,omitempty"`
	Confidence       Confidence `json:"confidence"`
}

// MaxProofPoints caps the proof point list on a PrimaryAngle.
const MaxProofPoints = 5

// ClampProofPoints drops proof points beyond MaxProofPoints.
func (a PrimaryAngle) ClampProofPoints() PrimaryAngle {
	if len(a.ProofPoints) > MaxProofPoints {
		a.ProofPoints = a.ProofPoints[:MaxProofPoints]
	}
	return a
}
