// Package gate holds the pure pass/fail checks between pipeline stages.
// Checks run in a fixed order and the first failing check supplies the
// reason code; that ordering is part of the contract consumers (and
// their CSV reports) rely on.
package gate

import (
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/schema"
)

// Stable machine-readable reason codes.
const (
	ReasonNoLatestPiece     = "no_latest_piece_returned"
	ReasonNotHighConfidence = "latest_piece_not_high_confidence"
	ReasonMissingAnchor     = "missing_required_opening_anchor"
	ReasonInvalidAnchor     = "invalid_required_opening_anchor"
	ReasonMissingTitle      = "missing_latest_piece_title"
	ReasonMissingURL        = "missing_latest_piece_url"

	ReasonNoAngle            = "no_angle_generated"
	ReasonLowConfidenceAngle = "low_confidence_angle"
	ReasonAngleTooThin       = "angle_too_thin"
)

// MinAngleLength is the minimum trimmed length of a usable
// one-sentence angle.
const MinAngleLength = 25

// ValidationResult is a pure judgement value: ok, or a reason code.
type ValidationResult struct {
	OK     bool
	Reason string
}

func pass() ValidationResult {
	return ValidationResult{OK: true}
}

func fail(reason string) ValidationResult {
	return ValidationResult{OK: false, Reason: reason}
}

// CheckAnchor validates that the analysis holds a real, credible
// article anchor. A pitch is forbidden without one.
func CheckAnchor(piece *schema.LatestPieceAnalysis) ValidationResult {
	if piece == nil {
		return fail(ReasonNoLatestPiece)
	}

	if piece.Confidence != schema.ConfidenceHigh {
		if piece.FailureReason != "" {
			return fail(piece.FailureReason)
		}
		return fail(ReasonNotHighConfidence)
	}

	if piece.RequiredOpeningAnchor == "" {
		return fail(ReasonMissingAnchor)
	}

	anchor := strings.ToUpper(strings.TrimSpace(piece.RequiredOpeningAnchor))
	if anchor == schema.NeedsResearch || anchor == schema.NotFound {
		return fail(ReasonInvalidAnchor)
	}

	title := strings.ToUpper(strings.TrimSpace(piece.Title))
	if title == "" || title == schema.NotFound {
		return fail(ReasonMissingTitle)
	}

	if url := strings.ToUpper(strings.TrimSpace(piece.URL)); url == "" || url == schema.NotFound {
		return fail(ReasonMissingURL)
	}

	return pass()
}

// CheckAngle validates that the proposed angle is strong enough to
// pitch. Runs only after CheckAnchor passed.
func CheckAngle(angle *schema.PrimaryAngle) ValidationResult {
	if angle == nil {
		return fail(ReasonNoAngle)
	}

	if angle.Confidence != schema.ConfidenceHigh {
		return fail(ReasonLowConfidenceAngle)
	}

	if len(strings.TrimSpace(angle.OneSentenceAngle)) < MinAngleLength {
		return fail(ReasonAngleTooThin)
	}

	return pass()
}
