package schema

// PitchDraft is an accepted outreach draft. Body is markdown whose
// first non-blank line equals the piece's RequiredOpeningAnchor.
type PitchDraft struct {
	ProspectName string     `json:"prospect_name"`
	Slug         string     `json:"slug"`
	SubjectLine  string     `json:"subject_line"`
	Body         string     `json:"body"`
	Citations    []Citation `json:"citations"`
}

// Refusal is the structured payload produced instead of a draft when
// evidence was insufficient. Status is always NEEDS_RESEARCH.
type Refusal struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// NewRefusal builds a NEEDS_RESEARCH refusal with the given reason.
func NewRefusal(reason string) Refusal {
	return Refusal{Status: NeedsResearch, Reason: reason}
}
