package schema

import "strings"

// NotFound is the sentinel for fields that could not be verified from
// public sources. Unverifiable data is never guessed.
const NotFound = "N/A"

// NeedsResearch is the sentinel status meaning no draft was produced
// because evidence was insufficient.
const NeedsResearch = "NEEDS_RESEARCH"

// Prospect is one input row: a journalist candidate for outreach.
// Immutable after creation.
type Prospect struct {
	Name        string
	Publication string
	Keywords    []string
}

// NewProspect builds a Prospect from raw CSV cell values. Keywords are
// semicolon-separated in the input file.
func NewProspect(name, publication, keywords string) Prospect {
	var kws []string
	for _, k := range strings.Split(keywords, ";") {
		k = strings.TrimSpace(k)
		if k != "" {
			kws = append(kws, k)
		}
	}
	return Prospect{
		Name:        strings.TrimSpace(name),
		Publication: strings.TrimSpace(publication),
		Keywords:    kws,
	}
}

// Citation is an append-only evidence record pointing at a public source.
type Citation struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// JournalistProfile is the discovery output for one prospect. Optional
// fields default to NotFound when unverifiable.
type JournalistProfile struct {
	ProspectName string     `json:"prospect_name"`
	MatchedName  string     `json:"matched_name"`
	Email        string     `json:"email"`
	Publication  string     `json:"publication"`
	ProfileURL   string     `json:"profile_url"`
	Citations    []Citation `json:"citations"`
}

// Normalize fills empty optional fields with the NotFound sentinel.
func (p JournalistProfile) Normalize() JournalistProfile {
	if strings.TrimSpace(p.MatchedName) == "" {
		p.MatchedName = NotFound
	}
	if strings.TrimSpace(p.Email) == "" {
		p.Email = NotFound
	}
	if strings.TrimSpace(p.Publication) == "" {
		p.Publication = NotFound
	}
	if strings.TrimSpace(p.ProfileURL) == "" {
		p.ProfileURL = NotFound
	}
	return p
}
