package report

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/pipeline"
)

const excerptLen = 200

// ResearchHeader is the stable header of the research summary CSV.
func ResearchHeader() []string {
	return []string{
		"prospect_name",
		"matched_name",
		"email",
		"publication",
		"profile_url",
		"piece_title",
		"piece_thesis",
		"confidence",
		"citations",
	}
}

// PitchHeader is the stable header of the pitch summary CSV. The
// trailing manual_label column stays blank for later human labeling.
func PitchHeader() []string {
	return []string{
		"prospect_name",
		"slug",
		"subject_line",
		"pitch_excerpt",
		"manual_label",
	}
}

// WriteResearchCSV writes one research row per processed prospect,
// rejected ones included: the research trail is the audit record even
// when no pitch was produced.
func WriteResearchCSV(w io.Writer, outcomes []pipeline.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResearchHeader()); err != nil {
		return err
	}
	for _, out := range outcomes {
		if out.State == "" {
			// Faulted prospect: nothing trustworthy to report.
			continue
		}
		urls := make([]string, 0, len(out.Profile.Citations))
		for _, c := range out.Profile.Citations {
			urls = append(urls, c.URL)
		}
		if err := cw.Write([]string{
			out.Prospect.Name,
			out.Profile.MatchedName,
			out.Profile.Email,
			out.Profile.Publication,
			out.Profile.ProfileURL,
			out.Piece.Title,
			out.Piece.ThesisOneLiner,
			string(out.Piece.Confidence),
			strings.Join(urls, ";"),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePitchCSV writes one row per prospect: accepted drafts carry the
// slug, subject and an excerpt; rejections carry the refusal reason in
// the excerpt column.
func WritePitchCSV(w io.Writer, outcomes []pipeline.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PitchHeader()); err != nil {
		return err
	}
	for _, out := range outcomes {
		switch {
		case out.Pitch != nil:
			if err := cw.Write([]string{
				out.Prospect.Name,
				out.Pitch.Slug,
				out.Pitch.SubjectLine,
				excerpt(out.Pitch.Body),
				"",
			}); err != nil {
				return err
			}
		case out.Refusal != nil:
			if err := cw.Write([]string{
				out.Prospect.Name,
				"",
				"",
				out.Refusal.Reason,
				"",
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func excerpt(body string) string {
	flat := strings.ReplaceAll(body, "\n", " ")
	runes := []rune(flat)
	if len(runes) <= excerptLen {
		return flat
	}
	return string(runes[:excerptLen]) + "..."
}
