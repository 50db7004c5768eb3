// Package pitch renders the final outreach draft. The one
// non-negotiable property lives here: the body's first non-blank line
// equals the piece's required opening anchor byte-for-byte, or no draft
// is produced at all.
package pitch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/gen"
	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/util"
)

const composerSystemPrompt = `You are a world-class PR strategist who writes journalist-first pitches.
You write like a human, not a bot.

Non-negotiable:
1) The FIRST LINE must explicitly reference the writer's specific recent piece.
   Use the provided required_opening_anchor verbatim (do not paraphrase).
2) The pitch must show 'editorial tension' and a clear angle the brand can uniquely own.
3) No generic compliments. No hype.
4) Keep it short: ~150-220 words + 2 bullet proof points + 1 CTA question.
5) Public-source only; do not invent facts.`

const maxSubjectLen = 180

// Composer renders pitch drafts. A nil Generator selects the
// deterministic template.
type Composer struct {
	Gen           gen.Generator
	BrandOneLiner string
}

// Compose renders a draft for a prospect whose piece and angle both
// passed their gates. It re-checks the evidence anyway: the composer
// must be safe to call in isolation, so a low-confidence piece or a
// missing anchor yields a refusal instead of a draft. A non-nil
// refusal means no draft was produced.
func (c *Composer) Compose(
	ctx context.Context,
	prospect schema.Prospect,
	email string,
	piece schema.LatestPieceAnalysis,
	primary schema.PrimaryAngle,
) (schema.PitchDraft, *schema.Refusal) {
	if piece.Confidence != schema.ConfidenceHigh || piece.Title == schema.NotFound {
		r := schema.NewRefusal("could not reliably identify a recent relevant piece to anchor this pitch")
		return schema.PitchDraft{}, &r
	}

	anchor := strings.TrimSpace(piece.RequiredOpeningAnchor)
	if anchor == "" || strings.ToUpper(anchor) == schema.NeedsResearch {
		r := schema.NewRefusal("missing required opening anchor for this writer's latest piece")
		return schema.PitchDraft{}, &r
	}

	body := c.deterministicBody(anchor, piece, primary)
	if c.Gen != nil {
		if generated, ok := c.generateBody(ctx, prospect, email, piece, primary); ok {
			// Trust the generator only when it reused the anchor verbatim.
			if firstNonBlankLine(generated) == anchor {
				body = generated
			}
		}
	}

	subject := fmt.Sprintf("Follow-up to: %s", piece.Title)
	if runes := []rune(subject); len(runes) > maxSubjectLen {
		subject = string(runes[:maxSubjectLen])
	}

	var citations []schema.Citation
	if piece.URL != "" && piece.URL != schema.NotFound {
		citations = append(citations, schema.Citation{
			URL:         piece.URL,
			Description: "Latest piece used as the opening anchor",
		})
	}

	return schema.PitchDraft{
		ProspectName: prospect.Name,
		Slug:         util.Slugify(prospect.Name),
		SubjectLine:  subject,
		Body:         body,
		Citations:    citations,
	}, nil
}

// deterministicBody assembles the fixed template: anchor line, tension
// paragraph, story/why-now/why-you block, up to two proof points, one
// closing question.
func (c *Composer) deterministicBody(anchor string, piece schema.LatestPieceAnalysis, primary schema.PrimaryAngle) string {
	var b strings.Builder
	b.WriteString(anchor)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "I'm reaching out with a follow-up angle that builds directly on the tension you surfaced: **%s**.\n\n", piece.EditorialTension)

	fmt.Fprintf(&b, "**The story:** %s\n", primary.OneSentenceAngle)
	fmt.Fprintf(&b, "**Why now:** %s\n", primary.WhatMakesItNew)
	fmt.Fprintf(&b, "**Why it fits your beat:** %s\n\n", primary.WhyYou)

	fmt.Fprintf(&b, "A quick note on *why us*: %s\n\n", primary.WhyUs)

	b.WriteString("Proof points:\n")
	for i := 0; i < 2; i++ {
		if i < len(primary.ProofPoints) {
			fmt.Fprintf(&b, "- %s\n", primary.ProofPoints[i])
		} else {
			b.WriteString("- (add proof point)\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("If you're exploring a follow-up to your piece, would a 10-minute chat be useful this week?\n")
	if c.BrandOneLiner != "" {
		fmt.Fprintf(&b, "\n— %s (draft-only)\n", c.BrandOneLiner)
	}
	return b.String()
}

type composePrompt struct {
	Prospect struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"prospect"`
	LatestPiece   schema.LatestPieceAnalysis `json:"latest_piece"`
	PrimaryAngle  schema.PrimaryAngle        `json:"primary_angle"`
	BrandOneLiner string                     `json:"brand_one_liner"`
	Constraints   map[string]bool            `json:"constraints"`
}

func (c *Composer) generateBody(
	ctx context.Context,
	prospect schema.Prospect,
	email string,
	piece schema.LatestPieceAnalysis,
	primary schema.PrimaryAngle,
) (string, bool) {
	p := composePrompt{
		LatestPiece:   piece,
		PrimaryAngle:  primary,
		BrandOneLiner: c.BrandOneLiner,
		Constraints: map[string]bool{
			"first_line_must_equal_required_opening_anchor": true,
			"no_generic_flattery":                           true,
			"keep_short":                                    true,
			"draft_only":                                    true,
		},
	}
	p.Prospect.Name = prospect.Name
	p.Prospect.Email = email

	payload, err := json.Marshal(p)
	if err != nil {
		return "", false
	}
	raw, err := c.Gen.Generate(ctx, composerSystemPrompt, string(payload))
	if err != nil {
		return "", false
	}
	body := gen.StripFences(raw)
	if body == "" {
		return "", false
	}
	return body, true
}

func firstNonBlankLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimRight(line, "\r")
		}
	}
	return ""
}
