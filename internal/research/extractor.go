// Package research finds and analyzes a writer's latest relevant piece.
// It is the single source of truth for article validity: every failure
// mode surfaces as a low-confidence analysis with a failure reason, so
// the anchor gate downstream stays the only place that decides
// "no pitch".
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/schema"
	"github.com/lifelegallysingle/prswarm/internal/search"
)

const maxQueryKeywords = 6

// Input is the per-prospect context handed to an analysis strategy.
type Input struct {
	ProspectName string
	Outlet       string
	Keywords     []string
	Results      []search.Result
}

// Strategy turns ranked search results into a LatestPieceAnalysis.
// Implementations never return an error: evidence insufficiency is
// modeled as low confidence, not as a fault.
type Strategy interface {
	Analyze(ctx context.Context, in Input) schema.LatestPieceAnalysis
}

// Extractor runs the article search and the configured strategy for
// one prospect.
type Extractor struct {
	client     search.Client
	strategy   Strategy
	numResults int
}

// New builds an Extractor. numResults defaults to 5.
func New(client search.Client, strategy Strategy, numResults int) *Extractor {
	if numResults <= 0 {
		numResults = 5
	}
	return &Extractor{client: client, strategy: strategy, numResults: numResults}
}

// LatestPiece searches for the prospect's most recent relevant piece
// and analyzes it. Search transport faults are converted into a
// low-confidence analysis here, at the narrowest boundary; they do not
// propagate.
func (e *Extractor) LatestPiece(ctx context.Context, prospect schema.Prospect) schema.LatestPieceAnalysis {
	query := Query(prospect.Name, prospect.Publication, prospect.Keywords)

	results, err := e.client.Search(ctx, query, e.numResults)
	if err != nil {
		return failedAnalysis(fmt.Sprintf("article search failed: %v", err))
	}

	return e.strategy.Analyze(ctx, Input{
		ProspectName: prospect.Name,
		Outlet:       prospect.Publication,
		Keywords:     prospect.Keywords,
		Results:      results,
	})
}

// Query concatenates prospect name, outlet and up to six beat keywords.
func Query(name, outlet string, keywords []string) string {
	parts := []string{name}
	if outlet != "" {
		parts = append(parts, outlet)
	}
	if len(keywords) > maxQueryKeywords {
		keywords = keywords[:maxQueryKeywords]
	}
	if len(keywords) > 0 {
		parts = append(parts, strings.Join(keywords, " "))
	}
	return strings.Join(parts, " ")
}

// failedAnalysis is the uniform shape for "we have nothing": every
// narrative field at the sentinel, anchor at NEEDS_RESEARCH.
func failedAnalysis(reason string) schema.LatestPieceAnalysis {
	return schema.LatestPieceAnalysis{
		Title:                 schema.NotFound,
		URL:                   schema.NotFound,
		Publisher:             schema.NotFound,
		ThesisOneLiner:        schema.NotFound,
		WhoItServes:           schema.NotFound,
		EditorialTension:      schema.NotFound,
		WhatThePieceLeftOpen:  schema.NotFound,
		WhyFits:               schema.NotFound,
		RequiredOpeningAnchor: schema.NeedsResearch,
		Confidence:            schema.ConfidenceLow,
		FailureReason:         reason,
	}
}
