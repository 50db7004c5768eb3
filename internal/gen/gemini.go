package gen

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lifelegallysingle/prswarm/internal/retry"
	"google.golang.org/genai"
)

// GeminiConfig wires a Gemini-backed generator.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// Gemini implements Generator on top of the Gemini API with JSON
// response formatting.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini validates the config and builds the client.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			CandidateCount:    1,
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return "", classifyErr(err)
	}
	return resp.Text(), nil
}

// classifyErr wraps transient failures so adapter retry loops back off
// and try again instead of failing the prospect.
func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code/100 == 5 {
			return &retry.Transient{Err: err}
		}
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &retry.Transient{Err: err}
	}
	return err
}
