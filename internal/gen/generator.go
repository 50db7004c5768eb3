// Package gen provides the optional text-generation boundary. Research,
// angle and pitch components accept a nil Generator and fall back to
// their deterministic templates.
package gen

import "context"

// Generator produces a single text blob from a system and user prompt.
// The blob is expected to parse as structured JSON; callers must
// tolerate code-fence wrapping (see Decode).
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
