// Package llm abstracts text generation behind a narrow interface so
// callers can swap the live model for a stub in tests.
package llm

import (
	"context"
	"errors"
)

// ErrGenerationFailed indicates the model did not return usable text.
// Callers fall back to their deterministic templates.
var ErrGenerationFailed = errors.New("text generation failed")

// Generator produces a single text completion.
type Generator interface {
	// Generate returns the model's reply to prompt under the given system
	// instruction. Implementations make exactly one attempt; retry policy
	// belongs to the caller.
	Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}
