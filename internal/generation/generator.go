package generation

import "context"

// TextGenerator defines the interface for a single call to the language
// model. This interface is the boundary between the batch pipeline and the
// external AI service: "batch" is a prompt-construction convention, so one
// method covers both single-term and multi-term prompts.
type TextGenerator interface {
	// Generate sends one prompt and returns the raw response text.
	// Errors wrap ErrTransientFailure or ErrInvalidResponse; callers only
	// distinguish success from failure.
	Generate(ctx context.Context, prompt string) (string, error)
}
