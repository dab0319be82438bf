package llm

import "context"

// Service defines the interface for the text-completion collaborator
type Service interface {
	// Complete sends a prompt and returns the first candidate's text.
	// Sampling is deterministic (temperature 0) with a bounded output
	// budget; the call never retries.
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the identifier of the selected model
	Model() string
}

// DefaultModel is used when model listing fails or no preferred model is
// available
const DefaultModel = "gemini-1.5-flash"

// preferredModels is the fixed preference order for model selection
var preferredModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}
