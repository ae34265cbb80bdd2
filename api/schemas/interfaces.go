package schemas

import (
	"context"
)

// -- LLM Interfaces --

// GenerationOptions provides parameters to control the text generation
// process of the LLM.
type GenerationOptions struct {
	Temperature float64 `json:"temperature"` // Controls randomness. Lower is more deterministic.
	MaxTokens   int     `json:"max_tokens"`  // Upper bound on reply length; 0 leaves it to the service.
}

// GenerationRequest encapsulates a complete request to the LLM. The exploration
// prompt is sent as the single user message; SystemPrompt is optional and
// left empty by the decision engine.
type GenerationRequest struct {
	SystemPrompt string            `json:"system_prompt,omitempty"`
	UserPrompt   string            `json:"user_prompt"`
	Options      GenerationOptions `json:"options"`
}

// LLMClient defines a standard interface for interacting with a text
// completion service, abstracting the specifics of the underlying provider.
//
// Every error returned by Generate is an *InferenceError.
type LLMClient interface {
	// Generate produces a completion for the request, trimmed of surrounding whitespace.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Close cleans up any resources held by the client.
	Close() error
}
