package model

import "context"

// Provider abstracts completion backends (OpenAI, OpenRouter, Anthropic, Ollama).
//
// The interface lives in model so that provider implementations and the
// server can both depend on it without an import cycle.
type Provider interface {
	// Complete performs one non-streaming completion and returns the reply text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error

	// GetModel returns the model name used for API calls.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Name returns the provider id ("openai", "anthropic", ...).
	Name() string
}

// CompletionRequest is a fully assembled prompt plus sampling limits.
type CompletionRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}
