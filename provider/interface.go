// Package provider implements model.Provider for the completion backends
// the endpoint can forward to.
//
// Every implementation performs exactly one non-streaming request per
// Complete call: SDK-level retries are disabled so a quota error reaches the
// caller on the first attempt.
//
// # Usage
//
//	cfg := provider.Config{
//	    Type:   provider.ProviderTypeOpenAI,
//	    Model:  "gpt-4o-mini",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	}
//	p, err := provider.NewProvider(cfg)
//	if err != nil {
//	    // handle error
//	}
//	reply, err := p.Complete(ctx, model.CompletionRequest{...})
package provider

import "net/http"

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama

	// HTTPClient overrides the transport; nil uses the SDK default.
	HTTPClient *http.Client
}
