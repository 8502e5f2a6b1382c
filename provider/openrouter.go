package provider

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3/option"
)

// NewOpenRouterProvider returns an OpenAI-compatible provider pointed at OpenRouter.
// OpenRouter model names carry a vendor prefix, e.g. "openai/gpt-4o-mini".
func NewOpenRouterProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenRouter", ErrMissingAPIKey)
	}
	return newOpenAICompatible(cfg,
		"https://openrouter.ai/api/v1",
		"openai/gpt-4o-mini",
		string(ProviderTypeOpenRouter),
		option.WithHeader("X-Title", "Jadoo"),
	), nil
}

// StripProviderPrefix removes vendor prefixes from OpenRouter model names.
// "meta-llama/llama-3.2-90b-instruct" → "llama-3.2-90b-instruct"
func StripProviderPrefix(modelName string) string {
	if idx := strings.Index(modelName, "/"); idx != -1 {
		return modelName[idx+1:]
	}
	return modelName
}
