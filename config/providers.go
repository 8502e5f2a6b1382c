package config

// ProviderDisplayName returns the display name for a provider
func ProviderDisplayName(providerID string) string {
	switch providerID {
	case "ollama":
		return "Ollama"
	case "openrouter":
		return "OpenRouter"
	case "anthropic":
		return "Anthropic"
	case "openai":
		return "OpenAI"
	default:
		return providerID
	}
}

// ProviderDefaultBaseURL returns the default base URL for a provider
func ProviderDefaultBaseURL(providerID string) string {
	switch providerID {
	case "ollama":
		return "http://localhost:11434"
	case "openrouter":
		return "https://openrouter.ai/api/v1"
	case "anthropic":
		return "https://api.anthropic.com"
	case "openai":
		return "https://api.openai.com/v1"
	default:
		return ""
	}
}

// ProviderDefaultModel returns the model used when none is configured
func ProviderDefaultModel(providerID string) string {
	switch providerID {
	case "ollama":
		return "llama3.1:latest"
	case "openrouter":
		return "openai/gpt-4o-mini"
	case "anthropic":
		return "claude-3-5-haiku-latest"
	default:
		return "gpt-4o-mini"
	}
}

// ProviderAPIKeyEnvVar names the environment variable holding a provider's credential.
func ProviderAPIKeyEnvVar(providerID string) string {
	switch providerID {
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "ollama":
		return "OLLAMA_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func ProviderRequiresAPIKey(providerID string) bool {
	return providerID != "ollama"
}
