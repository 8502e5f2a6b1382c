package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		wantName    string
		wantModel   string
	}{
		{
			name:      "ollama provider with defaults",
			config:    Config{Type: ProviderTypeOllama},
			wantName:  "ollama",
			wantModel: "llama3.1:latest",
		},
		{
			name: "openai provider",
			config: Config{
				Type:   ProviderTypeOpenAI,
				APIKey: "test-key",
			},
			wantName:  "openai",
			wantModel: "gpt-4o-mini",
		},
		{
			name: "openrouter provider",
			config: Config{
				Type:   ProviderTypeOpenRouter,
				Model:  "meta-llama/llama-3.2-90b-instruct",
				APIKey: "test-key",
			},
			wantName:  "openrouter",
			wantModel: "meta-llama/llama-3.2-90b-instruct",
		},
		{
			name: "anthropic provider",
			config: Config{
				Type:   ProviderTypeAnthropic,
				Model:  "claude-3-5-haiku-latest",
				APIKey: "test-key",
			},
			wantName:  "anthropic",
			wantModel: "claude-3-5-haiku-latest",
		},
		{
			name:        "openai without key",
			config:      Config{Type: ProviderTypeOpenAI},
			expectError: true,
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("unknown")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantModel, p.GetModel())

			p.SetModel("other")
			assert.Equal(t, "other", p.GetModel())
		})
	}
}

func TestMissingKeyIsAuthError(t *testing.T) {
	_, err := NewProvider(Config{Type: ProviderTypeAnthropic})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.Equal(t, KindAuth, Classify(err))
}

func TestMapProviderIDToType(t *testing.T) {
	tests := map[string]ProviderType{
		"ollama":     ProviderTypeOllama,
		"openrouter": ProviderTypeOpenRouter,
		"openai":     ProviderTypeOpenAI,
		"anthropic":  ProviderTypeAnthropic,
		"other":      ProviderType("other"),
	}
	for id, want := range tests {
		assert.Equal(t, want, MapProviderIDToType(id), id)
	}
	assert.False(t, RequiresAPIKey(ProviderTypeOllama))
	assert.True(t, RequiresAPIKey(ProviderTypeOpenAI))
}

func TestStripProviderPrefix(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", StripProviderPrefix("openai/gpt-4o-mini"))
	assert.Equal(t, "llama3", StripProviderPrefix("llama3"))
}
