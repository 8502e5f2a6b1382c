package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"jadoo/model"
)

// OpenAIProvider implements model.Provider using the official OpenAI SDK.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
	name    string
}

// NewOpenAIProvider creates a new OpenAI provider instance.
// Defaults: base URL https://api.openai.com/v1, model gpt-4o-mini.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI", ErrMissingAPIKey)
	}
	return newOpenAICompatible(cfg, "https://api.openai.com/v1", "gpt-4o-mini", string(ProviderTypeOpenAI)), nil
}

func newOpenAICompatible(cfg Config, defaultURL, defaultModel, name string, extra ...option.RequestOption) *OpenAIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	opts = append(opts, extra...)

	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		model:   modelName,
		baseURL: baseURL,
		name:    name,
	}
}

// Complete sends one chat completion request and returns the first choice.
func (p *OpenAIProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(req.Messages),
		Model:    openai.ChatModel(p.model),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s completion error: %w", p.displayName(), err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.displayName())
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) displayName() string {
	if p.name == string(ProviderTypeOpenRouter) {
		return "OpenRouter"
	}
	return "OpenAI"
}

func (p *OpenAIProvider) GetModel() string {
	return p.model
}

func (p *OpenAIProvider) SetModel(model string) {
	p.model = model
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

// Ping lists models; it is the cheapest authenticated call.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", p.displayName(), err)
	}
	return nil
}
