package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"

	"jadoo/model"
)

// OllamaProvider talks to a local Ollama server. No credential is needed.
type OllamaProvider struct {
	client  *api.Client
	model   string
	baseURL string
}

func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OllamaProvider{
		client:  api.NewClient(parsedURL, httpClient),
		model:   modelName,
		baseURL: baseURL,
	}, nil
}

// Complete issues a single non-streaming chat request.
func (p *OllamaProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:    p.model,
		Messages: ConvertToOllamaMessages(req.Messages),
		Stream:   &stream,
		Options:  map[string]any{},
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		chatReq.Options["temperature"] = req.Temperature
	}

	var reply string
	err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		reply += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama completion error: %w", err)
	}
	return reply, nil
}

func (p *OllamaProvider) GetModel() string {
	return p.model
}

func (p *OllamaProvider) SetModel(model string) {
	p.model = model
}

func (p *OllamaProvider) Name() string {
	return string(ProviderTypeOllama)
}

func (p *OllamaProvider) Ping(ctx context.Context) error {
	if err := p.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("Ollama ping failed: %w", err)
	}
	return nil
}
