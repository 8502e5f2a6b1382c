package testutil

import (
	"context"
	"sync"

	"jadoo/model"
)

// MockProvider implements model.Provider for testing. It records every request.
type MockProvider struct {
	// Configurable responses
	CompleteFunc func(ctx context.Context, req model.CompletionRequest) (string, error)
	PingFunc     func(ctx context.Context) error

	mu           sync.Mutex
	requests     []model.CompletionRequest
	currentModel string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.CompleteFunc = mock.defaultComplete
	mock.PingFunc = mock.defaultPing
	return mock
}

// NewReplyingProvider returns a mock that always answers reply.
func NewReplyingProvider(reply string) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.CompleteFunc = func(context.Context, model.CompletionRequest) (string, error) {
		return reply, nil
	}
	return mock
}

// NewFailingProvider returns a mock whose completions all fail with err.
func NewFailingProvider(err error) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.CompleteFunc = func(context.Context, model.CompletionRequest) (string, error) {
		return "", err
	}
	return mock
}

func (m *MockProvider) defaultComplete(ctx context.Context, req model.CompletionRequest) (string, error) {
	if len(req.Messages) > 0 {
		return "Mock response", nil
	}
	return "", nil
}

func (m *MockProvider) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// Requests returns the completion requests seen so far.
func (m *MockProvider) Requests() []model.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockProvider) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentModel = model
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
