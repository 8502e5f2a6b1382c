package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jadoo/model"
	"jadoo/provider"
	"jadoo/provider/testutil"
)

var (
	_ model.Provider = (*provider.OpenAIProvider)(nil)
	_ model.Provider = (*provider.AnthropicProvider)(nil)
	_ model.Provider = (*provider.OllamaProvider)(nil)
	_ model.Provider = (*provider.RateLimited)(nil)
	_ model.Provider = (*testutil.MockProvider)(nil)
)

// TestProviderContract defines the contract every provider satisfies.
func TestProviderContract(t *testing.T) {
	tests := []struct {
		name     string
		provider model.Provider
	}{
		{"Mock", testutil.NewMockProvider("test-model")},
		{"RateLimitedMock", provider.WithRateLimit(testutil.NewMockProvider("test-model"), 100, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			reply, err := tt.provider.Complete(ctx, model.CompletionRequest{
				Messages:    testutil.SingleUserMessage("Hello"),
				MaxTokens:   1000,
				Temperature: 0.7,
			})
			require.NoError(t, err)
			assert.NotEmpty(t, reply)

			tt.provider.SetModel("new-model")
			assert.Equal(t, "new-model", tt.provider.GetModel())

			assert.NoError(t, tt.provider.Ping(ctx))
		})
	}
}

func TestWithRateLimitDisabled(t *testing.T) {
	mock := testutil.NewMockProvider("m")
	assert.Same(t, mock, provider.WithRateLimit(mock, 0, 0))
}

func TestRateLimitedHonoursContext(t *testing.T) {
	p := provider.WithRateLimit(testutil.NewMockProvider("m"), 0.001, 1)

	_, err := p.Complete(context.Background(), model.CompletionRequest{Messages: testutil.SingleUserMessage("a")})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Complete(ctx, model.CompletionRequest{Messages: testutil.SingleUserMessage("b")})
	require.Error(t, err)
	assert.Equal(t, provider.KindOther, provider.Classify(err))
}
