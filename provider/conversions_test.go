package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jadoo/model"
	"jadoo/provider/testutil"
)

func prompt() []model.ChatMessage {
	return append([]model.ChatMessage{testutil.SystemMessage("You are Jadoo.")}, testutil.TestMessages()...)
}

func TestConvertToOpenAIMessages(t *testing.T) {
	got := ConvertToOpenAIMessages(prompt())
	require.Len(t, got, 4)

	require.NotNil(t, got[0].OfSystem)
	require.NotNil(t, got[1].OfUser)
	require.NotNil(t, got[2].OfAssistant)
	require.NotNil(t, got[3].OfUser)
}

func TestConvertToAnthropicMessages(t *testing.T) {
	msgs, system := convertToAnthropicMessages(prompt())

	require.Len(t, system, 1)
	assert.Equal(t, "You are Jadoo.", system[0].Text)

	require.Len(t, msgs, 3)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
	assert.Equal(t, "user", string(msgs[2].Role))
}

func TestConvertToOllamaMessages(t *testing.T) {
	got := ConvertToOllamaMessages(prompt())
	require.Len(t, got, 4)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, "Hello, how are you?", got[1].Content)
	assert.Equal(t, "assistant", got[2].Role)
}

func TestConvertEmpty(t *testing.T) {
	assert.Empty(t, ConvertToOpenAIMessages(nil))
	assert.Empty(t, ConvertToOllamaMessages(nil))
	msgs, system := convertToAnthropicMessages(nil)
	assert.Empty(t, msgs)
	assert.Empty(t, system)
}
