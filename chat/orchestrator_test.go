package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jadoo/model"
	"jadoo/provider/testutil"
	"jadoo/storage"
)

type fakeCompleter struct {
	mu       sync.Mutex
	requests []model.ChatRequest
	respond  func(req model.ChatRequest) (model.ChatResponse, error)
}

func (f *fakeCompleter) Complete(_ context.Context, req model.ChatRequest) (model.ChatResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(req)
}

func (f *fakeCompleter) calls() []model.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ChatRequest(nil), f.requests...)
}

func replying(reply string) *fakeCompleter {
	return &fakeCompleter{respond: func(model.ChatRequest) (model.ChatResponse, error) {
		return model.ChatResponse{Reply: reply}, nil
	}}
}

func failing(err error) *fakeCompleter {
	return &fakeCompleter{respond: func(model.ChatRequest) (model.ChatResponse, error) {
		return model.ChatResponse{}, err
	}}
}

type fakeSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (f *fakeSpeaker) Speak(text string, _ model.VoiceOverrides) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
}

func (f *fakeSpeaker) said() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

type fixedPersonality string

func (p fixedPersonality) PersonalityID() string { return string(p) }

type harness struct {
	orch    *Orchestrator
	kv      *storage.MemoryStore
	history *storage.HistoryStore
	speaker *fakeSpeaker
}

func newHarness(t *testing.T, c Completer, seed []model.Message) *harness {
	t.Helper()
	return newHarnessAs(t, c, seed, "friendly")
}

func newHarnessAs(t *testing.T, c Completer, seed []model.Message, personality string) *harness {
	t.Helper()
	kv := storage.NewMemoryStore()
	history := storage.NewHistoryStore(kv)
	if seed != nil {
		require.NoError(t, history.Save(seed))
	}
	speaker := &fakeSpeaker{}
	orch := New(Deps{
		Completer:   c,
		Personality: fixedPersonality(personality),
		History:     history,
		Speaker:     speaker,
		Logger:      zerolog.Nop(),
	})
	return &harness{orch: orch, kv: kv, history: history, speaker: speaker}
}

func (h *harness) persisted(t *testing.T) []model.Message {
	t.Helper()
	msgs, err := h.history.Load()
	require.NoError(t, err)
	return msgs
}

func TestSendSuccess(t *testing.T) {
	c := replying("Hi there")
	h := newHarness(t, c, nil)

	require.True(t, h.orch.Send(context.Background(), "  Hello  "))

	msgs := h.orch.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "Hello", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Hi there", msgs[1].Content)
	assert.Equal(t, StateSucceeded, h.orch.State())
	assert.False(t, h.orch.Loading())

	calls := c.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Hello", calls[0].Message)
	assert.Empty(t, calls[0].History)
	assert.Equal(t, "friendly", calls[0].PersonalityMode)

	assert.Equal(t, []string{"Hi there"}, h.speaker.said())
	assert.Equal(t, msgs, h.persisted(t))
}

func TestSendPassesPriorHistory(t *testing.T) {
	c := replying("Paris")
	seed := testutil.Conversation("Hello", "Hi! How can I help?")
	h := newHarness(t, c, seed)

	require.True(t, h.orch.Send(context.Background(), "Capital of France?"))

	calls := c.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, model.ToChatMessages(seed), calls[0].History)
	assert.Len(t, h.orch.Messages(), 4)
}

func TestSendBlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		c := replying("unused")
		h := newHarness(t, c, nil)

		assert.False(t, h.orch.Send(context.Background(), text))
		assert.Empty(t, h.orch.Messages())
		assert.Empty(t, c.calls())
		_, ok, err := h.kv.Get(storage.HistoryKey)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestSendWhileInFlightIsNoop(t *testing.T) {
	release := make(chan struct{})
	c := &fakeCompleter{respond: func(model.ChatRequest) (model.ChatResponse, error) {
		<-release
		return model.ChatResponse{Reply: "done"}, nil
	}}
	h := newHarness(t, c, nil)

	ex, ok := h.orch.Begin("first")
	require.True(t, ok)
	assert.True(t, h.orch.Loading())

	assert.False(t, h.orch.Send(context.Background(), "second"))
	_, ok = h.orch.BeginRetry()
	assert.False(t, ok)
	assert.Len(t, h.orch.Messages(), 1)

	close(release)
	h.orch.Finish(context.Background(), ex)

	assert.Len(t, c.calls(), 1)
	assert.Len(t, h.orch.Messages(), 2)
	assert.False(t, h.orch.Loading())
}

func TestBeginIsOptimistic(t *testing.T) {
	h := newHarness(t, replying("later"), nil)

	_, ok := h.orch.Begin("hello")
	require.True(t, ok)

	msgs := h.orch.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, msgs, h.persisted(t))
}

func TestSendDemoReply(t *testing.T) {
	c := &fakeCompleter{respond: func(model.ChatRequest) (model.ChatResponse, error) {
		return model.ChatResponse{Reply: "canned", IsDemo: true, Error: "quota gone"}, nil
	}}
	h := newHarness(t, c, nil)

	require.True(t, h.orch.Send(context.Background(), "hi"))

	msgs := h.orch.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "canned\n\nquota gone", msgs[1].Content)
	assert.Empty(t, h.speaker.said())
	assert.Equal(t, StateSucceeded, h.orch.State())
}

func TestSendFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"credential", &StatusError{Code: 500, Message: "OpenAI API key is not configured."}, model.CredentialHintText},
		{"generic", &StatusError{Code: 500, Message: "API Error: overloaded"}, model.GenericFailureText},
		{"transport", errors.New("connection refused"), model.GenericFailureText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, failing(tt.err), nil)

			require.True(t, h.orch.Send(context.Background(), "hi"))

			msgs := h.orch.Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, tt.want, msgs[1].Content)
			assert.Equal(t, model.RoleAssistant, msgs[1].Role)
			assert.Equal(t, StateFailed, h.orch.State())
			assert.ErrorIs(t, h.orch.LastError(), tt.err)
			assert.Empty(t, h.speaker.said())
			assert.Equal(t, msgs, h.persisted(t))
		})
	}
}

func TestGenericFailureIsRetryable(t *testing.T) {
	h := newHarness(t, failing(errors.New("boom")), nil)
	h.orch.Send(context.Background(), "hi")

	msgs := h.orch.Messages()
	assert.True(t, msgs[1].IsRetryable())
}

func TestRetryReplacesFailedReply(t *testing.T) {
	attempts := 0
	c := &fakeCompleter{respond: func(model.ChatRequest) (model.ChatResponse, error) {
		attempts++
		if attempts == 1 {
			return model.ChatResponse{}, errors.New("boom")
		}
		return model.ChatResponse{Reply: "second time lucky"}, nil
	}}
	seed := testutil.Conversation("earlier", "answer")
	h := newHarness(t, c, seed)

	require.True(t, h.orch.Send(context.Background(), "question"))
	before := h.orch.Messages()
	require.Len(t, before, 4)

	require.True(t, h.orch.Retry(context.Background()))

	after := h.orch.Messages()
	require.Len(t, after, len(before))
	assert.Equal(t, before[:3], after[:3])
	assert.Equal(t, "second time lucky", after[3].Content)
	assert.NotEqual(t, before[3].ID, after[3].ID)

	calls := c.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])
	assert.Equal(t, model.ToChatMessages(seed), calls[1].History)
	assert.Equal(t, after, h.persisted(t))
}

func TestRetryNotApplicable(t *testing.T) {
	tests := []struct {
		name string
		seed []model.Message
	}{
		{"empty", nil},
		{"single message", testutil.Conversation("hello")},
		{"second to last is assistant", append(testutil.Conversation("a", "b"), model.NewMessage(model.RoleAssistant, "c"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := replying("unused")
			h := newHarness(t, c, tt.seed)
			before := h.orch.Messages()

			assert.False(t, h.orch.Retry(context.Background()))
			assert.Equal(t, before, h.orch.Messages())
			assert.Empty(t, c.calls())
		})
	}
}

func TestClearRemovesHistoryKey(t *testing.T) {
	h := newHarness(t, replying("ok"), testutil.Conversation("a", "b"))
	require.Len(t, h.orch.Messages(), 2)

	require.NoError(t, h.orch.Clear())

	assert.Empty(t, h.orch.Messages())
	_, ok, err := h.kv.Get(storage.HistoryKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StateIdle, h.orch.State())
}

func TestNewRestoresHistory(t *testing.T) {
	seed := testutil.Conversation("hello", "hi")
	h := newHarness(t, replying("ok"), seed)

	got := h.orch.Messages()
	require.Len(t, got, 2)
	for i := range seed {
		assert.Equal(t, seed[i].ID, got[i].ID)
		assert.True(t, seed[i].Timestamp.Equal(got[i].Timestamp))
	}
}

func TestNewSwallowsCorruptHistory(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.HistoryKey, "{not json"))

	orch := New(Deps{
		Completer: replying("ok"),
		History:   storage.NewHistoryStore(kv),
		Logger:    zerolog.Nop(),
	})
	assert.Empty(t, orch.Messages())

	require.True(t, orch.Send(context.Background(), "hi"))
	assert.Len(t, orch.Messages(), 2)
}

func TestDefaultPersonalityWhenUnset(t *testing.T) {
	c := replying("ok")
	orch := New(Deps{
		Completer: c,
		History:   storage.NewHistoryStore(storage.NewMemoryStore()),
		Logger:    zerolog.Nop(),
	})
	orch.Send(context.Background(), "hi")
	assert.Equal(t, model.DefaultPersonalityID, c.calls()[0].PersonalityMode)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "sending", StateSending.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
