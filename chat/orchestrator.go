// Package chat owns the conversation: the message list, its persistence, and
// the single outstanding request to the completion endpoint.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"jadoo/model"
)

// Completer issues one chat request. EndpointClient is the production one.
type Completer interface {
	Complete(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error)
}

type PersonalitySource interface {
	PersonalityID() string
}

type History interface {
	Save(messages []model.Message) error
	Load() ([]model.Message, error)
	Clear() error
}

// Speaker plays a reply. Implementations return immediately.
type Speaker interface {
	Speak(text string, overrides model.VoiceOverrides)
}

type State int

const (
	StateIdle State = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Deps wires an Orchestrator. Completer and History are required.
type Deps struct {
	Completer   Completer
	Personality PersonalitySource
	History     History
	Speaker     Speaker
	Logger      zerolog.Logger
}

type Orchestrator struct {
	completer   Completer
	personality PersonalitySource
	history     History
	speaker     Speaker
	logger      zerolog.Logger

	mu       sync.Mutex
	messages []model.Message
	state    State
	lastErr  error
}

// Exchange is a request that has been accepted and shown but not yet answered.
type Exchange struct {
	Request model.ChatRequest
}

// New restores the persisted conversation. A history that cannot be read is
// logged and treated as empty.
func New(deps Deps) *Orchestrator {
	o := &Orchestrator{
		completer:   deps.Completer,
		personality: deps.Personality,
		history:     deps.History,
		speaker:     deps.Speaker,
		logger:      deps.Logger.With().Str("component", "chat").Logger(),
		messages:    []model.Message{},
	}

	loaded, err := o.history.Load()
	if err != nil {
		o.logger.Warn().Err(err).Msg("discarding unreadable conversation history")
	} else {
		o.messages = loaded
	}
	o.logger.Debug().Int("messages", len(o.messages)).Msg("conversation restored")
	return o
}

// Messages returns a copy of the conversation.
func (o *Orchestrator) Messages() []model.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]model.Message(nil), o.messages...)
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Loading() bool {
	return o.State() == StateSending
}

// LastError is the failure behind the most recent StateFailed, if any.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Send appends text as a user message and waits for the reply. It returns
// false without side effects when text is blank or a request is in flight.
func (o *Orchestrator) Send(ctx context.Context, text string) bool {
	ex, ok := o.Begin(text)
	if !ok {
		return false
	}
	o.Finish(ctx, ex)
	return true
}

// Begin performs the synchronous half of Send: the user message is appended
// and persisted and the state moves to sending. The caller must pass the
// Exchange to Finish.
func (o *Orchestrator) Begin(text string) (*Exchange, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSending {
		return nil, false
	}

	prior := model.ToChatMessages(o.messages)
	o.messages = append(o.messages, model.NewMessage(model.RoleUser, trimmed))
	o.persistLocked()

	return o.startLocked(trimmed, prior), true
}

// Retry replaces the last assistant message with a fresh answer to the user
// message before it. It is a no-op unless the second-to-last message is from
// the user.
func (o *Orchestrator) Retry(ctx context.Context) bool {
	ex, ok := o.BeginRetry()
	if !ok {
		return false
	}
	o.Finish(ctx, ex)
	return true
}

// BeginRetry drops the last message and re-issues the user message before it.
// The user message stays in place, so a completed retry leaves the list the
// same length.
func (o *Orchestrator) BeginRetry() (*Exchange, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := len(o.messages)
	if o.state == StateSending || n < 2 || o.messages[n-2].Role != model.RoleUser {
		return nil, false
	}

	user := o.messages[n-2]
	o.messages = o.messages[:n-1]
	o.persistLocked()

	prior := model.ToChatMessages(o.messages[:n-2])
	o.logger.Debug().Str("message_id", user.ID).Msg("retrying last message")
	return o.startLocked(user.Content, prior), true
}

func (o *Orchestrator) startLocked(text string, prior []model.ChatMessage) *Exchange {
	o.state = StateSending
	o.lastErr = nil
	return &Exchange{Request: model.ChatRequest{
		Message:         text,
		History:         prior,
		PersonalityMode: o.personalityID(),
	}}
}

// Finish issues the exchange's request and records the outcome. The loading
// state is cleared before Finish returns in every case.
func (o *Orchestrator) Finish(ctx context.Context, ex *Exchange) {
	resp, err := o.completer.Complete(ctx, ex.Request)

	o.mu.Lock()
	speak := false
	switch {
	case err != nil:
		o.logger.Error().Err(err).Msg("chat request failed")
		o.messages = append(o.messages, model.NewMessage(model.RoleAssistant, FailureText(err)))
		o.state = StateFailed
		o.lastErr = err
	case resp.IsDemo:
		o.logger.Warn().Str("error", resp.Error).Msg("endpoint answered in demo mode")
		o.messages = append(o.messages, model.NewMessage(model.RoleAssistant, resp.Reply+"\n\n"+resp.Error))
		o.state = StateSucceeded
	default:
		o.messages = append(o.messages, model.NewMessage(model.RoleAssistant, resp.Reply))
		o.state = StateSucceeded
		speak = true
	}
	o.persistLocked()
	o.mu.Unlock()

	if speak && o.speaker != nil {
		o.speaker.Speak(resp.Reply, model.VoiceOverrides{})
	}
}

// Clear empties the conversation and deletes the stored history entry.
func (o *Orchestrator) Clear() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = []model.Message{}
	if o.state != StateSending {
		o.state = StateIdle
	}
	return o.history.Clear()
}

// FailureText picks the synthetic reply shown for a failed request.
func FailureText(err error) string {
	if strings.Contains(err.Error(), "API key") {
		return model.CredentialHintText
	}
	return model.GenericFailureText
}

func (o *Orchestrator) personalityID() string {
	if o.personality == nil {
		return model.DefaultPersonalityID
	}
	return o.personality.PersonalityID()
}

func (o *Orchestrator) persistLocked() {
	if len(o.messages) == 0 {
		return
	}
	if err := o.history.Save(o.messages); err != nil {
		o.logger.Error().Err(err).Msg("failed to persist conversation")
	}
}
