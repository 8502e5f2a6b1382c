package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Markers embedded in synthetic assistant messages.
const (
	WarningMarker    = "⚠️"
	CredentialMarker = "🔑"
)

const (
	CredentialHintText = CredentialMarker + " Please configure your OpenAI API key in the environment variables to start chatting!"
	GenericFailureText = WarningMarker + " Jadoo couldn't reply, try again"
)

// Message represents a chat message in the conversation. Immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps a message with a time-ordered id and a millisecond timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        newID(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// TimestampLayout is how message timestamps are written: UTC with exactly
// three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(m), m.Timestamp.UTC().Format(TimestampLayout)})
}

// UnmarshalJSON accepts any RFC 3339 timestamp, with or without a fraction.
func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	aux := struct {
		*plain
		Timestamp string `json:"timestamp"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Timestamp == "" {
		m.Timestamp = time.Time{}
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, aux.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid message timestamp %q: %w", aux.Timestamp, err)
	}
	m.Timestamp = ts
	return nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsRetryable reports whether the message carries the generic failure marker.
func (m Message) IsRetryable() bool {
	return m.Role == RoleAssistant && strings.Contains(m.Content, WarningMarker)
}

// ChatMessage is the role/content pair sent to the endpoint and to providers.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToChatMessages strips ids and timestamps for the wire.
func ToChatMessages(messages []Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message         string        `json:"message"`
	History         []ChatMessage `json:"history,omitempty"`
	PersonalityMode string        `json:"personalityMode,omitempty"`
}

// ChatResponse is the body of a completed /api/chat response. Reply is always
// present, even when the provider returned nothing.
type ChatResponse struct {
	Reply  string `json:"reply"`
	IsDemo bool   `json:"isDemo,omitempty"`
	Error  string `json:"error,omitempty"`
}
