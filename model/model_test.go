package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	a := NewMessage(RoleUser, "hi")
	b := NewMessage(RoleAssistant, "hello")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, RoleUser, a.Role)
	assert.Equal(t, a.Timestamp, a.Timestamp.Truncate(time.Millisecond))
}

func TestMessageJSONRoundTrip(t *testing.T) {
	m := NewMessage(RoleAssistant, "42")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"assistant"`)

	var got Message
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, m.ID, got.ID)
	assert.True(t, m.Timestamp.Equal(got.Timestamp))
}

func TestMessageTimestampLayout(t *testing.T) {
	m := Message{
		ID:        "m1",
		Content:   "hi",
		Role:      RoleUser,
		Timestamp: time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600)),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1","content":"hi","role":"user","timestamp":"2026-03-04T04:06:07.000Z"}`, string(data))

	m.Timestamp = time.Date(2026, 3, 4, 5, 6, 7, 120_000_000, time.UTC)
	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp":"2026-03-04T05:06:07.120Z"`)
}

func TestMessageTimestampParsing(t *testing.T) {
	for _, ts := range []string{"2026-03-04T05:06:07.120Z", "2026-03-04T05:06:07.12Z", "2026-03-04T06:06:07.12+01:00"} {
		var got Message
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x","timestamp":"`+ts+`"}`), &got), ts)
		assert.True(t, time.Date(2026, 3, 4, 5, 6, 7, 120_000_000, time.UTC).Equal(got.Timestamp), ts)
		assert.Equal(t, "x", got.ID)
	}

	var got Message
	assert.Error(t, json.Unmarshal([]byte(`{"timestamp":"yesterday"}`), &got))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{"generic failure", NewMessage(RoleAssistant, GenericFailureText), true},
		{"credential hint", NewMessage(RoleAssistant, CredentialHintText), false},
		{"demo with warning", NewMessage(RoleAssistant, "demo\n\n⚠️ OpenAI quota exceeded."), true},
		{"plain reply", NewMessage(RoleAssistant, "42"), false},
		{"user text with marker", NewMessage(RoleUser, "⚠️ look"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.IsRetryable())
		})
	}
}

func TestPersonalities(t *testing.T) {
	all := Personalities()
	require.Len(t, all, 5)

	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
		assert.NotEmpty(t, p.SystemPrompt)
	}
	assert.Equal(t, []string{"default", "professional", "friendly", "creative", "analytical"}, ids)

	all[0].SystemPrompt = "mutated"
	assert.NotEqual(t, "mutated", ResolvePersonality("default").SystemPrompt)
}

func TestResolvePersonality(t *testing.T) {
	assert.Equal(t, "analytical", ResolvePersonality("analytical").ID)
	assert.Equal(t, "default", ResolvePersonality("pirate").ID)
	assert.Equal(t, "default", ResolvePersonality("").ID)

	_, ok := LookupPersonality("pirate")
	assert.False(t, ok)
}

func TestVoiceNormalize(t *testing.T) {
	v := VoiceSettings{
		SpeechRate:   math.NaN(),
		SpeechPitch:  5,
		SpeechVolume: math.Inf(-1),
	}.Normalize()

	assert.Equal(t, DefaultSpeechRate, v.SpeechRate)
	assert.Equal(t, MaxSpeechPitch, v.SpeechPitch)
	assert.Equal(t, DefaultSpeechVolume, v.SpeechVolume)
}

func TestVoiceMerge(t *testing.T) {
	stored := DefaultVoiceSettings()
	stored.SelectedVoice = "en-us"

	off := false
	rate := 1.5
	got := stored.Merge(VoiceOverrides{SpeakReplies: &off, SpeechRate: &rate})

	assert.False(t, got.SpeakReplies)
	assert.Equal(t, 1.5, got.SpeechRate)
	assert.Equal(t, "en-us", got.SelectedVoice)
	assert.True(t, stored.SpeakReplies)
}
