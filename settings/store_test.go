package settings

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jadoo/model"
	"jadoo/storage"
)

func newStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewStore(kv, zerolog.Nop()), kv
}

func ptr[T any](v T) *T { return &v }

func TestGetDefaults(t *testing.T) {
	s, _ := newStore(t)

	got := s.Get()
	assert.Equal(t, model.DefaultSettings(), got)
	assert.Equal(t, "default", got.PersonalityMode)
	assert.True(t, got.Voice.SpeakReplies)
	assert.Empty(t, got.Voice.SelectedVoice)
}

func TestSpeakRepliesOnlyFalseDisables(t *testing.T) {
	tests := []struct {
		stored string
		want   bool
	}{
		{"false", false},
		{"true", true},
		{"FALSE", true},
		{"0", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			s, kv := newStore(t)
			require.NoError(t, kv.Set(KeySpeakReplies, tt.stored))
			assert.Equal(t, tt.want, s.Get().Voice.SpeakReplies)
		})
	}
}

func TestMalformedNumberResetsOnlyThatField(t *testing.T) {
	s, kv := newStore(t)
	require.NoError(t, kv.Set(KeySpeechRate, "abc"))
	require.NoError(t, kv.Set(KeySpeechPitch, "1.5"))
	require.NoError(t, kv.Set(KeySpeechVolume, "NaN"))

	v := s.Get().Voice
	assert.Equal(t, 1.0, v.SpeechRate)
	assert.Equal(t, 1.5, v.SpeechPitch)
	assert.Equal(t, 1.0, v.SpeechVolume)
}

func TestSetWritesOnlyProvidedKeys(t *testing.T) {
	s, kv := newStore(t)

	require.NoError(t, s.Set(Update{SpeechRate: ptr(1.25)}))

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{KeySpeechRate}, keys)

	v, _, _ := kv.Get(KeySpeechRate)
	assert.Equal(t, "1.25", v)
	assert.Equal(t, 1.25, s.Get().Voice.SpeechRate)
}

func TestSetRoundTrip(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Set(Update{
		PersonalityMode: ptr("creative"),
		SpeakReplies:    ptr(false),
		SelectedVoice:   ptr("en-gb"),
		SpeechRate:      ptr(0.8),
		SpeechPitch:     ptr(1.2),
		SpeechVolume:    ptr(0.5),
	}))

	got := s.Get()
	assert.Equal(t, "creative", got.PersonalityMode)
	assert.Equal(t, "creative", s.PersonalityID())
	assert.Equal(t, model.VoiceSettings{
		SpeakReplies:  false,
		SelectedVoice: "en-gb",
		SpeechRate:    0.8,
		SpeechPitch:   1.2,
		SpeechVolume:  0.5,
	}, got.Voice)
}

func TestEmptyVoiceRemovesKey(t *testing.T) {
	s, kv := newStore(t)
	require.NoError(t, s.Set(Update{SelectedVoice: ptr("en-gb")}))
	require.NoError(t, s.Set(Update{SelectedVoice: ptr("")}))

	_, ok, _ := kv.Get(KeySelectedVoice)
	assert.False(t, ok)
	assert.Empty(t, s.Voice().SelectedVoice)
}

func TestSetVoice(t *testing.T) {
	s, _ := newStore(t)
	v := model.DefaultVoiceSettings()
	v.SpeechPitch = 1.7
	require.NoError(t, s.SetVoice(v))
	assert.Equal(t, v, s.Voice())
}

func TestReset(t *testing.T) {
	s, kv := newStore(t)
	require.NoError(t, s.Set(Update{
		PersonalityMode: ptr("analytical"),
		SpeakReplies:    ptr(false),
		SelectedVoice:   ptr("en-gb"),
		SpeechRate:      ptr(2.0),
	}))
	require.NoError(t, kv.Set("conversation-history", "[]"))

	require.NoError(t, s.Reset())

	assert.Equal(t, model.DefaultSettings(), s.Get())
	keys, _ := kv.Keys()
	assert.Equal(t, []string{"conversation-history"}, keys)
}

type failingKV struct{ storage.KV }

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingKV) Set(string, string) error         { return errors.New("disk gone") }

func TestGetNeverFails(t *testing.T) {
	s := NewStore(failingKV{storage.NewMemoryStore()}, zerolog.Nop())
	assert.Equal(t, model.DefaultSettings(), s.Get())
	assert.Error(t, s.Set(Update{SpeakReplies: ptr(true)}))
}
