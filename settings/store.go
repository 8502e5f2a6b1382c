// Package settings persists the personality and voice preferences as
// individual string keys in the local store.
package settings

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"jadoo/model"
	"jadoo/storage"
)

const (
	KeyPersonalityMode = "personality-mode"
	KeySpeakReplies    = "speak-replies"
	KeySelectedVoice   = "selected-voice"
	KeySpeechRate      = "speech-rate"
	KeySpeechPitch     = "speech-pitch"
	KeySpeechVolume    = "speech-volume"
)

// Keys lists every key the store owns.
var Keys = []string{
	KeyPersonalityMode,
	KeySpeakReplies,
	KeySelectedVoice,
	KeySpeechRate,
	KeySpeechPitch,
	KeySpeechVolume,
}

// Update names the fields to write; nil fields are left untouched.
// An empty SelectedVoice removes the stored voice.
type Update struct {
	PersonalityMode *string
	SpeakReplies    *bool
	SelectedVoice   *string
	SpeechRate      *float64
	SpeechPitch     *float64
	SpeechVolume    *float64
}

type Store struct {
	kv     storage.KV
	logger zerolog.Logger
}

func NewStore(kv storage.KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("component", "settings").Logger(),
	}
}

// Get never fails: unreadable or malformed fields fall back to their defaults
// one by one.
func (s *Store) Get() model.Settings {
	out := model.DefaultSettings()

	if v, ok := s.read(KeyPersonalityMode); ok && v != "" {
		out.PersonalityMode = v
	}
	if v, ok := s.read(KeySpeakReplies); ok {
		out.Voice.SpeakReplies = v != "false"
	}
	if v, ok := s.read(KeySelectedVoice); ok {
		out.Voice.SelectedVoice = v
	}
	out.Voice.SpeechRate = s.readFloat(KeySpeechRate, model.DefaultSpeechRate)
	out.Voice.SpeechPitch = s.readFloat(KeySpeechPitch, model.DefaultSpeechPitch)
	out.Voice.SpeechVolume = s.readFloat(KeySpeechVolume, model.DefaultSpeechVolume)
	out.Voice = out.Voice.Normalize()

	return out
}

// Voice is Get().Voice.
func (s *Store) Voice() model.VoiceSettings {
	return s.Get().Voice
}

// PersonalityID is Get().PersonalityMode.
func (s *Store) PersonalityID() string {
	return s.Get().PersonalityMode
}

func (s *Store) read(key string) (string, bool) {
	v, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("settings read failed, using default")
		return "", false
	}
	return v, ok
}

func (s *Store) readFloat(key string, def float64) float64 {
	v, ok := s.read(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		s.logger.Debug().Str("key", key).Str("value", v).Msg("malformed number, using default")
		return def
	}
	return f
}

// Set writes only the provided fields.
func (s *Store) Set(u Update) error {
	if u.PersonalityMode != nil {
		if err := s.kv.Set(KeyPersonalityMode, *u.PersonalityMode); err != nil {
			return fmt.Errorf("failed to save personality: %w", err)
		}
	}
	if u.SpeakReplies != nil {
		if err := s.kv.Set(KeySpeakReplies, strconv.FormatBool(*u.SpeakReplies)); err != nil {
			return fmt.Errorf("failed to save speak replies: %w", err)
		}
	}
	if u.SelectedVoice != nil {
		var err error
		if *u.SelectedVoice == "" {
			err = s.kv.Delete(KeySelectedVoice)
		} else {
			err = s.kv.Set(KeySelectedVoice, *u.SelectedVoice)
		}
		if err != nil {
			return fmt.Errorf("failed to save selected voice: %w", err)
		}
	}
	for key, v := range map[string]*float64{
		KeySpeechRate:   u.SpeechRate,
		KeySpeechPitch:  u.SpeechPitch,
		KeySpeechVolume: u.SpeechVolume,
	} {
		if v == nil {
			continue
		}
		if err := s.kv.Set(key, strconv.FormatFloat(*v, 'f', -1, 64)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}

// SetVoice persists every voice field of v.
func (s *Store) SetVoice(v model.VoiceSettings) error {
	return s.Set(Update{
		SpeakReplies:  &v.SpeakReplies,
		SelectedVoice: &v.SelectedVoice,
		SpeechRate:    &v.SpeechRate,
		SpeechPitch:   &v.SpeechPitch,
		SpeechVolume:  &v.SpeechVolume,
	})
}

// Reset removes every key; the next Get returns defaults.
func (s *Store) Reset() error {
	for _, key := range Keys {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	s.logger.Info().Msg("settings reset to defaults")
	return nil
}
