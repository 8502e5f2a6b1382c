package model

import "math"

const (
	DefaultSpeechRate   = 1.0
	DefaultSpeechPitch  = 1.0
	DefaultSpeechVolume = 1.0

	MinSpeechRate   = 0.5
	MaxSpeechRate   = 2.0
	MinSpeechPitch  = 0.5
	MaxSpeechPitch  = 2.0
	MinSpeechVolume = 0.0
	MaxSpeechVolume = 1.0
)

// VoiceTestPhrase is spoken by the settings panel's test button.
const VoiceTestPhrase = "Hello! This is how Jadoo will sound when speaking to you."

// VoiceSettings are the persisted speech preferences. An empty SelectedVoice
// means the host default voice.
type VoiceSettings struct {
	SpeakReplies  bool    `json:"speakReplies"`
	SelectedVoice string  `json:"selectedVoice,omitempty"`
	SpeechRate    float64 `json:"speechRate"`
	SpeechPitch   float64 `json:"speechPitch"`
	SpeechVolume  float64 `json:"speechVolume"`
}

func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		SpeakReplies: true,
		SpeechRate:   DefaultSpeechRate,
		SpeechPitch:  DefaultSpeechPitch,
		SpeechVolume: DefaultSpeechVolume,
	}
}

// Normalize replaces non-finite numbers with defaults and clamps the rest into range.
func (v VoiceSettings) Normalize() VoiceSettings {
	v.SpeechRate = coerce(v.SpeechRate, DefaultSpeechRate, MinSpeechRate, MaxSpeechRate)
	v.SpeechPitch = coerce(v.SpeechPitch, DefaultSpeechPitch, MinSpeechPitch, MaxSpeechPitch)
	v.SpeechVolume = coerce(v.SpeechVolume, DefaultSpeechVolume, MinSpeechVolume, MaxSpeechVolume)
	return v
}

func coerce(v, def, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return math.Min(hi, math.Max(lo, v))
}

// VoiceOverrides are per-call replacements; nil fields keep the persisted value.
type VoiceOverrides struct {
	SpeakReplies  *bool
	SelectedVoice *string
	SpeechRate    *float64
	SpeechPitch   *float64
	SpeechVolume  *float64
}

// Merge applies explicit overrides over v.
func (v VoiceSettings) Merge(o VoiceOverrides) VoiceSettings {
	if o.SpeakReplies != nil {
		v.SpeakReplies = *o.SpeakReplies
	}
	if o.SelectedVoice != nil {
		v.SelectedVoice = *o.SelectedVoice
	}
	if o.SpeechRate != nil {
		v.SpeechRate = *o.SpeechRate
	}
	if o.SpeechPitch != nil {
		v.SpeechPitch = *o.SpeechPitch
	}
	if o.SpeechVolume != nil {
		v.SpeechVolume = *o.SpeechVolume
	}
	return v.Normalize()
}

// Settings is the fully populated view of everything the settings store holds.
type Settings struct {
	PersonalityMode string        `json:"personalityMode"`
	Voice           VoiceSettings `json:"voice"`
}

func DefaultSettings() Settings {
	return Settings{
		PersonalityMode: DefaultPersonalityID,
		Voice:           DefaultVoiceSettings(),
	}
}
