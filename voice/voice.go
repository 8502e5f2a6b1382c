// Package voice adapts the host's speech engines: reading replies aloud and
// turning one spoken utterance into text. Either capability may be missing,
// in which case a null implementation stands in.
package voice

import (
	"errors"
	"strings"

	"jadoo/model"
)

var (
	ErrUnsupported      = errors.New("speech recognition is not supported on this system")
	ErrAlreadyListening = errors.New("speech recognition is already listening")
)

// Recognition error codes passed to Callbacks.OnError.
const (
	ErrCodeNoSpeech     = "no-speech"
	ErrCodeAudioCapture = "audio-capture"
	ErrCodeAborted      = "aborted"
)

// Voice is one host voice. ID is what the engine expects on its command line.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// SettingsSource supplies the persisted voice preferences.
type SettingsSource interface {
	Voice() model.VoiceSettings
}

type Synthesizer interface {
	IsSupported() bool
	// Speak cancels whatever is playing and starts text in the background.
	Speak(text string, overrides model.VoiceOverrides)
	StopSpeaking()
	Voices() []Voice
}

// Callbacks receive the events of one listening session. Any may be nil.
type Callbacks struct {
	OnResult func(transcript string)
	OnStart  func()
	OnEnd    func()
	OnError  func(code string)
}

func (c Callbacks) result(t string) {
	if c.OnResult != nil {
		c.OnResult(t)
	}
}

func (c Callbacks) start() {
	if c.OnStart != nil {
		c.OnStart()
	}
}

func (c Callbacks) end() {
	if c.OnEnd != nil {
		c.OnEnd()
	}
}

func (c Callbacks) error(code string) {
	if c.OnError != nil {
		c.OnError(code)
	}
}

type Recognizer interface {
	IsSupported() bool
	// StartListening begins a single-utterance session. The returned stop
	// func aborts it.
	StartListening(cb Callbacks) (stop func(), err error)
}

// EnglishVoices keeps the voices whose language starts with "en".
func EnglishVoices(voices []Voice) []Voice {
	var out []Voice
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(v.Lang), "en") {
			out = append(out, v)
		}
	}
	return out
}

// FindVoice looks a voice up by display name.
func FindVoice(voices []Voice, name string) (Voice, bool) {
	for _, v := range voices {
		if v.Name == name {
			return v, true
		}
	}
	return Voice{}, false
}
