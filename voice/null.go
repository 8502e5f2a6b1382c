package voice

import (
	"github.com/rs/zerolog"

	"jadoo/model"
)

// NullSynthesizer is used when no speech engine is installed.
type NullSynthesizer struct {
	logger zerolog.Logger
}

func (NullSynthesizer) IsSupported() bool { return false }

func (n NullSynthesizer) Speak(string, model.VoiceOverrides) {
	n.logger.Warn().Msg("speech synthesis not supported")
}

func (NullSynthesizer) StopSpeaking() {}

func (NullSynthesizer) Voices() []Voice { return nil }

type NullRecognizer struct{}

func (NullRecognizer) IsSupported() bool { return false }

func (NullRecognizer) StartListening(Callbacks) (func(), error) {
	return nil, ErrUnsupported
}
