package voice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jadoo/model"
)

const listVoicesTimeout = 5 * time.Second

// CommandSynthesizer speaks through a host binary. Only one utterance plays at
// a time; a new Speak cancels the previous one.
type CommandSynthesizer struct {
	engine   engine
	runner   Runner
	settings SettingsSource
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	voices []Voice
	done   chan struct{}
}

func newCommandSynthesizer(e engine, runner Runner, settings SettingsSource, logger zerolog.Logger) *CommandSynthesizer {
	return &CommandSynthesizer{
		engine:   e,
		runner:   runner,
		settings: settings,
		logger:   logger.With().Str("component", "voice").Str("engine", e.Name()).Logger(),
	}
}

func (s *CommandSynthesizer) IsSupported() bool { return true }

// Speak replaces whatever is playing with text. The previous utterance is
// cancelled in the same critical section that installs the new one, so
// concurrent callers never leave more than one process running.
func (s *CommandSynthesizer) Speak(text string, overrides model.VoiceOverrides) {
	vs := s.settings.Voice().Merge(overrides)
	if !vs.SpeakReplies || strings.TrimSpace(text) == "" {
		s.StopSpeaking()
		return
	}

	var v Voice
	if vs.SelectedVoice != "" {
		found, ok := FindVoice(s.Voices(), vs.SelectedVoice)
		if ok {
			v = found
		} else {
			s.logger.Debug().Str("voice", vs.SelectedVoice).Msg("selected voice not installed, using default")
		}
	}

	args := s.engine.SpeakArgs(text, v, vs)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	prev := s.cancel
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()
	if prev != nil {
		prev()
	}

	go func() {
		defer close(done)
		defer cancel()
		if err := s.runner.Run(ctx, s.engine.Binary(), args...); err != nil && ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("speech playback failed")
		}
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
	}()
}

func (s *CommandSynthesizer) StopSpeaking() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Speaking reports whether an utterance is still playing.
func (s *CommandSynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Wait blocks until the most recent utterance has finished.
func (s *CommandSynthesizer) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Voices lists the engine's voices. The first successful listing is cached.
func (s *CommandSynthesizer) Voices() []Voice {
	s.mu.Lock()
	cached := s.voices
	s.mu.Unlock()
	if cached != nil {
		return cached
	}

	ctx, cancel := context.WithTimeout(context.Background(), listVoicesTimeout)
	defer cancel()
	out, err := s.runner.Output(ctx, s.engine.Binary(), s.engine.ListArgs()...)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list voices")
		return nil
	}
	voices := s.engine.ParseVoices(out)

	s.mu.Lock()
	s.voices = voices
	s.mu.Unlock()
	return voices
}
