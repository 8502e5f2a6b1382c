package voice

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"jadoo/config"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// NewSynthesizer picks the speech engine once. engine "auto" probes say on
// macOS, then espeak-ng and espeak; "none" disables speech.
func NewSynthesizer(cfg config.VoiceConfig, settings SettingsSource, logger zerolog.Logger) Synthesizer {
	return newSynthesizer(cfg, settings, ExecRunner{}, logger)
}

func newSynthesizer(cfg config.VoiceConfig, settings SettingsSource, runner Runner, logger zerolog.Logger) Synthesizer {
	e, ok := selectEngine(strings.ToLower(strings.TrimSpace(cfg.Engine)))
	if !ok {
		logger.Info().Str("engine", cfg.Engine).Msg("no speech engine available, replies will not be spoken")
		return NullSynthesizer{logger: logger}
	}
	logger.Debug().Str("engine", e.Name()).Str("binary", e.Binary()).Msg("speech engine selected")
	return newCommandSynthesizer(e, runner, settings, logger)
}

func selectEngine(name string) (engine, bool) {
	switch name {
	case "none", "off":
		return nil, false
	case "say":
		return probeSay()
	case "espeak", "espeak-ng":
		return probeEspeak()
	default:
		if runtime.GOOS == "darwin" {
			if e, ok := probeSay(); ok {
				return e, true
			}
		}
		return probeEspeak()
	}
}

func probeSay() (engine, bool) {
	if _, err := lookPath("say"); err != nil {
		return nil, false
	}
	return sayEngine{}, true
}

func probeEspeak() (engine, bool) {
	for _, bin := range []string{"espeak-ng", "espeak"} {
		if _, err := lookPath(bin); err == nil {
			return espeakEngine{binary: bin}, true
		}
	}
	return nil, false
}

// NewRecognizer returns a CommandRecognizer when listen_command is set and its
// binary exists, otherwise a NullRecognizer.
func NewRecognizer(cfg config.VoiceConfig, logger zerolog.Logger) Recognizer {
	return newRecognizer(cfg, ExecRunner{}, logger)
}

func newRecognizer(cfg config.VoiceConfig, runner Runner, logger zerolog.Logger) Recognizer {
	argv, err := splitCommand(cfg.ListenCommand, cfg.Locale)
	if err != nil {
		logger.Warn().Err(err).Str("command", cfg.ListenCommand).Msg("cannot parse listen command")
		return NullRecognizer{}
	}
	if len(argv) == 0 {
		return NullRecognizer{}
	}
	if _, err := lookPath(argv[0]); err != nil {
		logger.Warn().Err(err).Str("command", argv[0]).Msg("listen command not found")
		return NullRecognizer{}
	}
	return NewCommandRecognizer(cfg.ListenCommand, cfg.Locale, runner, logger)
}
