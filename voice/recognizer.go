package voice

import (
	"context"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"
)

// CommandRecognizer runs an external transcriber that records one utterance
// and prints the text on stdout, e.g. a whisper wrapper script.
type CommandRecognizer struct {
	argv   []string
	runner Runner
	logger zerolog.Logger

	mu     sync.Mutex
	active bool
}

// NewCommandRecognizer splits command with shell quoting rules and
// substitutes {locale} in every argument. A command that does not parse
// leaves the recognizer unsupported.
func NewCommandRecognizer(command, locale string, runner Runner, logger zerolog.Logger) *CommandRecognizer {
	r := &CommandRecognizer{
		runner: runner,
		logger: logger.With().Str("component", "voice").Str("recognizer", "command").Logger(),
	}
	argv, err := splitCommand(command, locale)
	if err != nil {
		r.logger.Warn().Err(err).Str("command", command).Msg("cannot parse listen command")
		return r
	}
	r.argv = argv
	return r
}

// splitCommand parses command like a POSIX shell would, without expanding
// variables or backticks, then fills in {locale}.
func splitCommand(command, locale string) ([]string, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, err
	}
	for i, a := range argv {
		argv[i] = strings.ReplaceAll(a, "{locale}", locale)
	}
	return argv, nil
}

func (r *CommandRecognizer) IsSupported() bool { return len(r.argv) > 0 }

func (r *CommandRecognizer) StartListening(cb Callbacks) (func(), error) {
	if !r.IsSupported() {
		return nil, ErrUnsupported
	}

	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return nil, ErrAlreadyListening
	}
	r.active = true
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cb.end()
		defer func() {
			r.mu.Lock()
			r.active = false
			r.mu.Unlock()
		}()
		defer cancel()

		cb.start()
		out, err := r.runner.Output(ctx, r.argv[0], r.argv[1:]...)
		switch {
		case err == nil:
			transcript := strings.TrimSpace(string(out))
			if transcript == "" {
				cb.error(ErrCodeNoSpeech)
				return
			}
			cb.result(transcript)
		case ctx.Err() != nil:
			cb.error(ErrCodeAborted)
		default:
			r.logger.Warn().Err(err).Msg("transcriber failed")
			cb.error(ErrCodeAudioCapture)
		}
	}()

	return cancel, nil
}
