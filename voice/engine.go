package voice

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"

	"jadoo/model"
)

// baseWPM is the words-per-minute both engines treat as normal speed.
const baseWPM = 175

// engine knows one speech binary's command line.
type engine interface {
	Name() string
	Binary() string
	// SpeakArgs ends option parsing before text so replies such as
	// "- item" or "--help" are spoken rather than read as flags.
	SpeakArgs(text string, v Voice, s model.VoiceSettings) []string
	ListArgs() []string
	ParseVoices(out []byte) []Voice
}

type espeakEngine struct {
	binary string
}

func (e espeakEngine) Name() string   { return "espeak" }
func (e espeakEngine) Binary() string { return e.binary }

func (e espeakEngine) SpeakArgs(text string, v Voice, s model.VoiceSettings) []string {
	args := []string{}
	if v.ID != "" {
		args = append(args, "-v", v.ID)
	}
	args = append(args,
		"-s", strconv.Itoa(wpm(s.SpeechRate)),
		"-p", strconv.Itoa(clampInt(int(math.Round(50*s.SpeechPitch)), 0, 99)),
		"-a", strconv.Itoa(clampInt(int(math.Round(100*s.SpeechVolume)), 0, 200)),
		"--", text,
	)
	return args
}

func (e espeakEngine) ListArgs() []string { return []string{"--voices"} }

// ParseVoices reads `espeak --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US
func (e espeakEngine) ParseVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		if len(f) < 4 || f[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{
			ID:   f[1],
			Name: strings.ReplaceAll(f[3], "_", " "),
			Lang: f[1],
		})
	}
	return voices
}

// sayEngine drives macOS `say`. It has no pitch or volume flags.
type sayEngine struct{}

func (sayEngine) Name() string   { return "say" }
func (sayEngine) Binary() string { return "say" }

func (sayEngine) SpeakArgs(text string, v Voice, s model.VoiceSettings) []string {
	args := []string{}
	if v.ID != "" {
		args = append(args, "-v", v.ID)
	}
	return append(args, "-r", strconv.Itoa(wpm(s.SpeechRate)), "--", text)
}

func (sayEngine) ListArgs() []string { return []string{"-v", "?"} }

// ParseVoices reads `say -v ?`:
//
//	Bad News            en_US    # The light you see at the end of the tunnel...
func (sayEngine) ParseVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		f := strings.Fields(line)
		if len(f) < 2 {
			continue
		}
		name := strings.Join(f[:len(f)-1], " ")
		voices = append(voices, Voice{
			ID:   name,
			Name: name,
			Lang: strings.ReplaceAll(f[len(f)-1], "_", "-"),
		})
	}
	return voices
}

func wpm(rate float64) int {
	return int(math.Round(baseWPM * rate))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
