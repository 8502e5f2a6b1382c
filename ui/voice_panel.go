package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jadoo/model"
	"jadoo/settings"
	"jadoo/voice"
)

const voiceStep = 0.1

type voiceField int

const (
	fieldSpeak voiceField = iota
	fieldVoice
	fieldRate
	fieldPitch
	fieldVolume
	fieldTest
	fieldReset
	voiceFieldCount
)

var voiceFieldLabels = [...]string{
	fieldSpeak:  "Speak replies",
	fieldVoice:  "Voice",
	fieldRate:   "Speech rate",
	fieldPitch:  "Speech pitch",
	fieldVolume: "Speech volume",
	fieldTest:   "Test voice",
	fieldReset:  "Reset all settings",
}

// voicePanel edits the persisted voice settings. Every change is written
// through immediately.
type voicePanel struct {
	values   model.VoiceSettings
	voices   []voice.Voice
	selected voiceField
	notice   string
}

func newVoicePanel(values model.VoiceSettings, voices []voice.Voice) voicePanel {
	return voicePanel{values: values, voices: voice.EnglishVoices(voices)}
}

func (p *voicePanel) move(delta int) {
	n := int(voiceFieldCount)
	p.selected = voiceField((int(p.selected) + delta + n) % n)
}

// adjust applies one left/right step to the selected field and returns the
// store update it implies, or nil when nothing changed.
func (p *voicePanel) adjust(dir int) *settings.Update {
	switch p.selected {
	case fieldSpeak:
		v := !p.values.SpeakReplies
		p.values.SpeakReplies = v
		return &settings.Update{SpeakReplies: &v}
	case fieldVoice:
		name := p.cycleVoice(dir)
		p.values.SelectedVoice = name
		return &settings.Update{SelectedVoice: &name}
	case fieldRate:
		v := stepValue(p.values.SpeechRate, dir, model.MinSpeechRate, model.MaxSpeechRate)
		p.values.SpeechRate = v
		return &settings.Update{SpeechRate: &v}
	case fieldPitch:
		v := stepValue(p.values.SpeechPitch, dir, model.MinSpeechPitch, model.MaxSpeechPitch)
		p.values.SpeechPitch = v
		return &settings.Update{SpeechPitch: &v}
	case fieldVolume:
		v := stepValue(p.values.SpeechVolume, dir, model.MinSpeechVolume, model.MaxSpeechVolume)
		p.values.SpeechVolume = v
		return &settings.Update{SpeechVolume: &v}
	}
	return nil
}

// cycleVoice walks "Default" followed by the English voices.
func (p *voicePanel) cycleVoice(dir int) string {
	names := make([]string, 0, len(p.voices)+1)
	names = append(names, "")
	for _, v := range p.voices {
		names = append(names, v.Name)
	}
	cur := 0
	for i, n := range names {
		if n == p.values.SelectedVoice {
			cur = i
		}
	}
	return names[(cur+dir+len(names))%len(names)]
}

// overrides pins every field to the panel's values, so a test utterance
// sounds like the panel even before the store is re-read.
func (p voicePanel) overrides() model.VoiceOverrides {
	v := p.values
	return model.VoiceOverrides{
		SpeakReplies:  &v.SpeakReplies,
		SelectedVoice: &v.SelectedVoice,
		SpeechRate:    &v.SpeechRate,
		SpeechPitch:   &v.SpeechPitch,
		SpeechVolume:  &v.SpeechVolume,
	}
}

func stepValue(cur float64, dir int, lo, hi float64) float64 {
	v := cur + float64(dir)*voiceStep
	v = math.Round(v*10) / 10
	return math.Min(hi, math.Max(lo, v))
}

func (p voicePanel) valueText(f voiceField) string {
	switch f {
	case fieldSpeak:
		if p.values.SpeakReplies {
			return "on"
		}
		return "off"
	case fieldVoice:
		if p.values.SelectedVoice == "" {
			return "Default"
		}
		return p.values.SelectedVoice
	case fieldRate:
		return fmt.Sprintf("%.1fx", p.values.SpeechRate)
	case fieldPitch:
		return fmt.Sprintf("%.1f", p.values.SpeechPitch)
	case fieldVolume:
		return fmt.Sprintf("%d%%", int(math.Round(p.values.SpeechVolume*100)))
	}
	return ""
}

func (p voicePanel) view(supported bool, footer string, width, height int) string {
	modalWidth := min(width-10, 60)
	if modalWidth < 30 {
		modalWidth = 30
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Voice Settings")

	labelWidth := 20
	var lines []string
	if !supported {
		lines = append(lines, ErrorStyle.Render("Speech synthesis is not supported on this system"), "")
	}
	for f := voiceField(0); f < voiceFieldCount; f++ {
		label := voiceFieldLabels[f]
		indicator := "  "
		if f == p.selected {
			indicator = "▶ "
		}
		row := indicator + label
		if value := p.valueText(f); value != "" {
			pad := labelWidth - runewidth.StringWidth(label)
			row += strings.Repeat(" ", max(1, pad)) + "◀ " + value + " ▶"
		}
		if f == p.selected {
			row = SelectedStyle.Render(row)
		}
		if f == fieldTest {
			lines = append(lines, "")
		}
		lines = append(lines, row)
	}
	if p.notice != "" {
		lines = append(lines, "", DimStyle.Render(p.notice))
	}

	body := lipgloss.NewStyle().
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(lines, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{title, body, footerSection}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
