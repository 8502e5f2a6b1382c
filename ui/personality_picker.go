package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"jadoo/model"
)

// personalityPicker is the modal list of personality modes with a fuzzy filter.
type personalityPicker struct {
	all      []model.PersonalityMode
	filtered []model.PersonalityMode
	selected int
	current  string
	filter   textinput.Model
}

func newPersonalityPicker(current string) personalityPicker {
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.CharLimit = 64
	filter.Focus()

	all := model.Personalities()
	p := personalityPicker{all: all, filtered: all, current: current, filter: filter}
	for i, m := range all {
		if m.ID == current {
			p.selected = i
		}
	}
	return p
}

// applyFilter re-ranks the list against the filter text.
func (p *personalityPicker) applyFilter() {
	query := p.filter.Value()
	if query == "" {
		p.filtered = p.all
	} else {
		targets := make([]string, len(p.all))
		for i, m := range p.all {
			targets[i] = m.Name + " " + m.Description
		}
		matches := fuzzy.Find(query, targets)
		p.filtered = make([]model.PersonalityMode, len(matches))
		for i, match := range matches {
			p.filtered[i] = p.all[match.Index]
		}
	}
	if p.selected >= len(p.filtered) {
		p.selected = max(0, len(p.filtered)-1)
	}
}

func (p *personalityPicker) move(delta int) {
	if len(p.filtered) == 0 {
		return
	}
	p.selected = (p.selected + delta + len(p.filtered)) % len(p.filtered)
}

func (p personalityPicker) choice() (model.PersonalityMode, bool) {
	if p.selected < 0 || p.selected >= len(p.filtered) {
		return model.PersonalityMode{}, false
	}
	return p.filtered[p.selected], true
}

func (p personalityPicker) view(footer string, width, height int) string {
	modalWidth := min(width-10, 72)
	if modalWidth < 30 {
		modalWidth = 30
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Personality")

	header := lipgloss.NewStyle().
		Foreground(dimColor).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(p.filter.View())

	var lines []string
	if len(p.filtered) == 0 {
		lines = append(lines, DimStyle.Italic(true).Render("No matches found"))
	}
	for i, m := range p.filtered {
		indicator := "  "
		if i == p.selected {
			indicator = "▶ "
		}
		name := m.Name
		if m.ID == p.current {
			name += " (current)"
		}
		descWidth := modalWidth - runewidth.StringWidth(indicator+name) - 3
		desc := ""
		if descWidth > 3 {
			desc = runewidth.Truncate(m.Description, descWidth, "...")
		}
		line := fmt.Sprintf("%s%s  %s", indicator, name, DimStyle.Render(desc))
		if i == p.selected {
			line = SelectedStyle.Render(indicator+name) + "  " + DimStyle.Render(desc)
		}
		lines = append(lines, line)
	}

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{title, header, strings.Join(lines, "\n"), footerSection}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
