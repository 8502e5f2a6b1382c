package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (c *ChatView) renderHelp() string {
	kb := c.keys

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("Jadoo - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat"),
		fmt.Sprintf("• %-13s Send message", kb.DisplayActionKey("send")),
		"• Alt+Enter     New line",
		fmt.Sprintf("• %-13s Speak instead of typing", kb.DisplayActionKey("listen")),
		fmt.Sprintf("• %-13s Retry last reply", kb.DisplayActionKey("retry")),
		fmt.Sprintf("• %-13s Clear conversation", kb.DisplayActionKey("clear")),
		fmt.Sprintf("• %-13s Copy last reply", kb.DisplayActionKey("yank_last_reply")),
		fmt.Sprintf("• %-13s Stop speaking", kb.DisplayActionKey("stop_speaking")),
		fmt.Sprintf("• %-13s Scroll up", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Scroll down", kb.DisplayActionKey("scroll_down")),
	)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Settings"),
		fmt.Sprintf("• %-13s Personality", kb.DisplayActionKey("personality")),
		fmt.Sprintf("• %-13s Voice settings", kb.DisplayActionKey("voice_settings")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	voiceActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Voice Settings"),
		fmt.Sprintf("• %-13s Change value", "←/→"),
		fmt.Sprintf("• %-13s Test voice", kb.DisplayActionKey("test_voice")),
		fmt.Sprintf("• %-13s Reset all", kb.DisplayActionKey("reset_all")),
	)

	column1 := lipgloss.JoinVertical(lipgloss.Left, chatActions)
	column2 := lipgloss.JoinVertical(lipgloss.Left, globalActions, "", voiceActions)

	columnStyle := lipgloss.NewStyle().Width(40).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"  ",
		columnStyle.Render(column2),
	)

	label := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	version := label.Render("Version: ") + c.version

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or %s to close this help", kb.DisplayActionKey("help"), kb.DisplayActionKey("close")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		version,
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		MaxWidth(c.width)

	return lipgloss.Place(
		c.width,
		c.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
