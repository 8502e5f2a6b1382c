package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"jadoo/chat"
	"jadoo/config"
	"jadoo/model"
	"jadoo/settings"
	"jadoo/voice"
)

// Deps wires a ChatView.
type Deps struct {
	Orchestrator *chat.Orchestrator
	Settings     *settings.Store
	Synthesizer  voice.Synthesizer
	Recognizer   voice.Recognizer
	Keys         *config.KeyBindingsConfig
	Logger       zerolog.Logger
	Version      string
}

type ChatView struct {
	ctx         context.Context
	orch        *chat.Orchestrator
	settings    *settings.Store
	synth       voice.Synthesizer
	recognizer  voice.Recognizer
	keys        *config.KeyBindingsConfig
	logger      zerolog.Logger
	version     string
	personality model.PersonalityMode

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	// Rendered markdown by message id.
	rendered map[string]string

	showPicker bool
	picker     personalityPicker

	showVoice bool
	panel     voicePanel

	showHelp bool

	listening     bool
	stopListening func()
	listenEvents  chan tea.Msg

	flash    string
	flashSeq int
}

func NewChatView(ctx context.Context, deps Deps) *ChatView {
	keys := deps.Keys
	if keys == nil {
		keys = config.DefaultKeybindings()
	}
	synth := deps.Synthesizer
	if synth == nil {
		synth = voice.NullSynthesizer{}
	}
	rec := deps.Recognizer
	if rec == nil {
		rec = voice.NullRecognizer{}
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)
	// Enter sends; alt+enter inserts a newline.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	return &ChatView{
		ctx:         ctx,
		orch:        deps.Orchestrator,
		settings:    deps.Settings,
		synth:       synth,
		recognizer:  rec,
		keys:        keys,
		logger:      deps.Logger.With().Str("component", "ui").Logger(),
		version:     deps.Version,
		personality: model.ResolvePersonality(deps.Settings.PersonalityID()),
		viewport:    viewport.New(0, 0),
		textarea:    ta,
		spinner:     sp,
		rendered:    map[string]string{},
	}
}

func (c *ChatView) Init() tea.Cmd {
	return textarea.Blink
}

func (c *ChatView) View() string {
	if !c.ready {
		return "Loading Jadoo..."
	}

	if c.showHelp {
		return c.renderHelp()
	}

	if c.showPicker {
		footer := FormatFooter(
			"↑/↓", "Navigate",
			c.keys.DisplayActionKey("select"), "Select",
			c.keys.DisplayActionKey("close"), "Close",
		)
		return c.picker.view(footer, c.width, c.height)
	}

	if c.showVoice {
		footer := FormatFooter(
			"↑/↓", "Navigate",
			"←/→", "Change",
			c.keys.DisplayActionKey("test_voice"), "Test",
			c.keys.DisplayActionKey("reset_all"), "Reset",
			c.keys.DisplayActionKey("close"), "Close",
		)
		return c.panel.view(c.synth.IsSupported(), footer, c.width, c.height)
	}

	title := AssistantStyle.Bold(true).Render("Jadoo") +
		TitleStyle.Render(" - "+c.personality.Name)
	if c.orch.Loading() {
		title += " " + c.spinner.View() + DimStyle.Render(" thinking...")
	}
	if c.listening {
		title += " " + ListeningStyle.Render("● listening")
	}

	status := c.flash
	if status == "" {
		descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
		status = fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s  %s %s  %s %s",
			c.keys.DisplayActionKey("send"), descStyle.Render("Send"),
			c.keys.DisplayActionKey("listen"), descStyle.Render("Speak"),
			c.keys.DisplayActionKey("retry"), descStyle.Render("Retry"),
			c.keys.DisplayActionKey("clear"), descStyle.Render("Clear"),
			c.keys.DisplayActionKey("personality"), descStyle.Render("Personality"),
			c.keys.DisplayActionKey("voice_settings"), descStyle.Render("Voice"),
			c.keys.DisplayActionKey("help"), descStyle.Render("Help"),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		c.viewport.View(),
		c.textarea.View(),
		StatusStyle.Render(status),
	)
}

// refresh re-lays the conversation into the viewport.
func (c *ChatView) refresh(gotoBottom bool) {
	content := renderConversation(
		c.orch.Messages(),
		c.rendered,
		max(20, c.width-4),
		c.keys.DisplayActionKey("retry"),
		c.keys.DisplayActionKey("listen"),
	)
	c.viewport.SetContent(content)
	if gotoBottom {
		c.viewport.GotoBottom()
	}
}

// renderPending starts markdown rendering for assistant messages that have
// no cached output yet.
func (c *ChatView) renderPending() tea.Cmd {
	var cmds []tea.Cmd
	width := max(20, c.width-4)
	for _, m := range c.orch.Messages() {
		if m.Role != model.RoleAssistant {
			continue
		}
		if _, ok := c.rendered[m.ID]; ok {
			continue
		}
		cmds = append(cmds, renderMarkdownCmd(m.ID, m.Content, width))
	}
	return tea.Batch(cmds...)
}

func (c *ChatView) layout() {
	const chrome = 2 + 3 + 1 // title + gap, textarea, status
	c.viewport.Width = c.width
	c.viewport.Height = max(1, c.height-chrome)
	c.textarea.SetWidth(c.width)
}
