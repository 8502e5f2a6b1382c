package ui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"jadoo/chat"
	"jadoo/model"
	"jadoo/settings"
	"jadoo/voice"
)

const (
	unsupportedListeningText = "Speech recognition is not supported on this system"
	flashDuration            = 3 * time.Second
)

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

func (c *ChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		c.ready = true
		c.layout()
		c.rendered = map[string]string{}
		c.refresh(true)
		return c, c.renderPending()

	case tea.KeyMsg:
		return c.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd

	case spinner.TickMsg:
		if !c.orch.Loading() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case sendDoneMsg:
		c.refresh(true)
		return c, c.renderPending()

	case markdownRenderedMsg:
		c.rendered[msg.MessageID] = msg.Rendered
		c.refresh(false)
		return c, nil

	case listenStartedMsg:
		c.listening = true
		return c, waitForListenEvent(c.listenEvents)

	case transcriptMsg:
		c.textarea.SetValue(msg.Text)
		c.textarea.Focus()
		return c, waitForListenEvent(c.listenEvents)

	case listenErrorMsg:
		return c, tea.Batch(c.setFlash(listenErrorText(msg.Code)), waitForListenEvent(c.listenEvents))

	case listenEndedMsg:
		c.listening = false
		c.stopListening = nil
		c.listenEvents = nil
		return c, nil

	case clipboardMsg:
		if msg.Err != nil {
			c.logger.Warn().Err(msg.Err).Msg("clipboard write failed")
			return c, c.setFlash("Copy failed: " + msg.Err.Error())
		}
		return c, c.setFlash("Reply copied to clipboard")

	case settingsSavedMsg:
		if msg.Err != nil {
			c.logger.Error().Err(msg.Err).Msg("failed to save settings")
			return c, c.setFlash("Failed to save settings: " + msg.Err.Error())
		}
		c.personality = model.ResolvePersonality(msg.Settings.PersonalityMode)
		if c.showVoice {
			c.panel.values = msg.Settings.Voice
		}
		return c, nil

	case flashTickMsg:
		if msg.Seq == c.flashSeq {
			c.flash = ""
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

func (c *ChatView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()

	if pressed == "ctrl+c" || c.keys.Matches(pressed, "quit") {
		c.synth.StopSpeaking()
		if c.stopListening != nil {
			c.stopListening()
		}
		return c, tea.Quit
	}

	if c.showHelp {
		if c.keys.Matches(pressed, "help") || c.keys.Matches(pressed, "close") {
			c.showHelp = false
		}
		return c, nil
	}
	if c.showPicker {
		return c.handlePickerKey(msg)
	}
	if c.showVoice {
		return c.handleVoiceKey(msg)
	}

	switch {
	case c.keys.Matches(pressed, "send"):
		ex, ok := c.orch.Begin(c.textarea.Value())
		if !ok {
			return c, nil
		}
		c.textarea.Reset()
		c.refresh(true)
		return c, tea.Batch(c.spinner.Tick, c.finish(ex))

	case c.keys.Matches(pressed, "retry"):
		ex, ok := c.orch.BeginRetry()
		if !ok {
			return c, nil
		}
		c.refresh(true)
		return c, tea.Batch(c.spinner.Tick, c.finish(ex))

	case c.keys.Matches(pressed, "clear"):
		if err := c.orch.Clear(); err != nil {
			c.logger.Error().Err(err).Msg("failed to clear conversation")
		}
		c.rendered = map[string]string{}
		c.refresh(true)
		return c, nil

	case c.keys.Matches(pressed, "listen"):
		return c, c.toggleListening()

	case c.keys.Matches(pressed, "stop_speaking"):
		c.synth.StopSpeaking()
		return c, nil

	case c.keys.Matches(pressed, "yank_last_reply"):
		reply, ok := lastReply(c.orch.Messages())
		if !ok {
			return c, c.setFlash("Nothing to copy yet")
		}
		return c, func() tea.Msg { return clipboardMsg{Err: clipboardWrite(reply)} }

	case c.keys.Matches(pressed, "personality"):
		c.picker = newPersonalityPicker(c.personality.ID)
		c.showPicker = true
		c.textarea.Blur()
		return c, nil

	case c.keys.Matches(pressed, "voice_settings"):
		c.panel = newVoicePanel(c.settings.Voice(), c.synth.Voices())
		c.showVoice = true
		c.textarea.Blur()
		return c, nil

	case c.keys.Matches(pressed, "help"):
		c.showHelp = true
		return c, nil

	case c.keys.Matches(pressed, "scroll_up"):
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(tea.KeyMsg{Type: tea.KeyPgUp})
		return c, cmd

	case c.keys.Matches(pressed, "scroll_down"):
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(tea.KeyMsg{Type: tea.KeyPgDown})
		return c, cmd
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

func (c *ChatView) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()
	switch {
	case c.keys.Matches(pressed, "close"):
		c.closeModals()
		return c, textarea.Blink
	case c.keys.Matches(pressed, "list_up"):
		c.picker.move(-1)
		return c, nil
	case c.keys.Matches(pressed, "list_down"):
		c.picker.move(1)
		return c, nil
	case c.keys.Matches(pressed, "select"):
		choice, ok := c.picker.choice()
		c.closeModals()
		if !ok {
			return c, textarea.Blink
		}
		c.personality = choice
		id := choice.ID
		return c, tea.Batch(textarea.Blink, c.saveSettings(settings.Update{PersonalityMode: &id}))
	}

	var cmd tea.Cmd
	c.picker.filter, cmd = c.picker.filter.Update(msg)
	c.picker.applyFilter()
	return c, cmd
}

func (c *ChatView) handleVoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()
	c.panel.notice = ""
	switch {
	case c.keys.Matches(pressed, "close"):
		c.closeModals()
		return c, textarea.Blink
	case c.keys.Matches(pressed, "list_up"):
		c.panel.move(-1)
	case c.keys.Matches(pressed, "list_down"):
		c.panel.move(1)
	case c.keys.Matches(pressed, "decrease"):
		if u := c.panel.adjust(-1); u != nil {
			return c, c.saveSettings(*u)
		}
	case c.keys.Matches(pressed, "increase"):
		if u := c.panel.adjust(1); u != nil {
			return c, c.saveSettings(*u)
		}
	case c.keys.Matches(pressed, "test_voice"):
		c.testVoice()
	case c.keys.Matches(pressed, "reset_all"):
		return c, c.resetSettings()
	case c.keys.Matches(pressed, "select"):
		switch c.panel.selected {
		case fieldTest:
			c.testVoice()
		case fieldReset:
			return c, c.resetSettings()
		default:
			if u := c.panel.adjust(1); u != nil {
				return c, c.saveSettings(*u)
			}
		}
	}
	return c, nil
}

func (c *ChatView) testVoice() {
	if !c.synth.IsSupported() {
		c.panel.notice = "Speech synthesis is not supported on this system"
		return
	}
	if !c.panel.values.SpeakReplies {
		c.panel.notice = "Turn on \"Speak replies\" to hear the voice"
		return
	}
	c.synth.Speak(model.VoiceTestPhrase, c.panel.overrides())
	c.panel.notice = "Speaking..."
}

func (c *ChatView) closeModals() {
	c.showPicker = false
	c.showVoice = false
	c.textarea.Focus()
}

// finish runs the request half of a send or retry off the update loop.
func (c *ChatView) finish(ex *chat.Exchange) tea.Cmd {
	return func() tea.Msg {
		c.orch.Finish(c.ctx, ex)
		return sendDoneMsg{Issued: true}
	}
}

func (c *ChatView) saveSettings(u settings.Update) tea.Cmd {
	store := c.settings
	return func() tea.Msg {
		err := store.Set(u)
		return settingsSavedMsg{Settings: store.Get(), Err: err}
	}
}

func (c *ChatView) resetSettings() tea.Cmd {
	store := c.settings
	c.panel.notice = "Settings reset to defaults"
	return func() tea.Msg {
		err := store.Reset()
		return settingsSavedMsg{Settings: store.Get(), Err: err}
	}
}

func (c *ChatView) toggleListening() tea.Cmd {
	if c.stopListening != nil {
		c.stopListening()
		return nil
	}

	events := make(chan tea.Msg, 4)
	stop, err := c.recognizer.StartListening(voice.Callbacks{
		OnStart:  func() { events <- listenStartedMsg{} },
		OnResult: func(t string) { events <- transcriptMsg{Text: t} },
		OnError:  func(code string) { events <- listenErrorMsg{Code: code} },
		OnEnd:    func() { events <- listenEndedMsg{} },
	})
	switch {
	case errors.Is(err, voice.ErrUnsupported):
		return c.setFlash(unsupportedListeningText)
	case err != nil:
		return c.setFlash(err.Error())
	}

	c.stopListening = stop
	c.listenEvents = events
	return waitForListenEvent(events)
}

func waitForListenEvent(events chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg { return <-events }
}

func listenErrorText(code string) string {
	switch code {
	case voice.ErrCodeNoSpeech:
		return "No speech detected, try again"
	case voice.ErrCodeAudioCapture:
		return "Microphone unavailable"
	case voice.ErrCodeAborted:
		return "Listening stopped"
	}
	return "Speech recognition error: " + code
}

// setFlash shows a status-line notice that clears itself.
func (c *ChatView) setFlash(text string) tea.Cmd {
	c.flashSeq++
	seq := c.flashSeq
	c.flash = text
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashTickMsg{Seq: seq} })
}
