package model

// Bubble Tea messages exchanged between ui commands and the update loop.

type SendDoneMsg struct {
	Issued bool
}

type MarkdownRenderedMsg struct {
	MessageID string
	Rendered  string
}

type ListenStartedMsg struct{}

type TranscriptMsg struct {
	Text string
}

type ListenErrorMsg struct {
	Code string
	Err  error
}

type ListenEndedMsg struct{}

type ClipboardMsg struct {
	Err error
}

type SettingsSavedMsg struct {
	Settings Settings
	Err      error
}

// FlashTickMsg clears the status notice numbered Seq.
type FlashTickMsg struct {
	Seq int
}
