package ui

import (
	"jadoo/model"
)

type Message = model.Message

type sendDoneMsg = model.SendDoneMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type listenStartedMsg = model.ListenStartedMsg
type transcriptMsg = model.TranscriptMsg
type listenErrorMsg = model.ListenErrorMsg
type listenEndedMsg = model.ListenEndedMsg
type clipboardMsg = model.ClipboardMsg
type settingsSavedMsg = model.SettingsSavedMsg
type flashTickMsg = model.FlashTickMsg
