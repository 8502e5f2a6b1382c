package ui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"

	"jadoo/model"
)

const welcomeText = "Hi, I'm Jadoo! Type a message below, or press %s and speak."

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// renderMarkdown turns assistant markdown into terminal text. Links are
// flattened to their URL so terminals can detect them.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}
	content = mdLinkRegex.ReplaceAllString(content, "$2")

	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	rendered := gomarkdown.Render(p.Parse([]byte(content)), r)

	out := inlineCodeRegex.ReplaceAllString(string(rendered), "\x1b[31m$1\x1b[0m")
	return strings.TrimRight(out, "\n")
}

func renderMarkdownCmd(id, content string, width int) tea.Cmd {
	return func() tea.Msg {
		return markdownRenderedMsg{MessageID: id, Rendered: renderMarkdown(content, width)}
	}
}

// wrapText wraps on word boundaries by display width, so wide runes and
// emoji markers count correctly.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var line strings.Builder
		lineWidth := 0
		for _, w := range words {
			ww := runewidth.StringWidth(w)
			for ww > width {
				if lineWidth > 0 {
					out = append(out, line.String())
					line.Reset()
					lineWidth = 0
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				out = append(out, head)
				w = w[len(head):]
				ww = runewidth.StringWidth(w)
			}
			if ww == 0 {
				continue
			}
			if lineWidth > 0 && lineWidth+1+ww > width {
				out = append(out, line.String())
				line.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				line.WriteByte(' ')
				lineWidth++
			}
			line.WriteString(w)
			lineWidth += ww
		}
		if lineWidth > 0 {
			out = append(out, line.String())
		}
	}
	return strings.Join(out, "\n")
}

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// formatUserMessage draws the user's text behind a green bar.
func formatUserMessage(timestamp, role, content string, width int) string {
	bar := UserStyle.Render("┃")
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", bar, timestamp, role)
	for _, line := range strings.Split(wrapText(content, width-2), "\n") {
		fmt.Fprintf(&b, "%s %s\n", bar, line)
	}
	b.WriteString("\n")
	return b.String()
}

// renderConversation lays out every message. rendered maps message ids to
// cached markdown; uncached assistant messages fall back to wrapped text.
func renderConversation(messages []model.Message, rendered map[string]string, width int, retryKey, listenKey string) string {
	if len(messages) == 0 {
		return DimStyle.Render(wrapText(fmt.Sprintf(welcomeText, listenKey), width))
	}

	var b strings.Builder
	for _, msg := range messages {
		timestamp := DimStyle.Render(msg.Timestamp.Local().Format("[15:04]"))

		if msg.Role == model.RoleUser {
			b.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), msg.Content, width))
			continue
		}

		body, ok := rendered[msg.ID]
		if !ok {
			body = wrapText(msg.Content, width)
		}
		fmt.Fprintf(&b, "%s %s\n%s\n", timestamp, AssistantStyle.Render("Jadoo"), body)
		if msg.IsRetryable() {
			b.WriteString(RetryStyle.Render(fmt.Sprintf("[retry: %s]", retryKey)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// lastReply returns the newest assistant message's content.
func lastReply(messages []model.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == model.RoleAssistant {
			return messages[i].Content, true
		}
	}
	return "", false
}
