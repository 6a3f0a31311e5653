// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrirag-tui/internal/markdown"
	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageOptions controls how one message is drawn.
type MessageOptions struct {
	Selected        bool
	ExpandCitations bool
	Hint            string // action hint drawn under a selected message
}

// MessageList renders the transcript of a chat.
type MessageList struct {
	Width          int
	ShowTimestamps bool
	renderer       *markdown.Renderer
	theme          *styles.Theme
}

// NewMessageList creates a message list. Assistant content is rendered as
// markdown with renderer; a nil renderer shows it as plain text.
func NewMessageList(theme *styles.Theme, renderer *markdown.Renderer) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		renderer:       renderer,
		theme:          theme,
	}
}

// SetWidth sets the list width.
func (l *MessageList) SetWidth(width int) {
	l.Width = width
	if l.renderer != nil {
		l.renderer.SetWidth(l.bubbleWidth() - 4)
	}
}

// bubbleWidth is the widest a bubble may be.
func (l *MessageList) bubbleWidth() int {
	w := l.Width * 4 / 5
	if w < 20 {
		w = l.Width
	}
	if w < 10 {
		w = 10
	}
	return w
}

// Render draws one message.
func (l *MessageList) Render(msg model.Message, opts MessageOptions) string {
	if msg.IsUser() {
		return l.renderUser(msg, opts)
	}
	return l.renderAssistant(msg, opts)
}

// View draws all messages. selected is the index of the highlighted message
// or -1; expanded holds the ids of messages whose citations are open.
func (l *MessageList) View(messages []model.Message, selected int, expanded map[string]bool, hint string) string {
	parts := make([]string, 0, len(messages))
	for i, msg := range messages {
		opts := MessageOptions{
			Selected:        i == selected,
			ExpandCitations: expanded[msg.ID],
		}
		if opts.Selected {
			opts.Hint = hint
		}
		parts = append(parts, l.Render(msg, opts))
	}
	return strings.Join(parts, "\n\n")
}

func (l *MessageList) renderUser(msg model.Message, opts MessageOptions) string {
	maxWidth := l.bubbleWidth()
	content := msg.Content

	style := l.theme.UserBubble
	if opts.Selected {
		style = style.BorderForeground(styles.Citrus)
	}
	if lipgloss.Width(content)+4 > maxWidth {
		style = style.Width(maxWidth - 2)
	}
	bubble := style.Render(content)

	lines := []string{bubble}
	if meta := l.meta(msg); meta != "" {
		lines = append(lines, meta)
	}
	if opts.Hint != "" {
		lines = append(lines, l.theme.ShortcutDesc.Render(opts.Hint))
	}
	block := lipgloss.JoinVertical(lipgloss.Right, lines...)
	return lipgloss.PlaceHorizontal(l.Width, lipgloss.Right, block)
}

func (l *MessageList) renderAssistant(msg model.Message, opts MessageOptions) string {
	maxWidth := l.bubbleWidth()

	content := msg.Content
	if l.renderer != nil {
		content = l.renderer.Render(content)
	}

	style := l.theme.AssistantBubble.Width(maxWidth - 2)
	if opts.Selected {
		style = style.BorderForeground(styles.Citrus)
	}
	body := content
	if msg.HasCitations() {
		body += "\n\n" + RenderCitations(msg.Citations, opts.ExpandCitations, maxWidth-4, l.theme)
	}

	lines := []string{style.Render(body)}
	if meta := l.meta(msg); meta != "" {
		lines = append(lines, meta)
	}
	if opts.Hint != "" {
		lines = append(lines, l.theme.ShortcutDesc.Render(opts.Hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// meta renders the author and time line.
func (l *MessageList) meta(msg model.Message) string {
	author := l.theme.MessageAuthor.Render(msg.Role.DisplayName())
	if !l.ShowTimestamps {
		return author
	}
	if t := msg.FormatTime(); t != "" {
		return author + " " + l.theme.MessageTime.Render(t)
	}
	return author
}
