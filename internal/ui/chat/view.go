// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/ui/components"
)

// =============================================================================
// LAYOUT
// =============================================================================

// Fixed rows: composer box (textarea plus border), footer, typing line.
const (
	composerBoxHeight = composerHeight + 2
	footerHeight      = 1
	typingHeight      = 1
	minViewportHeight = 3
)

// sidebarVisible reports whether the history column is drawn. Narrow
// terminals show it only while the drawer is open.
func (m Model) sidebarVisible() bool {
	if m.width < narrowWidth {
		return m.drawerOpen
	}
	return !m.drawerOpen
}

func (m Model) mainWidth() int {
	w := m.width
	if m.sidebarVisible() {
		w -= m.sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w > 72 {
		w = 72
	}
	if w < 36 {
		w = 36
	}
	return w
}

func (m Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.header.View()) - 1 // status bar
	if h < minViewportHeight {
		h = minViewportHeight
	}
	return h
}

// layout sizes every component for the current terminal and toast stack.
func (m *Model) layout() {
	if m.theme != nil {
		m.theme.SetSize(m.width, m.height)
	}
	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	mainW := m.mainWidth()
	body := m.bodyHeight()
	m.sidebar.SetSize(m.sidebarWidth, body)

	toastH := 0
	if m.toasts.HasToasts() {
		toastH = lipgloss.Height(components.RenderToastStack(m.toasts.Toasts(), mainW))
	}

	vpH := body - composerBoxHeight - footerHeight - typingHeight - toastH
	if vpH < minViewportHeight {
		vpH = minViewportHeight
	}
	m.viewport.Width = mainW
	m.viewport.Height = vpH
	m.welcome.SetSize(mainW, vpH)
	m.messages.SetWidth(mainW - 2)
	m.composer.SetWidth(mainW - 4)

	if m.form != nil {
		m.form.SetWidth(m.formWidth())
	}
	m.refreshViewport()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport re-renders the transcript into the viewport and records
// the first line of every message for selection scrolling.
func (m *Model) refreshViewport() {
	if m.state.Loading {
		m.viewport.SetContent(m.theme.WelcomeHint.Render(LoadingText))
		return
	}

	parts := make([]string, 0, len(m.state.Messages))
	m.offsets = m.offsets[:0]
	line := 0
	for i, msg := range m.state.Messages {
		opts := components.MessageOptions{
			Selected:        i == m.selected,
			ExpandCitations: m.expanded[msg.ID],
		}
		if opts.Selected {
			opts.Hint = m.selectionHint(i)
		}
		rendered := m.messages.Render(msg, opts)
		m.offsets = append(m.offsets, line)
		line += lipgloss.Height(rendered) + 1
		parts = append(parts, rendered)
	}

	content := strings.Join(parts, "\n\n")
	if !m.wordWrap {
		content = lipgloss.NewStyle().MaxWidth(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
}

// selectionHint lists the actions available on message i.
func (m Model) selectionHint(i int) string {
	msg := m.state.Messages[i]
	hints := []string{
		m.keys.CopyMessage.Help().Key + " " + m.keys.CopyMessage.Help().Desc,
	}
	if msg.IsAssistant() && strings.Contains(msg.Content, "```") {
		hints = append(hints, m.keys.CopyCode.Help().Key+" "+m.keys.CopyCode.Help().Desc)
	}
	if msg.HasCitations() {
		hints = append(hints, m.keys.Citations.Help().Key+" "+m.keys.Citations.Help().Desc)
	}
	return strings.Join(hints, "  ")
}

// scrollToSelected brings the selected message into view.
func (m *Model) scrollToSelected() {
	if m.selected < 0 || m.selected >= len(m.offsets) {
		return
	}
	top := m.offsets[m.selected]
	if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(top)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	header := m.header.View()
	status := m.renderStatusBar()

	var body string
	switch {
	case m.form != nil:
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.form.View())
	case m.showHelp:
		m.help.Width = m.width - 4
		box := m.theme.FormBox.Render(
			m.theme.FormTitle.Render("Atajos de teclado") + "\n\n" + m.help.View(m.keys),
		)
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
	default:
		main := m.renderMain()
		if m.sidebarVisible() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
		} else {
			body = main
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// renderMain draws the transcript column.
func (m Model) renderMain() string {
	mainW := m.mainWidth()

	var transcript string
	if len(m.state.Messages) == 0 && !m.state.Loading {
		transcript = m.welcome.View()
	} else {
		transcript = m.viewport.View()
	}

	typing := m.typing.View()
	if typing == "" && m.state.Phase == session.PhaseDispatching {
		// Chat creation happens before the typing indicator starts.
		typing = m.theme.TypingStatus.Render("...")
	}
	typing = lipgloss.NewStyle().Width(mainW).Padding(0, 1).Render(typing)

	parts := []string{transcript, typing}
	if m.toasts.HasToasts() {
		parts = append(parts, components.RenderToastStack(m.toasts.Toasts(), mainW))
	}

	box := m.theme.Composer
	if m.focus == FocusComposer {
		box = m.theme.ComposerFocused
	}
	parts = append(parts,
		box.Width(mainW-2).Render(m.composer.View()),
		m.theme.Footer.Width(mainW).Render(FooterText),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatusBar() string {
	var hints []key.Binding
	if m.form == nil {
		hints = m.keys.hintsFor(m.focus)
	}
	shortcuts := make([]components.Shortcut, 0, len(hints))
	for _, b := range hints {
		shortcuts = append(shortcuts, components.Shortcut{Key: b.Help().Key, Desc: b.Help().Desc})
	}
	m.statusBar.Shortcuts = shortcuts
	return m.statusBar.View()
}
