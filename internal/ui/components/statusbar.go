// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Connection is the last known backend reachability.
type Connection int

const (
	ConnectionUnknown Connection = iota
	ConnectionOnline
	ConnectionOffline
)

// String returns the label shown in the status bar.
func (c Connection) String() string {
	switch c {
	case ConnectionOnline:
		return "conectado"
	case ConnectionOffline:
		return "sin conexión"
	default:
		return "comprobando"
	}
}

// Icon returns the indicator drawn before the label.
func (c Connection) Icon() string {
	switch c {
	case ConnectionOnline:
		return styles.StatusIndicators.Active
	case ConnectionOffline:
		return styles.StatusIndicators.Error
	default:
		return styles.StatusIndicators.Pending
	}
}

// Shortcut is a key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom line with connection state, mode and key hints.
type StatusBar struct {
	Width      int
	Connection Connection
	Clinical   bool // the text in the composer would be sent as a clinical query
	Shortcuts  []Shortcut
	theme      *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	connStyle := s.theme.WarningStyle
	switch s.Connection {
	case ConnectionOnline:
		connStyle = s.theme.SuccessStyle
	case ConnectionOffline:
		connStyle = s.theme.ErrorStyle
	}
	left := connStyle.Render(s.Connection.Icon() + " " + s.Connection.String())

	mode := "general"
	modeStyle := s.theme.ShortcutDesc
	if s.Clinical {
		mode = "clínico"
		modeStyle = lipgloss.NewStyle().Foreground(styles.Citrus).Bold(true)
	}
	left += "  " + modeStyle.Render("modo "+mode)

	inner := s.Width - 2
	var hints []string
	used := lipgloss.Width(left)
	for _, sc := range s.Shortcuts {
		hint := s.theme.ShortcutKey.Render(sc.Key) + " " + s.theme.ShortcutDesc.Render(sc.Desc)
		if used+2+lipgloss.Width(hint)+2 > inner {
			break
		}
		hints = append(hints, hint)
		used += 2 + lipgloss.Width(hint)
	}
	right := strings.Join(hints, "  ")

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).Render(line)
}
