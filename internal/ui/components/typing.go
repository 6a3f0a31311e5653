// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator shows the assistant's progress while an answer is pending.
// The status text comes from the session ("Analizando tu pregunta...", ...).
type TypingIndicator struct {
	spinner   spinner.Model
	status    string
	startTime time.Time
	active    bool
	theme     *styles.Theme
}

// NewTypingIndicator creates an inactive typing indicator.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = toBubbleSpinner(styles.DotsSpinner)
	s.Style = theme.Spinner
	return TypingIndicator{spinner: s, theme: theme}
}

func toBubbleSpinner(cfg styles.SpinnerConfig) spinner.Spinner {
	return spinner.Spinner{Frames: cfg.Frames, FPS: cfg.Duration()}
}

// SetStatus updates the status text. Activating an idle indicator returns
// the command that starts the animation.
func (t *TypingIndicator) SetStatus(active bool, status string) tea.Cmd {
	t.status = status
	if !active {
		t.active = false
		return nil
	}
	if t.active {
		return nil
	}
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// IsActive returns whether the indicator is showing.
func (t TypingIndicator) IsActive() bool {
	return t.active
}

// Status returns the current status text.
func (t TypingIndicator) Status() string {
	return t.status
}

// Elapsed returns the time since the indicator became active.
func (t TypingIndicator) Elapsed() time.Duration {
	if !t.active || t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Update advances the animation.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator, or "" when inactive.
func (t TypingIndicator) View() string {
	if !t.active {
		return ""
	}
	return t.spinner.View() + " " + t.theme.TypingStatus.Render(t.status)
}
