// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
	"github.com/jeranaias/nutrirag-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header texts.
const (
	HeaderTitle    = "NutriRAG"
	HeaderSubtitle = "Asistente nutricional basado en evidencia"
	profileLabel   = "Mis Datos"
)

// Header is the title bar with the profile badge on the right.
type Header struct {
	Width      int
	HasProfile bool
	theme      *styles.Theme
}

// NewHeader creates a new Header component.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetHasProfile toggles the filled profile badge.
func (h *Header) SetHasProfile(has bool) {
	h.HasProfile = has
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}
	inner := width - 2

	badge := h.theme.ProfileMissing.Render(profileLabel + " (C-p)")
	if h.HasProfile {
		badge = h.theme.ProfileBadge.Render(styles.StatusIndicators.Active + " " + profileLabel)
	}

	left := h.theme.HeaderTitle.Render(HeaderTitle)
	if subtitle := HeaderSubtitle; lipgloss.Width(left)+lipgloss.Width(badge)+3+util.Width(subtitle) <= inner {
		left += "  " + h.theme.HeaderSubtitle.Render(subtitle)
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		return h.theme.Header.Width(width).Render(left)
	}
	return h.theme.Header.Width(width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), badge),
	)
}
