// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// Welcome screen texts.
const (
	WelcomeTitle       = "Bienvenido a Nourai"
	WelcomeDescription = "Tu asistente educativo nutricional para el tratamiento y prevención de enfermedades crónicas basado en evidencia científica."
	WelcomePromptsHint = "Prueba con alguna de estas preguntas"
	WelcomeDisclaimer  = "Las respuestas están basadas en documentación oficial. Siempre consulta con un profesional de la salud para orientación personalizada."
)

// QuickPrompts are the suggested first questions.
var QuickPrompts = []string{
	"¿Porciones sugeridas para 7 años (GABA)?",
	"Cómo reducir sodio según guía nacional",
}

// Welcome is the empty state shown before the first message of a chat.
type Welcome struct {
	Width    int
	Height   int
	selected int
	theme    *styles.Theme
}

// NewWelcome creates the welcome screen with the first prompt highlighted.
func NewWelcome(theme *styles.Theme) *Welcome {
	return &Welcome{Width: 80, Height: 20, theme: theme}
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// MoveUp highlights the previous prompt.
func (w *Welcome) MoveUp() {
	if w.selected > 0 {
		w.selected--
	}
}

// MoveDown highlights the next prompt.
func (w *Welcome) MoveDown() {
	if w.selected < len(QuickPrompts)-1 {
		w.selected++
	}
}

// Selected returns the highlighted prompt.
func (w *Welcome) Selected() string {
	return QuickPrompts[w.selected]
}

// Prompt returns the prompt for a 1-based number key.
func (w *Welcome) Prompt(n int) (string, bool) {
	if n < 1 || n > len(QuickPrompts) {
		return "", false
	}
	return QuickPrompts[n-1], true
}

// View renders the welcome screen centered in its area.
func (w *Welcome) View() string {
	textWidth := w.Width - 8
	if textWidth > 72 {
		textWidth = 72
	}
	if textWidth < 20 {
		textWidth = 20
	}
	center := lipgloss.NewStyle().Width(textWidth).Align(lipgloss.Center)

	var parts []string
	parts = append(parts,
		center.Render(w.theme.WelcomeTitle.Render(WelcomeTitle)),
		"",
		center.Render(w.theme.WelcomeText.Render(WelcomeDescription)),
		"",
		center.Render(w.theme.WelcomeHint.Render(WelcomePromptsHint)),
	)

	for i, prompt := range QuickPrompts {
		style := w.theme.WelcomePrompt
		if i == w.selected {
			style = w.theme.WelcomePromptSelected
		}
		parts = append(parts, style.Width(textWidth).Render(strconv.Itoa(i+1)+". "+prompt))
	}

	parts = append(parts, "", center.Render(w.theme.WelcomeHint.Render(WelcomeDisclaimer)))

	return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center,
		strings.Join(parts, "\n"))
}
