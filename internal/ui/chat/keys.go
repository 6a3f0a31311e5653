// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings for the chat interface and the help
// text generated from them.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	// Global
	Quit        key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding
	NewChat     key.Binding
	Profile     key.Binding
	Refresh     key.Binding
	Help        key.Binding
	ToggleDrawer key.Binding

	// Composer
	Send    key.Binding
	Newline key.Binding

	// Lists
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding

	// Transcript
	CopyMessage key.Binding
	CopyCode    key.Binding
	Citations   key.Binding

	// Sidebar
	Delete key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "salir"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cambiar panel"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "panel anterior"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "nuevo chat"),
		),
		Profile: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "mis datos"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "recargar chats"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "ayuda"),
		),
		ToggleDrawer: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "historial"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "enviar"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("M-enter", "nueva línea"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "arriba"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "abajo"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "página arriba"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "página abajo"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir"),
		),
		CopyMessage: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copiar respuesta"),
		),
		CopyCode: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copiar código"),
		),
		Citations: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fuentes"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "eliminar chat"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.NextFocus, k.NewChat, k.Profile, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the full help view, grouped by area.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Newline, k.NextFocus, k.PrevFocus},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.CopyMessage, k.CopyCode, k.Citations, k.Delete},
		{k.NewChat, k.Profile, k.Refresh, k.ToggleDrawer, k.Help, k.Quit},
	}
}

// =============================================================================
// CONTEXT HINTS
// =============================================================================

// Focus is the panel receiving key input.
type Focus int

const (
	FocusComposer Focus = iota
	FocusTranscript
	FocusSidebar
)

// String returns the panel name.
func (f Focus) String() string {
	switch f {
	case FocusTranscript:
		return "transcript"
	case FocusSidebar:
		return "sidebar"
	default:
		return "composer"
	}
}

// hintsFor returns the status bar hints for the focused panel.
func (k KeyMap) hintsFor(f Focus) []key.Binding {
	switch f {
	case FocusTranscript:
		return []key.Binding{k.Up, k.CopyMessage, k.CopyCode, k.Citations, k.NextFocus}
	case FocusSidebar:
		return []key.Binding{k.Select, k.Delete, k.NewChat, k.NextFocus}
	default:
		return []key.Binding{k.Send, k.Newline, k.NextFocus, k.Profile, k.Help}
	}
}
