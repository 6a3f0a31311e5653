// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat screen of the NutriRAG TUI.

The Model is a Bubble Tea model that renders a session.Controller. It holds
no conversation state of its own: every change arrives as a session.Event
and the model redraws from the snapshot it carries.

# Layout

	+---------------------------------------------------------+
	| NutriRAG  Asistente nutricional...          Mis Datos   |
	+--------------+------------------------------------------+
	| + Nuevo Chat |  welcome screen or transcript            |
	|              |                                          |
	| Historial    |  typing indicator                        |
	|  chat 1      |  toasts                                  |
	|  chat 2      |  +------------------------------------+  |
	|              |  | composer                           |  |
	|              |  +------------------------------------+  |
	|              |  disclaimer                              |
	+--------------+------------------------------------------+
	| status bar: connection, routing mode, key hints          |
	+---------------------------------------------------------+

The history column is hidden on narrow terminals and toggled with ctrl+b.
The clinical form replaces the body while it is open, and opens by itself
the first time the session reports that no profile is stored.

# Focus

Tab cycles between the composer, the transcript and the history. In the
transcript, up and down select a message; y copies it, c copies its code
blocks one by one and f opens its sources. In the history, enter opens a
chat and x twice deletes it.

# Blocking calls

Controller calls that reach the backend run inside tea.Cmd functions and
report back with an internal message. Their visible outcome always arrives
through the event subscription.

# Usage

	m := chat.New(chat.Options{
		Controller: ctrl,
		Health:     client,
		Theme:      styles.NewTheme(cfg.UI.Theme),
	})
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package chat
