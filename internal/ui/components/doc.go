// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI pieces of the nutrirag TUI.

Components are plain structs with a View method; the few that animate
(TypingIndicator) also have an Update method in the Bubble Tea style.

# Layout

  - Header (header.go) - Title, subtitle and the "Mis Datos" profile badge.
  - Sidebar (sidebar.go) - "Nuevo Chat" action and the chat history.
  - MessageList (message.go) - User and assistant bubbles with markdown.
  - RenderCitations (citations.go) - The "Fuentes:" list, collapsed or expanded.
  - Welcome (welcome.go) - Empty state with the quick prompts.
  - StatusBar (statusbar.go) - Connection, query mode and key hints.

# Feedback

  - TypingIndicator (typing.go) - Spinner plus the session typing status.
  - ToastManager (toast.go) - Auto-dismissing notices in the corner.

# Usage

	theme := styles.NewTheme("auto")
	toasts := components.NewToastManager()
	toasts.AddError("", "No se pudo crear el chat.")
	view := components.RenderToastStack(toasts.Toasts(), width)
*/
package components
