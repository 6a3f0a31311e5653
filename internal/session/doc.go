// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the client-side conversation state machine.
//
// The Controller holds the current chat, its messages, the typing indicator
// and the cached chat list. It coordinates the backend client, the query
// router and the clinical profile store to process a user turn end to end:
//
//	Idle -> Dispatching (creating the chat) -> AwaitingAnswer -> Idle
//
// # Key Types
//
//   - Controller: The state machine; all mutation goes through its methods
//   - State: Immutable snapshot handed to the presentation layer
//   - Event: State change or user-facing notice delivered to subscribers
//   - Notice: Toast-level notification (title, description, kind)
//
// # Usage
//
//	ctrl := session.New(session.Options{Backend: client, Profiles: profiles})
//	events, unsubscribe := ctrl.Subscribe(ctx)
//	defer unsubscribe()
//
//	ctrl.Start(ctx)
//	go ctrl.SendMessage(ctx, "¿Porciones sugeridas para 7 años (GABA)?")
//	for ev := range events {
//	    render(ev.State)
//	}
//
// # Concurrency
//
// Controller methods are safe to call from any goroutine. Network calls run
// without holding the lock. At most one turn is in flight: SendMessage
// returns ErrBusy while another turn is pending. NewChat, SelectChat and
// deleting the current chat start a new generation; answers that arrive for
// an older generation are not appended.
package session
