// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage is returned when the text to send is blank.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy is returned when a turn is already in flight or a chat is loading.
	ErrBusy = errors.New("a message is already being processed")
	// ErrStale is returned when the session moved on before a result arrived.
	// The result was not applied.
	ErrStale = errors.New("session changed while the request was in flight")
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is where the current turn is in its lifecycle.
type Phase int

const (
	// PhaseIdle means no turn is in flight.
	PhaseIdle Phase = iota
	// PhaseDispatching means the chat is being created for the first message.
	PhaseDispatching
	// PhaseAwaitingAnswer means the user message is recorded and the query is pending.
	PhaseAwaitingAnswer
)

func (p Phase) String() string {
	switch p {
	case PhaseDispatching:
		return "dispatching"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	default:
		return "idle"
	}
}

// =============================================================================
// STATE SNAPSHOT
// =============================================================================

// State is an immutable snapshot of the session.
type State struct {
	CurrentChatID string
	Messages      []model.Message
	IsTyping      bool
	TypingStatus  string
	Phase         Phase

	// Loading is true while SelectChat fetches messages.
	Loading bool

	// Chats is the cached chat list in backend order.
	Chats []model.Chat

	// Profile is the loaded clinical profile, nil when none is stored.
	Profile *model.ClinicalData

	// NeedsProfile is true on first launch when no profile was found.
	NeedsProfile bool
}

// HasChat reports whether a chat has been established for this session.
func (s State) HasChat() bool {
	return s.CurrentChatID != ""
}

// CanSend reports whether the composer may submit.
func (s State) CanSend() bool {
	return s.Phase == PhaseIdle && !s.Loading
}

// ChatIndex returns the index of id in the cached list, or -1.
func (s State) ChatIndex(id string) int {
	for i, c := range s.Chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// NOTICES AND EVENTS
// =============================================================================

// NoticeKind is the severity of a notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient, toast-level message for the user.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

// Text returns "Title: Description", or just the description for errors
// titled "Error".
func (n Notice) Text() string {
	if n.Title == "" || n.Title == "Error" {
		return n.Description
	}
	return n.Title + ": " + n.Description
}

// EventKind identifies what an Event carries.
type EventKind int

const (
	// EventState carries a new State snapshot.
	EventState EventKind = iota
	// EventNotice carries a Notice.
	EventNotice
)

// Event is delivered to subscribers.
type Event struct {
	Kind   EventKind
	State  State
	Notice Notice
}
