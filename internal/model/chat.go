// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"time"
)

// MaxTitleRunes is the number of characters of the first message kept in a
// chat title.
const MaxTitleRunes = 50

// Chat is a persisted conversation thread as listed by the backend.
// Timestamps are kept exactly as the backend sent them.
type Chat struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Updated returns the parsed update time, or the zero time if it cannot be parsed.
func (c Chat) Updated() time.Time {
	return ParseTimestamp(c.UpdatedAt)
}

// ChatTitle derives a chat title from the first message of a chat.
// Text longer than MaxTitleRunes is cut and suffixed with "...".
func ChatTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTitleRunes {
		return text
	}
	return string(runes[:MaxTitleRunes]) + "..."
}

// RelativeAge formats how long ago t was, in the short Spanish form used by
// the chat history ("ahora", "5 min", "2 horas", "Ayer", "3 días").
func RelativeAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "ahora"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + " min"
	case d < 2*time.Hour:
		return "1 hora"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + " horas"
	case d < 48*time.Hour:
		return "Ayer"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + " días"
	}
}
