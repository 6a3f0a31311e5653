// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "Tú"
	case RoleAssistant:
		return "NutriRAG"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a chat.
// Messages are immutable once appended to a session.
type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewUserMessage creates a user message.
func NewUserMessage(id, content string, at time.Time) Message {
	return Message{
		ID:        id,
		Role:      RoleUser,
		Content:   content,
		Timestamp: at,
	}
}

// NewAssistantMessage creates an assistant message with its citations.
func NewAssistantMessage(id, content string, citations []Citation, at time.Time) Message {
	return Message{
		ID:        id,
		Role:      RoleAssistant,
		Content:   content,
		Citations: citations,
		Timestamp: at,
	}
}

// IsUser returns true if this is a user message.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant returns true if this is an assistant message.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// HasCitations reports whether the message carries any citations.
func (m Message) HasCitations() bool {
	return len(m.Citations) > 0
}

// FormatTime returns the message time as HH:MM, the way the chat shows it.
func (m Message) FormatTime() string {
	if m.Timestamp.IsZero() {
		return ""
	}
	return m.Timestamp.Format("15:04")
}

// =============================================================================
// SOURCES AND CITATIONS
// =============================================================================

// Source is a reference record returned by the answering backend.
type Source struct {
	Title               string `json:"title"`
	Organization        string `json:"organization"`
	OrganizationAcronym string `json:"organization_acronym,omitempty"`
	Year                *int   `json:"year,omitempty"`
	Author              string `json:"author"`
	Link                string `json:"link,omitempty"`
	Similarity          string `json:"similarity"`
}

// Citation is a display-ready reference attached to an assistant message.
type Citation struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
}

// CitationFromSource maps the source at position index to a citation.
// The mapping is positional: ids and labels depend only on index.
func CitationFromSource(index int, src Source) Citation {
	year := ""
	if src.Year != nil {
		year = strconv.Itoa(*src.Year)
	}
	return Citation{
		ID:           "cite-" + strconv.Itoa(index),
		Label:        "[" + strconv.Itoa(index+1) + "]",
		Organization: src.Organization,
		Year:         year,
		Title:        src.Title,
		URL:          src.Link,
		Excerpt:      "Similitud: " + src.Similarity,
	}
}

// CitationsFromSources maps backend sources to citations in order.
// Returns nil for an empty list.
func CitationsFromSources(sources []Source) []Citation {
	if len(sources) == 0 {
		return nil
	}
	citations := make([]Citation, len(sources))
	for i, src := range sources {
		citations[i] = CitationFromSource(i, src)
	}
	return citations
}

// Badge returns the short "label organization" form used in citation lists.
func (c Citation) Badge() string {
	return strings.TrimSpace(c.Label + " " + c.Organization)
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// timestampLayouts are the formats the backend is known to emit. SQLite's
// CURRENT_TIMESTAMP has no zone and is interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a backend timestamp.
// Returns the zero time if s matches no known layout.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
