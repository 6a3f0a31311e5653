// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "github.com/jeranaias/nutrirag-tui/internal/model"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// QueryRequest is the request body for POST /api/query.
type QueryRequest struct {
	Query        string              `json:"query"`
	Mode         string              `json:"mode,omitempty"` // "general" or "clinical"
	TopK         int                 `json:"top_k,omitempty"`
	ClinicalData *model.ClinicalData `json:"clinical_data,omitempty"`
	ChatID       string              `json:"chat_id,omitempty"`
}

// CreateChatRequest is the request body for POST /api/chats.
type CreateChatRequest struct {
	Title string `json:"title"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// QueryResponse is the response from POST /api/query.
type QueryResponse struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer"`
	Sources []model.Source `json:"sources"`
}

// HealthResponse is the response from GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateChatResponse is the response from POST /api/chats.
type CreateChatResponse struct {
	ChatID string `json:"chat_id"`
}

// ListChatsResponse is the response from GET /api/chats.
type ListChatsResponse struct {
	Chats []model.Chat `json:"chats"`
}

// ChatMessagesResponse is the response from GET /api/chats/{id}.
type ChatMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatMessage is a stored message as returned by the backend.
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Citations []model.Citation `json:"citations,omitempty"`
	Sources   []model.Source   `json:"sources,omitempty"`
	Timestamp string           `json:"timestamp"`
}

// ToModel converts a stored message to a session message. Citations are
// re-derived from sources when the backend returned any, so reloaded answers
// look the same as fresh ones; otherwise stored citations are kept.
func (m ChatMessage) ToModel() model.Message {
	citations := m.Citations
	if len(m.Sources) > 0 {
		citations = model.CitationsFromSources(m.Sources)
	}
	return model.Message{
		ID:        m.ID,
		Role:      model.Role(m.Role),
		Content:   m.Content,
		Citations: citations,
		Timestamp: model.ParseTimestamp(m.Timestamp),
	}
}
