// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// TimestampLayout is the backend's timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

var errChatNotFound = errors.New("chat not found")

type chatRecord struct {
	chat     model.Chat
	updated  time.Time
	messages []backend.ChatMessage
}

// store is the in-memory chat database.
type store struct {
	mu    sync.Mutex
	chats map[string]*chatRecord
	now   func() time.Time
	// seq breaks updated_at ties so ordering is deterministic.
	seq int64
}

func newStore(now func() time.Time) *store {
	return &store{chats: make(map[string]*chatRecord), now: now}
}

func (s *store) stamp() (time.Time, string) {
	s.seq++
	t := s.now().Add(time.Duration(s.seq) * time.Nanosecond)
	return t, t.Format(TimestampLayout)
}

func (s *store) create(title string) model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ts := s.stamp()
	rec := &chatRecord{
		chat: model.Chat{
			ID:        "chat_" + uuid.NewString()[:8],
			Title:     title,
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		updated: t,
	}
	s.chats[rec.chat.ID] = rec
	return rec.chat
}

// list returns chats by most recent activity, at most limit.
func (s *store) list(limit int) []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]*chatRecord, 0, len(s.chats))
	for _, r := range s.chats {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].updated.After(recs[j].updated)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	chats := make([]model.Chat, 0, len(recs))
	for _, r := range recs {
		chats = append(chats, r.chat)
	}
	return chats
}

func (s *store) messages(id string) ([]backend.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.chats[id]
	if !ok {
		return nil, errChatNotFound
	}
	return append([]backend.ChatMessage{}, rec.messages...), nil
}

func (s *store) delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[id]; !ok {
		return errChatNotFound
	}
	delete(s.chats, id)
	return nil
}

// exchange records a question and its answer in chat id.
func (s *store) exchange(id, query, answer string, sources []model.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.chats[id]
	if !ok {
		return errChatNotFound
	}

	_, askedAt := s.stamp()
	t, answeredAt := s.stamp()
	rec.messages = append(rec.messages,
		backend.ChatMessage{ID: uuid.NewString(), Role: string(model.RoleUser), Content: query, Timestamp: askedAt},
		backend.ChatMessage{ID: uuid.NewString(), Role: string(model.RoleAssistant), Content: answer, Sources: sources, Timestamp: answeredAt},
	)
	rec.updated = t
	rec.chat.UpdatedAt = answeredAt
	return nil
}
