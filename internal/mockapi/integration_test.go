// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/mockapi"
	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/storage"
)

// TestSessionAgainstMockBackend drives a full conversation through the real
// HTTP client.
func TestSessionAgainstMockBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(mockapi.New(mockapi.Options{Logger: logger}).Handler())
	t.Cleanup(ts.Close)

	kv, err := storage.Open(storage.BackendSQLite, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	profiles := storage.NewProfileStore(kv, logger)

	ctrl := session.New(session.Options{
		Backend:     backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: ts.URL, Timeout: 5 * time.Second}),
		Profiles:    profiles,
		Logger:      logger,
		StatusDelay: 10 * time.Millisecond,
	})
	t.Cleanup(ctrl.Close)
	ctx := context.Background()

	require.NoError(t, ctrl.Start(ctx))
	assert.True(t, ctrl.State().NeedsProfile)

	age := 35
	require.NoError(t, ctrl.SaveProfile(model.ClinicalData{Age: &age, Conditions: []string{"hipertensión"}}))
	_, ok := profiles.Load()
	require.True(t, ok, "profile persisted to sqlite")

	require.NoError(t, ctrl.SendMessage(ctx, "Tengo hipertensión, ¿cómo reduzco el sodio?"))
	st := ctrl.State()
	require.Len(t, st.Messages, 2)
	assert.Contains(t, st.Messages[1].Content, "información clínica")
	require.Len(t, st.Messages[1].Citations, 2)
	assert.Equal(t, "[1]", st.Messages[1].Citations[0].Label)
	require.Len(t, st.Chats, 1)
	assert.Equal(t, st.CurrentChatID, st.Chats[0].ID)
	assert.Equal(t, "Tengo hipertensión, ¿cómo reduzco el sodio?", st.Chats[0].Title)

	chatID := st.CurrentChatID
	ctrl.NewChat()
	require.NoError(t, ctrl.SelectChat(ctx, chatID))
	reloaded := ctrl.State()
	require.Len(t, reloaded.Messages, 2)
	assert.Equal(t, st.Messages[1].Citations, reloaded.Messages[1].Citations, "citations are re-derived identically")

	require.NoError(t, ctrl.DeleteChat(ctx, chatID))
	final := ctrl.State()
	assert.Empty(t, final.CurrentChatID)
	assert.Empty(t, final.Chats)
}
