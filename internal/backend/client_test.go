// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithConfig(&ClientConfig{BaseURL: srv.URL + "/"})
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c := NewClientWithConfig(nil)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
	assert.Zero(t, c.httpClient.Timeout, "no client-side timeout by default")

	c = NewClientWithConfig(&ClientConfig{BaseURL: "http://api.example:9000///"})
	assert.Equal(t, "http://api.example:9000", c.BaseURL())
}

// =============================================================================
// ENDPOINT TESTS
// =============================================================================

func TestClient_Query(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"query":"q","answer":"Come frutas.","sources":[
			{"title":"Guía","organization":"FAO","year":2022,"author":"FAO","link":"https://fao.org","similarity":"0.91"}]}`)
	})

	age := 30
	resp, err := c.Query(context.Background(), QueryRequest{
		Query:        "q",
		Mode:         "clinical",
		ClinicalData: &model.ClinicalData{Age: &age},
		ChatID:       "chat_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "q", got["query"])
	assert.Equal(t, "clinical", got["mode"])
	assert.Equal(t, "chat_1", got["chat_id"])
	assert.Equal(t, map[string]any{"age": float64(30)}, got["clinical_data"])
	assert.NotContains(t, got, "top_k")

	assert.Equal(t, "Come frutas.", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, 2022, *resp.Sources[0].Year)
	assert.Equal(t, "https://fao.org", resp.Sources[0].Link)
}

func TestClient_QueryOmitsEmptyOptionalFields(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		io.WriteString(w, `{"query":"q","answer":"a","sources":[]}`)
	})

	_, err := c.Query(context.Background(), QueryRequest{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"query": "q"}, raw)
}

func TestClient_Health(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		io.WriteString(w, `{"status":"ok"}`)
	})

	resp, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestClient_CreateChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chats", r.URL.Path)
		var body CreateChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Porciones para niños", body.Title)
		io.WriteString(w, `{"chat_id":"chat_1700000000000"}`)
	})

	id, err := c.CreateChat(context.Background(), "Porciones para niños")
	require.NoError(t, err)
	assert.Equal(t, "chat_1700000000000", id)
}

func TestClient_ListChats(t *testing.T) {
	var limits []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chats", r.URL.Path)
		limits = append(limits, r.URL.Query().Get("limit"))
		io.WriteString(w, `{"chats":[
			{"id":"b","title":"B","created_at":"2024-01-02 10:00:00","updated_at":"2024-01-03 10:00:00"},
			{"id":"a","title":"A","created_at":"2024-01-01 10:00:00","updated_at":"2024-01-01 11:00:00"}]}`)
	})

	chats, err := c.ListChats(context.Background(), 0)
	require.NoError(t, err)
	_, err = c.ListChats(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"50", "10"}, limits)
	require.Len(t, chats, 2)
	assert.Equal(t, "b", chats[0].ID, "backend order is preserved")
	assert.Equal(t, "2024-01-03 10:00:00", chats[0].UpdatedAt)
}

func TestClient_GetChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chats/chat 1", r.URL.Path)
		io.WriteString(w, `{"messages":[
			{"id":"m1","role":"user","content":"hola","timestamp":"2024-01-01 10:00:00"},
			{"id":"m2","role":"assistant","content":"¡Hola!","sources":[{"title":"T","organization":"OPS","author":"OPS","similarity":"0.5"}],"timestamp":"2024-01-01 10:00:05"}]}`)
	})

	msgs, err := c.GetChat(context.Background(), "chat 1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Len(t, msgs[1].Sources, 1)
}

func TestClient_DeleteChat(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/chats/chat_1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteChat(context.Background(), "chat_1"))
	assert.True(t, called)
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestClient_NonSuccessCarriesStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"query", func() error { _, err := c.Query(ctx, QueryRequest{Query: "q"}); return err }, "API error: Internal Server Error"},
		{"health", func() error { _, err := c.Health(ctx); return err }, "health check failed: Internal Server Error"},
		{"create", func() error { _, err := c.CreateChat(ctx, "t"); return err }, "failed to create chat: Internal Server Error"},
		{"list", func() error { _, err := c.ListChats(ctx, 0); return err }, "failed to list chats: Internal Server Error"},
		{"get", func() error { _, err := c.GetChat(ctx, "x"); return err }, "failed to get chat: Internal Server Error"},
		{"delete", func() error { return c.DeleteChat(ctx, "x") }, "failed to delete chat: Internal Server Error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.EqualError(t, err, tc.want)
			assert.True(t, IsRequestFailed(err))
			assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

			var ce *ClientError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "Internal Server Error", ce.Status)
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetChat(context.Background(), "missing")
	assert.EqualError(t, err, "failed to get chat: Not Found")
}

func TestClient_DecodeFailurePropagatesUnwrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"chats": [`)
	})

	_, err := c.ListChats(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsDecodeFailure(err))
	assert.False(t, IsRequestFailed(err))

	var ce *ClientError
	assert.False(t, errors.As(err, &ce), "decode errors are not wrapped")
}

func TestClient_DecodeTypeMismatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"chat_id": 42}`)
	})

	_, err := c.CreateChat(context.Background(), "t")
	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr))
	assert.True(t, IsDecodeFailure(err))
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: url})
	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.False(t, IsRequestFailed(err))
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"ok"}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Health(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// CONVERSION TESTS
// =============================================================================

func TestChatMessage_ToModel(t *testing.T) {
	stored := []model.Citation{{ID: "old", Label: "FAO 2022"}}

	withSources := ChatMessage{
		ID: "m1", Role: "assistant", Content: "a",
		Citations: stored,
		Sources:   []model.Source{{Title: "T", Organization: "OPS", Similarity: "0.7"}},
		Timestamp: "2024-02-01 09:30:00",
	}.ToModel()
	require.Len(t, withSources.Citations, 1)
	assert.Equal(t, "cite-0", withSources.Citations[0].ID)
	assert.Equal(t, "Similitud: 0.7", withSources.Citations[0].Excerpt)
	assert.Equal(t, model.RoleAssistant, withSources.Role)
	assert.Equal(t, 2024, withSources.Timestamp.Year())

	citationsOnly := ChatMessage{ID: "m2", Role: "assistant", Citations: stored}.ToModel()
	assert.Equal(t, stored, citationsOnly.Citations)

	plain := ChatMessage{ID: "m3", Role: "user", Content: "hola"}.ToModel()
	assert.Nil(t, plain.Citations)
	assert.True(t, plain.Timestamp.IsZero())
}
