// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// =============================================================================
// FAKE BACKEND
// =============================================================================

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	queries []backend.QueryRequest
	titles  []string

	chatID    string
	chats     []model.Chat
	stored    map[string][]backend.ChatMessage
	answer    *backend.QueryResponse
	createErr error
	listErr   error
	getErr    error
	deleteErr error
	queryErr  error

	// queryGate, when set, blocks Query until it is closed.
	queryGate chan struct{}
	// createGate, when set, blocks CreateChat until it is closed.
	createGate chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chatID: "chat_1",
		stored: make(map[string][]backend.ChatMessage),
		answer: &backend.QueryResponse{
			Answer: "Consume frutas y verduras.",
			Sources: []model.Source{
				{Title: "Guías Alimentarias", Organization: "FAO", Similarity: "0.91"},
			},
		},
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) CreateChat(ctx context.Context, title string) (string, error) {
	f.record("create")
	if f.createGate != nil {
		<-f.createGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.chatID, nil
}

func (f *fakeBackend) ListChats(ctx context.Context, limit int) ([]model.Chat, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Chat(nil), f.chats...), nil
}

func (f *fakeBackend) GetChat(ctx context.Context, chatID string) ([]backend.ChatMessage, error) {
	f.record("get:" + chatID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored[chatID], nil
}

func (f *fakeBackend) DeleteChat(ctx context.Context, chatID string) error {
	f.record("delete:" + chatID)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeBackend) Query(ctx context.Context, req backend.QueryRequest) (*backend.QueryResponse, error) {
	f.record("query")
	f.mu.Lock()
	f.queries = append(f.queries, req)
	gate := f.queryGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.answer, nil
}

func (f *fakeBackend) lastQuery(t *testing.T) backend.QueryRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries)
	return f.queries[len(f.queries)-1]
}

// =============================================================================
// HELPERS
// =============================================================================

func newTestController(t *testing.T, fb *fakeBackend, profiles ProfileStore) *Controller {
	t.Helper()
	ids := 0
	c := New(Options{
		Backend:  fb,
		Profiles: profiles,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:      func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("msg-%d", ids)
		},
	})
	t.Cleanup(c.Close)
	return c
}

// collectNotices drains notices from a subscription in the background.
func collectNotices(t *testing.T, c *Controller) func() []Notice {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events, _ := c.Subscribe(ctx)

	var mu sync.Mutex
	var notices []Notice
	go func() {
		for ev := range events {
			if ev.Kind == EventNotice {
				mu.Lock()
				notices = append(notices, ev.Notice)
				mu.Unlock()
			}
		}
	}()
	return func() []Notice {
		mu.Lock()
		defer mu.Unlock()
		return append([]Notice(nil), notices...)
	}
}

func waitForNotice(t *testing.T, notices func() []Notice, want Notice) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, n := range notices() {
			if n == want {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond, "expected notice %q", want.Description)
}

// =============================================================================
// SEND MESSAGE
// =============================================================================

func TestSendMessage_FirstMessageCreatesChat(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)

	require.NoError(t, c.SendMessage(context.Background(), "  ¿Qué frutas tienen más fibra?  "))

	assert.Equal(t, []string{"create", "list", "query", "list"}, fb.Calls())
	assert.Equal(t, []string{"¿Qué frutas tienen más fibra?"}, fb.titles)

	st := c.State()
	assert.Equal(t, "chat_1", st.CurrentChatID)
	assert.False(t, st.IsTyping)
	assert.Empty(t, st.TypingStatus)
	assert.Equal(t, PhaseIdle, st.Phase)

	require.Len(t, st.Messages, 2)
	assert.Equal(t, model.RoleUser, st.Messages[0].Role)
	assert.Equal(t, "¿Qué frutas tienen más fibra?", st.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, st.Messages[1].Role)
	assert.Equal(t, "Consume frutas y verduras.", st.Messages[1].Content)
	require.Len(t, st.Messages[1].Citations, 1)
	assert.Equal(t, "cite-0", st.Messages[1].Citations[0].ID)
	assert.Equal(t, "[1]", st.Messages[1].Citations[0].Label)

	q := fb.lastQuery(t)
	assert.Equal(t, "chat_1", q.ChatID)
	assert.Equal(t, "general", q.Mode)
	assert.Nil(t, q.ClinicalData)
}

func TestSendMessage_LongTitleIsTruncated(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)

	text := strings.Repeat("a", 60)
	require.NoError(t, c.SendMessage(context.Background(), text))
	assert.Equal(t, []string{strings.Repeat("a", 50) + "..."}, fb.titles)
}

func TestSendMessage_ExistingChatSkipsCreate(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)
	ctx := context.Background()

	require.NoError(t, c.SendMessage(ctx, "hola"))
	require.NoError(t, c.SendMessage(ctx, "otra pregunta"))

	assert.Equal(t, []string{"create", "list", "query", "list", "query", "list"}, fb.Calls())
	assert.Len(t, c.State().Messages, 4)
}

func TestSendMessage_EmptyIsNoOp(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		assert.ErrorIs(t, c.SendMessage(context.Background(), text), ErrEmptyMessage)
	}
	assert.Empty(t, fb.Calls())
	assert.Empty(t, c.State().Messages)
}

func TestSendMessage_CreateFailureAppendsNothing(t *testing.T) {
	fb := newFakeBackend()
	fb.createErr = errors.New("failed to create chat: Internal Server Error")
	c := newTestController(t, fb, nil)
	notices := collectNotices(t, c)

	err := c.SendMessage(context.Background(), "hola")
	require.Error(t, err)

	assert.Equal(t, []string{"create"}, fb.Calls())
	st := c.State()
	assert.Empty(t, st.Messages)
	assert.Empty(t, st.CurrentChatID)
	assert.False(t, st.IsTyping)
	assert.Equal(t, PhaseIdle, st.Phase)
	waitForNotice(t, notices, noticeCreateChatFailed)
}

func TestSendMessage_ListFailureAfterCreateContinues(t *testing.T) {
	fb := newFakeBackend()
	fb.listErr = errors.New("failed to list chats: Bad Gateway")
	c := newTestController(t, fb, nil)

	require.NoError(t, c.SendMessage(context.Background(), "hola"))
	assert.Equal(t, []string{"create", "list", "query", "list"}, fb.Calls())
	assert.Len(t, c.State().Messages, 2)
}

func TestSendMessage_QueryFailureAppendsErrorReply(t *testing.T) {
	fb := newFakeBackend()
	fb.queryErr = errors.New("API error: Internal Server Error")
	c := newTestController(t, fb, nil)
	notices := collectNotices(t, c)

	err := c.SendMessage(context.Background(), "hola")
	require.Error(t, err)

	assert.Equal(t, []string{"create", "list", "query"}, fb.Calls(), "no refresh after a failed query")

	st := c.State()
	require.Len(t, st.Messages, 2)
	reply := st.Messages[1]
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.True(t, strings.HasPrefix(reply.Content, "Lo siento, ocurrió un error al procesar tu pregunta."))
	assert.True(t, strings.HasSuffix(reply.Content, "\n\nError: API error: Internal Server Error"))
	assert.Nil(t, reply.Citations)
	assert.False(t, st.IsTyping)
	assert.Equal(t, PhaseIdle, st.Phase)
	waitForNotice(t, notices, noticeQueryFailed)
}

func TestSendMessage_ClinicalQueryAttachesProfile(t *testing.T) {
	age := 45
	profiles := &memoryProfiles{}
	profiles.Save(model.ClinicalData{Age: &age, Conditions: []string{"diabetes"}})

	tests := []struct {
		name     string
		query    string
		mode     string
		attached bool
	}{
		{"clinical keyword", "Tengo DIABETES, ¿qué como?", "clinical", true},
		{"weight keyword", "Quiero bajar de peso", "clinical", true},
		{"general", "¿Qué frutas tienen más fibra?", "general", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := newFakeBackend()
			c := newTestController(t, fb, profiles)
			require.NoError(t, c.Start(context.Background()))

			require.NoError(t, c.SendMessage(context.Background(), tc.query))
			q := fb.lastQuery(t)
			assert.Equal(t, tc.mode, q.Mode)
			if tc.attached {
				require.NotNil(t, q.ClinicalData)
				assert.Equal(t, 45, *q.ClinicalData.Age)
			} else {
				assert.Nil(t, q.ClinicalData)
			}
		})
	}
}

func TestSendMessage_ClinicalWithoutProfile(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)
	require.NoError(t, c.Start(context.Background()))

	require.NoError(t, c.SendMessage(context.Background(), "tengo hipertensión"))
	q := fb.lastQuery(t)
	assert.Equal(t, "clinical", q.Mode)
	assert.Nil(t, q.ClinicalData)
}

func TestSendMessage_TopKIsForwarded(t *testing.T) {
	fb := newFakeBackend()
	c := New(Options{Backend: fb, TopK: 4, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	t.Cleanup(c.Close)

	require.NoError(t, c.SendMessage(context.Background(), "hola"))
	assert.Equal(t, 4, fb.lastQuery(t).TopK)
}

func TestSendMessage_BusyWhileInFlight(t *testing.T) {
	fb := newFakeBackend()
	fb.queryGate = make(chan struct{})
	c := newTestController(t, fb, nil)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "primera") }()

	require.Eventually(t, func() bool { return c.State().IsTyping }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, c.SendMessage(context.Background(), "segunda"), ErrBusy)
	assert.False(t, c.State().CanSend())

	close(fb.queryGate)
	require.NoError(t, <-done)
	assert.Len(t, c.State().Messages, 2)
}

// =============================================================================
// TYPING STATUS
// =============================================================================

func TestSendMessage_TypingStatusStages(t *testing.T) {
	fb := newFakeBackend()
	fb.queryGate = make(chan struct{})
	c := New(Options{
		Backend:     fb,
		StatusDelay: 20 * time.Millisecond,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(c.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _ := c.Subscribe(ctx)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "hola") }()

	require.Eventually(t, func() bool {
		return c.State().TypingStatus == StatusSearching
	}, time.Second, 5*time.Millisecond)

	close(fb.queryGate)
	require.NoError(t, <-done)
	cancel()

	var statuses []string
	for ev := range events {
		if ev.Kind != EventState || !ev.State.IsTyping {
			continue
		}
		if n := len(statuses); n == 0 || statuses[n-1] != ev.State.TypingStatus {
			statuses = append(statuses, ev.State.TypingStatus)
		}
	}
	assert.Equal(t, []string{StatusAnalyzing, StatusSearching, StatusGenerating}, statuses)
}

func TestSendMessage_FastAnswerCancelsStatusTimer(t *testing.T) {
	fb := newFakeBackend()
	c := New(Options{
		Backend:     fb,
		StatusDelay: 30 * time.Millisecond,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(c.Close)

	require.NoError(t, c.SendMessage(context.Background(), "hola"))
	time.Sleep(60 * time.Millisecond)

	st := c.State()
	assert.False(t, st.IsTyping)
	assert.Empty(t, st.TypingStatus, "timer must not revive the status after the turn ended")
}

// =============================================================================
// STALE RESPONSES
// =============================================================================

func TestSendMessage_AnswerDiscardedAfterNewChat(t *testing.T) {
	fb := newFakeBackend()
	fb.queryGate = make(chan struct{})
	c := newTestController(t, fb, nil)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "hola") }()
	require.Eventually(t, func() bool { return c.State().IsTyping }, time.Second, 5*time.Millisecond)

	c.NewChat()
	st := c.State()
	assert.Empty(t, st.CurrentChatID)
	assert.Empty(t, st.Messages)
	assert.False(t, st.IsTyping)
	assert.True(t, st.CanSend())

	close(fb.queryGate)
	assert.ErrorIs(t, <-done, ErrStale)
	assert.Empty(t, c.State().Messages, "late answer must not land in the new chat")
}

func TestSendMessage_FailureDiscardedAfterSelectChat(t *testing.T) {
	fb := newFakeBackend()
	fb.queryGate = make(chan struct{})
	fb.queryErr = errors.New("boom")
	fb.stored["chat_9"] = []backend.ChatMessage{{ID: "s1", Role: "user", Content: "vieja"}}
	c := newTestController(t, fb, nil)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "hola") }()
	require.Eventually(t, func() bool { return c.State().IsTyping }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.SelectChat(context.Background(), "chat_9"))
	close(fb.queryGate)
	assert.ErrorIs(t, <-done, ErrStale)

	st := c.State()
	assert.Equal(t, "chat_9", st.CurrentChatID)
	require.Len(t, st.Messages, 1)
	assert.Equal(t, "vieja", st.Messages[0].Content)
}

func TestSendMessage_NewChatDuringCreate(t *testing.T) {
	fb := newFakeBackend()
	fb.createGate = make(chan struct{})
	c := newTestController(t, fb, nil)

	done := make(chan error, 1)
	go func() { done <- c.SendMessage(context.Background(), "hola") }()
	require.Eventually(t, func() bool { return c.State().Phase == PhaseDispatching }, time.Second, 5*time.Millisecond)

	c.NewChat()
	close(fb.createGate)
	assert.ErrorIs(t, <-done, ErrStale)

	st := c.State()
	assert.Empty(t, st.CurrentChatID)
	assert.Empty(t, st.Messages)
	assert.NotContains(t, fb.Calls(), "query")
}

// =============================================================================
// CHAT NAVIGATION
// =============================================================================

func TestSelectChat_LoadsMessages(t *testing.T) {
	fb := newFakeBackend()
	year := 2022
	fb.stored["chat_7"] = []backend.ChatMessage{
		{ID: "m1", Role: "user", Content: "hola", Timestamp: "2024-01-01 10:00:00"},
		{ID: "m2", Role: "assistant", Content: "respuesta", Timestamp: "2024-01-01 10:00:05",
			Sources: []model.Source{{Title: "Guía", Organization: "OPS", Year: &year, Similarity: "0.8"}}},
	}
	c := newTestController(t, fb, nil)

	require.NoError(t, c.SelectChat(context.Background(), "chat_7"))

	st := c.State()
	assert.Equal(t, "chat_7", st.CurrentChatID)
	assert.False(t, st.Loading)
	require.Len(t, st.Messages, 2)
	assert.Equal(t, "m1", st.Messages[0].ID)
	require.Len(t, st.Messages[1].Citations, 1)
	assert.Equal(t, "2022", st.Messages[1].Citations[0].Year)
}

func TestSelectChat_FailureKeepsID(t *testing.T) {
	fb := newFakeBackend()
	fb.getErr = errors.New("failed to get chat: Not Found")
	c := newTestController(t, fb, nil)
	notices := collectNotices(t, c)

	require.NoError(t, c.SendMessage(context.Background(), "hola"))
	require.Error(t, c.SelectChat(context.Background(), "chat_missing"))

	st := c.State()
	assert.Equal(t, "chat_missing", st.CurrentChatID)
	assert.Empty(t, st.Messages)
	assert.False(t, st.Loading)
	waitForNotice(t, notices, noticeLoadChatFailed)
}

func TestNewChat_MakesNoBackendCalls(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)

	require.NoError(t, c.SendMessage(context.Background(), "hola"))
	before := len(fb.Calls())

	c.NewChat()
	assert.Len(t, fb.Calls(), before)

	st := c.State()
	assert.Empty(t, st.CurrentChatID)
	assert.Empty(t, st.Messages)
	assert.False(t, st.IsTyping)
}

func TestDeleteChat(t *testing.T) {
	tests := []struct {
		name       string
		current    bool
		deleteErr  error
		wantChat   string
		wantMsgs   int
		wantCalls  []string
		wantNotice Notice
		wantErr    bool
	}{
		{
			name:       "current chat resets session",
			current:    true,
			wantChat:   "",
			wantMsgs:   0,
			wantCalls:  []string{"delete:chat_1", "list"},
			wantNotice: noticeChatDeleted,
		},
		{
			name:       "other chat keeps session",
			wantChat:   "chat_1",
			wantMsgs:   2,
			wantCalls:  []string{"delete:chat_other", "list"},
			wantNotice: noticeChatDeleted,
		},
		{
			name:       "failure changes nothing",
			current:    true,
			deleteErr:  errors.New("failed to delete chat: Internal Server Error"),
			wantChat:   "chat_1",
			wantMsgs:   2,
			wantCalls:  []string{"delete:chat_1"},
			wantNotice: noticeDeleteFailed,
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := newFakeBackend()
			c := newTestController(t, fb, nil)
			notices := collectNotices(t, c)
			require.NoError(t, c.SendMessage(context.Background(), "hola"))

			fb.mu.Lock()
			fb.calls = nil
			fb.deleteErr = tc.deleteErr
			fb.mu.Unlock()

			target := "chat_other"
			if tc.current {
				target = "chat_1"
			}
			err := c.DeleteChat(context.Background(), target)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			st := c.State()
			assert.Equal(t, tc.wantChat, st.CurrentChatID)
			assert.Len(t, st.Messages, tc.wantMsgs)
			assert.Equal(t, tc.wantCalls, fb.Calls())
			waitForNotice(t, notices, tc.wantNotice)
		})
	}
}

// =============================================================================
// LIFECYCLE AND CHAT LIST
// =============================================================================

func TestStart_NeedsProfileWhenMissing(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, &memoryProfiles{})

	require.NoError(t, c.Start(context.Background()))
	st := c.State()
	assert.True(t, st.NeedsProfile)
	assert.Nil(t, st.Profile)

	c.DismissProfilePrompt()
	assert.False(t, c.State().NeedsProfile)
}

func TestStart_LoadsProfileAndChats(t *testing.T) {
	fb := newFakeBackend()
	fb.chats = []model.Chat{{ID: "b", Title: "B"}, {ID: "a", Title: "A"}}
	age := 30
	profiles := &memoryProfiles{}
	profiles.Save(model.ClinicalData{Age: &age})
	c := newTestController(t, fb, profiles)

	require.NoError(t, c.Start(context.Background()))
	st := c.State()
	assert.False(t, st.NeedsProfile)
	require.NotNil(t, st.Profile)
	assert.Equal(t, 30, *st.Profile.Age)
	assert.Equal(t, []string{"b", "a"}, []string{st.Chats[0].ID, st.Chats[1].ID})
	assert.Equal(t, 1, st.ChatIndex("a"))
	assert.Equal(t, -1, st.ChatIndex("zz"))
}

func TestRefreshChats_FailureKeepsCache(t *testing.T) {
	fb := newFakeBackend()
	fb.chats = []model.Chat{{ID: "a", Title: "A"}}
	c := newTestController(t, fb, nil)

	require.NoError(t, c.RefreshChats(context.Background()))
	fb.mu.Lock()
	fb.listErr = errors.New("down")
	fb.mu.Unlock()

	assert.Error(t, c.RefreshChats(context.Background()))
	require.Len(t, c.State().Chats, 1)
	assert.Equal(t, "a", c.State().Chats[0].ID)
}

// =============================================================================
// CLINICAL PROFILE
// =============================================================================

func TestSaveProfile(t *testing.T) {
	fb := newFakeBackend()
	profiles := &memoryProfiles{}
	c := newTestController(t, fb, profiles)
	notices := collectNotices(t, c)
	require.NoError(t, c.Start(context.Background()))

	bad := 0
	err := c.SaveProfile(model.ClinicalData{Age: &bad})
	verrs, ok := model.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, model.MsgInvalidAge, verrs.For("age"))
	_, stored := profiles.Load()
	assert.False(t, stored, "invalid profile must not be stored")

	age := 40
	require.NoError(t, c.SaveProfile(model.ClinicalData{Age: &age, Allergies: []string{"maní"}}))
	st := c.State()
	assert.False(t, st.NeedsProfile)
	require.NotNil(t, st.Profile)
	assert.Equal(t, []string{"maní"}, st.Profile.Allergies)
	waitForNotice(t, notices, noticeProfileSaved)

	c.ClearProfile()
	assert.Nil(t, c.State().Profile)
	_, stored = profiles.Load()
	assert.False(t, stored)
	waitForNotice(t, notices, noticeProfileCleared)
}

func TestState_IsACopy(t *testing.T) {
	fb := newFakeBackend()
	c := newTestController(t, fb, nil)
	require.NoError(t, c.SendMessage(context.Background(), "hola"))

	st := c.State()
	st.Messages[0].Content = "cambiado"
	assert.Equal(t, "hola", c.State().Messages[0].Content)
}

func TestNotice_Text(t *testing.T) {
	assert.Equal(t, "No se pudo eliminar el chat.", noticeDeleteFailed.Text())
	assert.Equal(t, "Chat eliminado: El chat ha sido eliminado exitosamente.", noticeChatDeleted.Text())
}

func TestErrorReply(t *testing.T) {
	assert.Contains(t, ErrorReply(errors.New("x")), "\n\nError: x")
	assert.Contains(t, ErrorReply(nil), "Error desconocido")
}
