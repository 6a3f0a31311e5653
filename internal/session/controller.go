// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/router"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the subset of the API client the controller drives.
type Backend interface {
	CreateChat(ctx context.Context, title string) (string, error)
	ListChats(ctx context.Context, limit int) ([]model.Chat, error)
	GetChat(ctx context.Context, chatID string) ([]backend.ChatMessage, error)
	DeleteChat(ctx context.Context, chatID string) error
	Query(ctx context.Context, req backend.QueryRequest) (*backend.QueryResponse, error)
}

// ProfileStore persists the clinical profile. Implementations swallow their
// own errors.
type ProfileStore interface {
	Save(data model.ClinicalData)
	Load() (*model.ClinicalData, bool)
	Clear()
}

// DefaultStatusDelay is how long "Analizando" shows before "Buscando".
const DefaultStatusDelay = 500 * time.Millisecond

// Options configures a Controller.
type Options struct {
	Backend  Backend
	Profiles ProfileStore
	Logger   *slog.Logger

	// ChatListLimit is passed to ListChats. Zero uses the backend default.
	ChatListLimit int
	// TopK is sent with every query when positive.
	TopK int
	// StatusDelay overrides DefaultStatusDelay when positive.
	StatusDelay time.Duration

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the session state machine.
type Controller struct {
	backend  Backend
	profiles ProfileStore
	logger   *slog.Logger
	events   *broadcaster

	chatListLimit int
	topK          int
	statusDelay   time.Duration
	now           func() time.Time
	newID         func() string

	mu           sync.Mutex
	chatID       string
	messages     []model.Message
	phase        Phase
	typing       bool
	status       string
	loading      bool
	chats        []model.Chat
	profile      *model.ClinicalData
	needsProfile bool

	// gen changes whenever the visible conversation is replaced.
	gen uint64
	// activeTurn is the turn currently allowed to mutate phase and typing.
	// Zero means none.
	activeTurn  uint64
	turnSeq     uint64
	statusTimer *time.Timer
	closed      bool
}

// New creates a Controller. Backend is required.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "session")

	profiles := opts.Profiles
	if profiles == nil {
		profiles = &memoryProfiles{}
	}

	c := &Controller{
		backend:       opts.Backend,
		profiles:      profiles,
		logger:        logger,
		events:        newBroadcaster(logger),
		chatListLimit: opts.ChatListLimit,
		topK:          opts.TopK,
		statusDelay:   opts.StatusDelay,
		now:           opts.Now,
		newID:         opts.NewID,
	}
	if c.statusDelay <= 0 {
		c.statusDelay = DefaultStatusDelay
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

// Subscribe returns a channel of events. See broadcaster.subscribe.
func (c *Controller) Subscribe(ctx context.Context) (<-chan Event, func()) {
	return c.events.subscribe(ctx)
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops pending timers and closes all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.closed = true
	c.mu.Unlock()
	c.events.close()
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start loads the stored profile and the chat list. A missing profile sets
// NeedsProfile. The returned error is the chat list failure, if any; the
// controller stays usable either way.
func (c *Controller) Start(ctx context.Context) error {
	profile, ok := c.profiles.Load()

	c.mu.Lock()
	c.profile = profile
	c.needsProfile = !ok
	c.emitLocked()
	c.mu.Unlock()

	if err := c.RefreshChats(ctx); err != nil {
		c.logger.Warn("initial chat list load failed", "error", err)
		return err
	}
	return nil
}

// RefreshChats reloads the chat list. On failure the cached list is kept.
func (c *Controller) RefreshChats(ctx context.Context) error {
	chats, err := c.backend.ListChats(ctx, c.chatListLimit)
	if err != nil {
		c.logger.Warn("failed to refresh chat list", "error", err)
		return err
	}

	c.mu.Lock()
	c.chats = chats
	c.emitLocked()
	c.mu.Unlock()
	return nil
}

// =============================================================================
// TURN PROCESSING
// =============================================================================

// SendMessage runs one user turn. It blocks until the turn settles and is
// meant to be called from its own goroutine by interactive callers.
//
// On a failed chat creation nothing is appended. On a failed query an
// assistant error reply is appended. ErrStale means the user switched chats
// while the turn was in flight and its result was dropped.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.phase != PhaseIdle || c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.turnSeq++
	turn := c.turnSeq
	c.activeTurn = turn
	chatID := c.chatID

	if chatID == "" {
		c.phase = PhaseDispatching
		c.emitLocked()
		c.mu.Unlock()

		id, err := c.ensureChat(ctx, turn, text)
		if err != nil {
			return err
		}
		chatID = id
		c.mu.Lock()
		if c.activeTurn != turn {
			c.mu.Unlock()
			return ErrStale
		}
	}

	c.messages = append(c.messages, model.NewUserMessage(c.newID(), text, c.now()))
	c.phase = PhaseAwaitingAnswer
	c.typing = true
	c.status = StatusAnalyzing
	c.startTimerLocked(turn)
	profile := c.profile
	c.emitLocked()
	c.mu.Unlock()

	decision := router.Decide(text, profile)
	req := backend.QueryRequest{
		Query:        text,
		Mode:         decision.Mode.String(),
		TopK:         c.topK,
		ClinicalData: decision.ClinicalData,
		ChatID:       chatID,
	}
	c.logger.Debug("dispatching query", "chat_id", chatID, "mode", req.Mode, "clinical_data", req.ClinicalData != nil)

	resp, err := c.backend.Query(ctx, req)
	if err != nil {
		return c.failTurn(turn, err)
	}
	return c.completeTurn(ctx, turn, resp)
}

// ensureChat creates the chat for the first message of a session and
// adopts its id.
func (c *Controller) ensureChat(ctx context.Context, turn uint64, text string) (string, error) {
	id, err := c.backend.CreateChat(ctx, model.ChatTitle(text))

	c.mu.Lock()
	owned := c.activeTurn == turn
	if err != nil {
		if owned {
			c.endTurnLocked()
			c.emitLocked()
		}
		c.mu.Unlock()

		c.logger.Error("failed to create chat", "error", err)
		if !owned {
			return "", ErrStale
		}
		c.notify(noticeCreateChatFailed)
		return "", fmt.Errorf("create chat: %w", err)
	}
	if !owned {
		c.mu.Unlock()
		// The chat exists on the backend now, so show it in the list.
		_ = c.RefreshChats(ctx)
		return "", ErrStale
	}
	c.chatID = id
	c.emitLocked()
	c.mu.Unlock()

	c.logger.Info("chat created", "chat_id", id)
	if err := c.RefreshChats(ctx); err != nil {
		c.logger.Warn("chat list refresh after create failed, continuing", "chat_id", id, "error", err)
	}
	return id, nil
}

func (c *Controller) completeTurn(ctx context.Context, turn uint64, resp *backend.QueryResponse) error {
	c.mu.Lock()
	if c.activeTurn != turn {
		c.mu.Unlock()
		c.logger.Debug("discarding answer for a previous chat")
		_ = c.RefreshChats(ctx)
		return ErrStale
	}
	c.stopTimerLocked()
	c.status = StatusGenerating
	c.messages = append(c.messages, model.NewAssistantMessage(
		c.newID(), resp.Answer, model.CitationsFromSources(resp.Sources), c.now(),
	))
	c.emitLocked()
	c.mu.Unlock()

	if err := c.RefreshChats(ctx); err != nil {
		c.logger.Warn("chat list refresh after answer failed", "error", err)
	}

	c.mu.Lock()
	if c.activeTurn == turn {
		c.endTurnLocked()
		c.emitLocked()
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) failTurn(turn uint64, err error) error {
	c.logger.Error("query failed", "error", err)

	c.mu.Lock()
	if c.activeTurn != turn {
		c.mu.Unlock()
		return ErrStale
	}
	c.messages = append(c.messages, model.NewAssistantMessage(c.newID(), ErrorReply(err), nil, c.now()))
	c.endTurnLocked()
	c.emitLocked()
	c.mu.Unlock()

	c.notify(noticeQueryFailed)
	return fmt.Errorf("query: %w", err)
}

// =============================================================================
// CHAT NAVIGATION
// =============================================================================

// NewChat clears the conversation locally. The backend chat is created
// lazily by the next SendMessage.
func (c *Controller) NewChat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.emitLocked()
}

// SelectChat switches to chatID and loads its messages. A load failure
// leaves the session on chatID with no messages.
func (c *Controller) SelectChat(ctx context.Context, chatID string) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.endTurnLocked()
	c.chatID = chatID
	c.messages = nil
	c.loading = true
	c.emitLocked()
	c.mu.Unlock()

	stored, err := c.backend.GetChat(ctx, chatID)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return ErrStale
	}
	c.loading = false
	if err != nil {
		c.emitLocked()
		c.mu.Unlock()

		c.logger.Error("failed to load chat", "chat_id", chatID, "error", err)
		c.notify(noticeLoadChatFailed)
		return fmt.Errorf("load chat %s: %w", chatID, err)
	}

	msgs := make([]model.Message, 0, len(stored))
	for _, m := range stored {
		msgs = append(msgs, m.ToModel())
	}
	c.messages = msgs
	c.emitLocked()
	c.mu.Unlock()
	return nil
}

// DeleteChat deletes chatID on the backend. Deleting the current chat
// resets the session as NewChat does.
func (c *Controller) DeleteChat(ctx context.Context, chatID string) error {
	if err := c.backend.DeleteChat(ctx, chatID); err != nil {
		c.logger.Error("failed to delete chat", "chat_id", chatID, "error", err)
		c.notify(noticeDeleteFailed)
		return fmt.Errorf("delete chat %s: %w", chatID, err)
	}

	if err := c.RefreshChats(ctx); err != nil {
		c.logger.Warn("chat list refresh after delete failed", "chat_id", chatID, "error", err)
	}

	c.mu.Lock()
	if c.chatID == chatID {
		c.resetLocked()
	}
	c.emitLocked()
	c.mu.Unlock()

	c.notify(noticeChatDeleted)
	return nil
}

// =============================================================================
// CLINICAL PROFILE
// =============================================================================

// SaveProfile validates and stores the profile.
func (c *Controller) SaveProfile(data model.ClinicalData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	c.profiles.Save(data)

	saved := data.Clone()
	c.mu.Lock()
	c.profile = &saved
	c.needsProfile = false
	c.emitLocked()
	c.mu.Unlock()

	c.notify(noticeProfileSaved)
	return nil
}

// ClearProfile removes the stored profile.
func (c *Controller) ClearProfile() {
	c.profiles.Clear()

	c.mu.Lock()
	c.profile = nil
	c.emitLocked()
	c.mu.Unlock()

	c.notify(noticeProfileCleared)
}

// DismissProfilePrompt hides the first-launch prompt without saving.
func (c *Controller) DismissProfilePrompt() {
	c.mu.Lock()
	c.needsProfile = false
	c.emitLocked()
	c.mu.Unlock()
}

// =============================================================================
// INTERNALS
// =============================================================================

// resetLocked starts a fresh, chat-less conversation.
func (c *Controller) resetLocked() {
	c.gen++
	c.endTurnLocked()
	c.chatID = ""
	c.messages = nil
	c.loading = false
}

// endTurnLocked drops ownership of any in-flight turn and clears typing.
func (c *Controller) endTurnLocked() {
	c.stopTimerLocked()
	c.activeTurn = 0
	c.phase = PhaseIdle
	c.typing = false
	c.status = ""
}

func (c *Controller) startTimerLocked(turn uint64) {
	c.stopTimerLocked()
	c.statusTimer = time.AfterFunc(c.statusDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.activeTurn != turn || c.status != StatusAnalyzing {
			return
		}
		c.status = StatusSearching
		c.emitLocked()
	})
}

func (c *Controller) stopTimerLocked() {
	if c.statusTimer != nil {
		c.statusTimer.Stop()
		c.statusTimer = nil
	}
}

func (c *Controller) snapshotLocked() State {
	s := State{
		CurrentChatID: c.chatID,
		IsTyping:      c.typing,
		TypingStatus:  c.status,
		Phase:         c.phase,
		Loading:       c.loading,
		NeedsProfile:  c.needsProfile,
	}
	if len(c.messages) > 0 {
		s.Messages = append([]model.Message(nil), c.messages...)
	}
	if len(c.chats) > 0 {
		s.Chats = append([]model.Chat(nil), c.chats...)
	}
	if c.profile != nil {
		p := c.profile.Clone()
		s.Profile = &p
	}
	return s
}

// emitLocked publishes the current state. Publishing never blocks, so it is
// safe under the lock and keeps events in mutation order.
func (c *Controller) emitLocked() {
	if c.closed {
		return
	}
	c.events.publish(Event{Kind: EventState, State: c.snapshotLocked()})
}

func (c *Controller) notify(n Notice) {
	c.events.publish(Event{Kind: EventNotice, Notice: n})
}

// memoryProfiles is used when no ProfileStore is configured.
type memoryProfiles struct {
	mu   sync.Mutex
	data *model.ClinicalData
}

func (m *memoryProfiles) Save(data model.ClinicalData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := data.Clone()
	m.data = &d
}

func (m *memoryProfiles) Load() (*model.ClinicalData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false
	}
	d := m.data.Clone()
	return &d, true
}

func (m *memoryProfiles) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
}
