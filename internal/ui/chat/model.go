// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/markdown"
	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/ui/components"
	"github.com/jeranaias/nutrirag-tui/internal/ui/profile"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// =============================================================================
// TEXTS AND LIMITS
// =============================================================================

const (
	// ComposerPlaceholder is shown in the empty composer.
	ComposerPlaceholder = "Escribe tu pregunta sobre nutrición..."
	// FooterText is the disclaimer under the composer.
	FooterText = "NutriRAG puede cometer errores. Verifica información importante."
	// LoadingText replaces the transcript while a chat loads.
	LoadingText = "Cargando conversación..."
	// ConfirmDeleteText asks for the second delete key press.
	ConfirmDeleteText = "Pulsa x otra vez para eliminar el chat"

	composerHeight = 3
	composerLimit  = 4000

	// narrowWidth hides the sidebar unless the drawer is toggled open.
	narrowWidth = 72

	healthTimeout  = 5 * time.Second
	healthInterval = 30 * time.Second
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// HealthChecker probes the backend. *backend.Client implements it.
type HealthChecker interface {
	Health(ctx context.Context) (*backend.HealthResponse, error)
}

// Options configures the chat model.
type Options struct {
	// Controller owns the session. Required.
	Controller *session.Controller
	// Health is polled for the status bar. Nil leaves the connection unknown.
	Health HealthChecker
	Theme  *styles.Theme
	Logger *slog.Logger

	ShowTimestamps bool
	WordWrap       bool
	SidebarWidth   int

	// RequestTimeout bounds each controller call. Zero waits for as long as
	// the backend takes, matching api.timeout.
	RequestTimeout time.Duration

	// Clipboard defaults to the system clipboard.
	Clipboard components.ClipboardWriter

	// FillQuickPrompts puts a chosen quick prompt in the composer for
	// editing. By default it is sent as the first question.
	FillQuickPrompts bool
}

// =============================================================================
// MESSAGES
// =============================================================================

// eventMsg carries one session event into the update loop.
type eventMsg struct {
	event session.Event
}

// eventsClosedMsg is sent when the subscription ends.
type eventsClosedMsg struct{}

// actionDoneMsg reports the result of a blocking controller call.
type actionDoneMsg struct {
	op  string
	err error
}

// healthMsg is the result of one backend probe.
type healthMsg struct {
	err error
}

// healthTickMsg schedules the next probe.
type healthTickMsg struct{}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	ctrl      *session.Controller
	health    HealthChecker
	clipboard components.ClipboardWriter
	logger    *slog.Logger

	state       session.State
	events      <-chan session.Event
	unsubscribe func()

	theme  *styles.Theme
	keys   KeyMap
	width  int
	height int
	focus  Focus

	header    *components.Header
	sidebar   *components.Sidebar
	messages  *components.MessageList
	welcome   *components.Welcome
	typing    components.TypingIndicator
	statusBar *components.StatusBar
	toasts    *components.ToastManager

	composer textarea.Model
	viewport viewport.Model
	help     help.Model

	form          *profile.Form
	profilePrompt bool // the first-launch prompt was already opened
	showHelp      bool
	drawerOpen    bool

	selected      int             // highlighted message in the transcript, -1 for none
	expanded      map[string]bool // message ids with open citations
	codeCursor    map[string]int  // next code block to copy per message
	confirmDelete string          // chat id awaiting the second delete press
	offsets       []int           // first transcript line of each message

	wordWrap     bool
	sidebarWidth int
	reqTimeout   time.Duration
	fillPrompts  bool
}

// New creates the chat model and subscribes it to the controller.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ThemeAuto)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = components.SystemClipboard
	}
	sidebarWidth := opts.SidebarWidth
	if sidebarWidth <= 0 {
		sidebarWidth = 28
	}

	ta := textarea.New()
	ta.Placeholder = ComposerPlaceholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = composerLimit
	ta.SetHeight(composerHeight)
	// Enter sends; newlines use the composer's own binding.
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	renderer := markdown.NewRenderer(markdown.DefaultWidth, theme.MarkdownStyle())
	messages := components.NewMessageList(theme, renderer)
	messages.ShowTimestamps = opts.ShowTimestamps

	h := help.New()
	h.ShowAll = true

	events, unsubscribe := opts.Controller.Subscribe(context.Background())

	m := Model{
		ctrl:         opts.Controller,
		health:       opts.Health,
		clipboard:    clip,
		logger:       logger.With("component", "chat"),
		state:        opts.Controller.State(),
		events:       events,
		unsubscribe:  unsubscribe,
		theme:        theme,
		keys:         DefaultKeyMap(),
		width:        80,
		height:       24,
		focus:        FocusComposer,
		header:       components.NewHeader(theme),
		sidebar:      components.NewSidebar(theme),
		messages:     messages,
		welcome:      components.NewWelcome(theme),
		typing:       components.NewTypingIndicator(theme),
		statusBar:    components.NewStatusBar(theme),
		toasts:       components.NewToastManager(),
		composer:     ta,
		viewport:     viewport.New(80, 10),
		help:         h,
		selected:     -1,
		expanded:     make(map[string]bool),
		codeCursor:   make(map[string]int),
		wordWrap:     opts.WordWrap,
		sidebarWidth: sidebarWidth,
		reqTimeout:   opts.RequestTimeout,
		fillPrompts:  opts.FillQuickPrompts,
	}
	m.layout()
	return m
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the last session snapshot the model rendered.
func (m Model) State() session.State {
	return m.state
}

// Focus returns the focused panel.
func (m Model) Focus() Focus {
	return m.focus
}

// ComposerValue returns the text in the composer.
func (m Model) ComposerValue() string {
	return m.composer.Value()
}

// FormOpen reports whether the clinical form is showing.
func (m Model) FormOpen() bool {
	return m.form != nil
}

// Toasts returns the visible toasts, newest first.
func (m Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}

// Close ends the event subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the session, the event pump and the health poll.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		waitForEvent(m.events),
		m.startCmd(),
	}
	if m.health != nil {
		cmds = append(cmds, m.healthCmd())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForEvent blocks on the next session event.
func waitForEvent(ch <-chan session.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

// run executes a blocking controller call off the update loop.
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return actionDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	if m.reqTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.reqTimeout)
}

func (m Model) startCmd() tea.Cmd {
	return m.run("start", m.ctrl.Start)
}

func (m Model) refreshCmd() tea.Cmd {
	return m.run("refresh", m.ctrl.RefreshChats)
}

func (m Model) sendCmd(text string) tea.Cmd {
	return m.run("send", func(ctx context.Context) error {
		return m.ctrl.SendMessage(ctx, text)
	})
}

func (m Model) selectCmd(chatID string) tea.Cmd {
	return m.run("select", func(ctx context.Context) error {
		return m.ctrl.SelectChat(ctx, chatID)
	})
}

func (m Model) deleteCmd(chatID string) tea.Cmd {
	return m.run("delete", func(ctx context.Context) error {
		return m.ctrl.DeleteChat(ctx, chatID)
	})
}

func (m Model) healthCmd() tea.Cmd {
	checker := m.health
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		_, err := checker.Health(ctx)
		return healthMsg{err: err}
	}
}

func healthTickCmd() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg { return healthTickMsg{} })
}
