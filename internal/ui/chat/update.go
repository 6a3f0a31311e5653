// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrirag-tui/internal/markdown"
	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/router"
	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/ui/components"
	"github.com/jeranaias/nutrirag-tui/internal/ui/profile"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m.handleEvent(msg.event)

	case eventsClosedMsg:
		m.events = nil
		return m, nil

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case healthMsg:
		return m.handleHealth(msg)

	case healthTickMsg:
		if m.health == nil {
			return m, nil
		}
		return m, m.healthCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		if !m.toasts.Tick(time.Now()) {
			m.layout()
			return m, nil
		}
		m.layout()
		return m, components.ToastTickCmd()

	case profile.SubmitMsg:
		if err := m.ctrl.SaveProfile(msg.Data); err != nil {
			m.logger.Warn("profile rejected", "error", err)
			return m, m.addToast(components.ToastKindError, "", err.Error())
		}
		m.form = nil
		return m, nil

	case profile.CancelMsg:
		m.form = nil
		if m.state.NeedsProfile {
			m.ctrl.DismissProfilePrompt()
		}
		return m, nil

	case profile.ClearMsg:
		m.form = nil
		m.ctrl.ClearProfile()
		return m, nil
	}

	// Blink and other component messages.
	var cmd tea.Cmd
	if m.form != nil {
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// =============================================================================
// SESSION EVENTS
// =============================================================================

func (m Model) handleEvent(ev session.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForEvent(m.events)}

	switch ev.Kind {
	case session.EventState:
		cmds = append(cmds, m.applyState(ev.State))
	case session.EventNotice:
		cmds = append(cmds, m.addNotice(ev.Notice))
	}
	return m, tea.Batch(cmds...)
}

// applyState adopts a session snapshot.
func (m *Model) applyState(s session.State) tea.Cmd {
	prev := m.state
	m.state = s

	if s.CurrentChatID != prev.CurrentChatID {
		m.selected = -1
		m.expanded = make(map[string]bool)
		m.codeCursor = make(map[string]int)
	}
	if m.selected >= len(s.Messages) {
		m.selected = len(s.Messages) - 1
	}

	m.sidebar.SetChats(s.Chats, s.CurrentChatID)
	m.header.SetHasProfile(s.Profile != nil)

	var cmds []tea.Cmd
	cmds = append(cmds, m.typing.SetStatus(s.IsTyping, s.TypingStatus))

	if s.NeedsProfile && !m.profilePrompt && m.form == nil {
		m.profilePrompt = true
		cmds = append(cmds, m.openForm())
	}

	grew := len(s.Messages) > len(prev.Messages) || s.IsTyping != prev.IsTyping
	m.refreshViewport()
	if grew || s.CurrentChatID != prev.CurrentChatID {
		m.viewport.GotoBottom()
	}
	return tea.Batch(cmds...)
}

// addNotice shows a session notice as a toast. Notices titled "Error" show
// only their description.
func (m *Model) addNotice(n session.Notice) tea.Cmd {
	title := n.Title
	if title == "Error" {
		title = ""
	}
	kind := components.ToastKindInfo
	switch n.Kind {
	case session.NoticeError:
		kind = components.ToastKindError
	case session.NoticeSuccess:
		kind = components.ToastKindSuccess
	}
	return m.addToast(kind, title, n.Description)
}

// addToast queues a toast and starts the expiry ticker when it is the first.
func (m *Model) addToast(kind components.ToastKind, title, message string) tea.Cmd {
	first := !m.toasts.HasToasts()
	m.toasts.Add(components.NewToast(kind, title, message))
	m.layout()
	if first {
		return components.ToastTickCmd()
	}
	return nil
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		return m, nil
	}
	switch {
	case errors.Is(msg.err, session.ErrStale):
		m.logger.Debug("result dropped after a chat switch", "op", msg.op)
	case errors.Is(msg.err, session.ErrBusy), errors.Is(msg.err, session.ErrEmptyMessage):
		m.logger.Debug("send ignored", "error", msg.err)
	case msg.op == "start" || msg.op == "refresh":
		// List failures carry no notice of their own.
		m.statusBar.Connection = components.ConnectionOffline
		m.logger.Warn("chat list unavailable", "op", msg.op, "error", msg.err)
	default:
		m.logger.Debug("action failed", "op", msg.op, "error", msg.err)
	}
	return m, nil
}

func (m Model) handleHealth(msg healthMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.statusBar.Connection != components.ConnectionOffline {
			m.logger.Warn("backend unreachable", "error", msg.err)
		}
		m.statusBar.Connection = components.ConnectionOffline
	} else {
		m.statusBar.Connection = components.ConnectionOnline
	}
	return m, healthTickCmd()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus(m.nextFocus(1))
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus(m.nextFocus(-1))
		return m, nil
	case key.Matches(msg, m.keys.NewChat):
		m.ctrl.NewChat()
		m.setFocus(FocusComposer)
		return m, nil
	case key.Matches(msg, m.keys.Profile):
		return m, m.openForm()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.ToggleDrawer):
		m.drawerOpen = !m.drawerOpen
		if !m.sidebarVisible() && m.focus == FocusSidebar {
			m.setFocus(FocusComposer)
		}
		m.layout()
		return m, nil
	}

	switch m.focus {
	case FocusTranscript:
		return m.handleTranscriptKey(msg)
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	default:
		return m.handleComposerKey(msg)
	}
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	emptyState := len(m.state.Messages) == 0 && !m.state.Loading
	emptyComposer := strings.TrimSpace(m.composer.Value()) == ""

	if emptyState && emptyComposer {
		switch msg.String() {
		case "up":
			m.welcome.MoveUp()
			return m, nil
		case "down":
			m.welcome.MoveDown()
			return m, nil
		case "alt+1", "alt+2":
			if p, ok := m.welcome.Prompt(int(msg.String()[4] - '0')); ok {
				return m.quickPrompt(p)
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		if emptyState && emptyComposer {
			return m.quickPrompt(m.welcome.Selected())
		}
		return m.submit()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	m.updateMode()
	return m, cmd
}

// quickPrompt sends a welcome prompt, or only fills the composer when
// configured to.
func (m Model) quickPrompt(text string) (tea.Model, tea.Cmd) {
	m.fillComposer(text)
	if m.fillPrompts {
		return m, nil
	}
	return m.submit()
}

// submit sends the composer text when the session accepts a new turn.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSend() {
		return m, nil
	}
	text := strings.TrimSpace(m.composer.Value())
	if text == "" {
		return m, nil
	}
	m.composer.Reset()
	m.updateMode()
	m.selected = -1
	return m, m.sendCmd(text)
}

func (m *Model) fillComposer(text string) {
	m.composer.SetValue(text)
	m.composer.CursorEnd()
	m.updateMode()
}

// updateMode previews in the status bar how the composer text would be routed.
func (m *Model) updateMode() {
	m.statusBar.Clinical = router.Classify(m.composer.Value()) == router.ModeClinical
}

func (m Model) handleTranscriptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.setFocus(FocusComposer)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.CopyMessage):
		return m.copySelected()
	case key.Matches(msg, m.keys.CopyCode):
		return m.copyCode()
	case key.Matches(msg, m.keys.Citations):
		if sel, ok := m.selectedMessage(); ok && sel.HasCitations() {
			m.expanded[sel.ID] = !m.expanded[sel.ID]
			m.refreshViewport()
			m.scrollToSelected()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.confirmDelete = ""
		m.setFocus(FocusComposer)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.confirmDelete = ""
		m.sidebar.MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.confirmDelete = ""
		m.sidebar.MoveDown()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.confirmDelete = ""
		if m.sidebar.NewChatSelected() {
			m.ctrl.NewChat()
			m.setFocus(FocusComposer)
			return m, nil
		}
		chat, ok := m.sidebar.SelectedChat()
		if !ok {
			return m, nil
		}
		m.setFocus(FocusComposer)
		if chat.ID == m.state.CurrentChatID {
			return m, nil
		}
		return m, m.selectCmd(chat.ID)
	case key.Matches(msg, m.keys.Delete):
		chat, ok := m.sidebar.SelectedChat()
		if !ok {
			return m, nil
		}
		if m.confirmDelete != chat.ID {
			m.confirmDelete = chat.ID
			return m, m.addToast(components.ToastKindInfo, "", ConfirmDeleteText)
		}
		m.confirmDelete = ""
		return m, m.deleteCmd(chat.ID)
	}
	return m, nil
}

// =============================================================================
// FOCUS
// =============================================================================

func (m Model) nextFocus(delta int) Focus {
	order := []Focus{FocusComposer, FocusTranscript}
	if m.sidebarVisible() {
		order = append(order, FocusSidebar)
	}
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
		}
	}
	n := len(order)
	return order[((idx+delta)%n+n)%n]
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.Focused = f == FocusSidebar
	if f == FocusComposer {
		m.composer.Focus()
	} else {
		m.composer.Blur()
	}
	if f == FocusTranscript {
		if m.selected < 0 && len(m.state.Messages) > 0 {
			m.selected = len(m.state.Messages) - 1
		}
	} else {
		m.selected = -1
	}
	m.refreshViewport()
	if f == FocusTranscript {
		m.scrollToSelected()
	}
}

// =============================================================================
// TRANSCRIPT SELECTION AND COPY
// =============================================================================

func (m *Model) moveSelection(delta int) {
	n := len(m.state.Messages)
	if n == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	m.selected = next
	m.refreshViewport()
	m.scrollToSelected()
}

func (m Model) selectedMessage() (model.Message, bool) {
	if m.selected < 0 || m.selected >= len(m.state.Messages) {
		return model.Message{}, false
	}
	return m.state.Messages[m.selected], true
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	msg, ok := m.selectedMessage()
	if !ok {
		return m, nil
	}
	if err := m.clipboard(msg.Content); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return m, m.addToast(components.ToastKindError, "", components.CopyFailedMessage)
	}
	return m, m.addToast(components.ToastKindSuccess, components.CopiedMessage, "")
}

// copyCode copies the next code block of the selected message, cycling
// through its blocks on repeated presses.
func (m Model) copyCode() (tea.Model, tea.Cmd) {
	msg, ok := m.selectedMessage()
	if !ok {
		return m, nil
	}
	blocks := markdown.Extract(msg.Content)
	if len(blocks) == 0 {
		return m, nil
	}
	idx := m.codeCursor[msg.ID] % len(blocks)
	m.codeCursor[msg.ID] = idx + 1

	if err := m.clipboard(blocks[idx].Code); err != nil {
		m.logger.Warn("clipboard write failed", "block", blocks[idx].ID, "error", err)
		return m, m.addToast(components.ToastKindError, "", components.CodeCopyFailedMessage)
	}
	return m, m.addToast(components.ToastKindSuccess, components.CodeCopiedMessage, "")
}

// =============================================================================
// PROFILE FORM
// =============================================================================

func (m *Model) openForm() tea.Cmd {
	m.form = profile.New(m.theme, m.state.Profile)
	m.form.SetWidth(m.formWidth())
	return m.form.Init()
}
