// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
	"github.com/jeranaias/nutrirag-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar texts.
const (
	SidebarNewChat = "+ Nuevo Chat"
	SidebarHistory = "Historial de Chats"
	SidebarEmpty   = "Sin chats todavía"
)

// linesPerChat is the height of one history entry (title and age).
const linesPerChat = 2

// Sidebar lists the chat history. Row 0 is the "new chat" action and rows
// 1..n are the chats in backend order.
type Sidebar struct {
	chats    []model.Chat
	activeID string
	cursor   int
	offset   int

	Width   int
	Height  int
	Focused bool

	now   func() time.Time
	theme *styles.Theme
}

// NewSidebar creates a new sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{Width: 28, Height: 20, now: time.Now, theme: theme}
}

// SetNow replaces the clock used for relative ages.
func (s *Sidebar) SetNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
	s.clampOffset()
}

// SetChats replaces the history and marks activeID. The cursor stays on the
// same chat when it is still listed.
func (s *Sidebar) SetChats(chats []model.Chat, activeID string) {
	var keep string
	if c, ok := s.SelectedChat(); ok {
		keep = c.ID
	}

	s.chats = chats
	s.activeID = activeID

	if keep != "" {
		s.cursor = 0
		for i, c := range chats {
			if c.ID == keep {
				s.cursor = i + 1
				break
			}
		}
	}
	if s.cursor > len(chats) {
		s.cursor = len(chats)
	}
	s.clampOffset()
}

// Chats returns the listed chats.
func (s *Sidebar) Chats() []model.Chat {
	return s.chats
}

// Cursor returns the highlighted row.
func (s *Sidebar) Cursor() int {
	return s.cursor
}

// MoveUp moves the cursor one row up.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
		s.clampOffset()
	}
}

// MoveDown moves the cursor one row down.
func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.chats) {
		s.cursor++
		s.clampOffset()
	}
}

// NewChatSelected reports whether the cursor is on the "new chat" row.
func (s *Sidebar) NewChatSelected() bool {
	return s.cursor == 0
}

// SelectedChat returns the chat under the cursor.
func (s *Sidebar) SelectedChat() (model.Chat, bool) {
	if s.cursor < 1 || s.cursor > len(s.chats) {
		return model.Chat{}, false
	}
	return s.chats[s.cursor-1], true
}

// visibleChats is how many entries fit below the header rows.
func (s *Sidebar) visibleChats() int {
	n := (s.Height - 3) / linesPerChat
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Sidebar) clampOffset() {
	idx := s.cursor - 1
	if idx < 0 {
		idx = 0
	}
	visible := s.visibleChats()
	if idx < s.offset {
		s.offset = idx
	}
	if idx >= s.offset+visible {
		s.offset = idx - visible + 1
	}
	if limit := len(s.chats) - visible; s.offset > limit {
		s.offset = limit
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	inner := s.Width - 3
	if inner < 8 {
		inner = 8
	}

	var lines []string
	newStyle := s.theme.SidebarNew
	if s.Focused && s.cursor == 0 {
		newStyle = s.theme.SidebarItemSelected.Foreground(styles.Leaf)
	}
	lines = append(lines, newStyle.Render(util.PadRight(SidebarNewChat, inner)))
	lines = append(lines, "")
	lines = append(lines, s.theme.SidebarTitle.Render(util.TruncateWidth(SidebarHistory, inner)))

	if len(s.chats) == 0 {
		lines = append(lines, s.theme.SidebarMeta.Render(SidebarEmpty))
	}

	end := s.offset + s.visibleChats()
	if end > len(s.chats) {
		end = len(s.chats)
	}
	now := s.now()
	for i := s.offset; i < end; i++ {
		chat := s.chats[i]
		title := util.PadRight(util.TruncateWidth(chat.Title, inner), inner)
		age := util.PadRight(util.TruncateWidth(model.RelativeAge(chat.Updated(), now), inner), inner)

		style := s.theme.SidebarItem
		if chat.ID == s.activeID {
			style = s.theme.SidebarItemActive
		}
		if s.Focused && s.cursor == i+1 {
			style = s.theme.SidebarItemSelected
		}
		lines = append(lines, style.Render(title), s.theme.SidebarMeta.Render(age))
	}

	box := s.theme.Sidebar
	if s.Focused {
		box = s.theme.SidebarFocused
	}
	return box.Width(s.Width - 1).Height(s.Height).Render(strings.Join(lines, "\n"))
}
