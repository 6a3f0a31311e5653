// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the wrap width used when none is given.
const DefaultWidth = 80

// Renderer renders markdown with glamour. It is safe for concurrent use.
// A Renderer that failed to initialise returns content unchanged.
type Renderer struct {
	mu    sync.Mutex
	width int
	theme string
	term  *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping at width. Theme is "auto", "dark"
// or "light".
func NewRenderer(width int, theme string) *Renderer {
	r := &Renderer{theme: strings.ToLower(theme)}
	r.setWidth(width)
	return r
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

// SetWidth rebuilds the renderer for a new width. Same-width calls are free.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 {
		width = DefaultWidth
	}
	if width == r.width && r.term != nil {
		return
	}
	r.setWidth(width)
}

func (r *Renderer) setWidth(width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	r.width = width

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch r.theme {
	case "dark", "light":
		opts = append(opts, glamour.WithStandardStyle(r.theme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		r.term = nil
		return
	}
	r.term = term
}

// Render renders content. Rendering errors fall back to the raw text.
func (r *Renderer) Render(content string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil || strings.TrimSpace(content) == "" {
		return content
	}
	out, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
