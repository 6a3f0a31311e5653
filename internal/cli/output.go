// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/nutrirag-tui/internal/markdown"
	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// =============================================================================
// MESSAGE OUTPUT
// =============================================================================

// messagePrinter writes conversation messages. Terminals get rendered
// markdown; pipes get the raw text.
type messagePrinter struct {
	out      io.Writer
	renderer *markdown.Renderer
}

func newMessagePrinter(out io.Writer, theme string) *messagePrinter {
	p := &messagePrinter{out: out}
	if isTerminalWriter(out) && ColorsEnabled(out) {
		p.renderer = markdown.NewRenderer(GetTerminalWidth()-4, theme)
	}
	return p
}

// answer prints an assistant message and its sources.
func (p *messagePrinter) answer(msg model.Message) {
	content := msg.Content
	if p.renderer != nil {
		content = p.renderer.Render(content)
	}
	fmt.Fprintln(p.out, content)
	p.citations(msg.Citations)
}

// message prints one transcript entry with its speaker.
func (p *messagePrinter) message(msg model.Message) {
	name := msg.Role.DisplayName()
	if ts := msg.FormatTime(); ts != "" {
		name += " " + dimColor.Sprint(ts)
	}
	headingColor.Fprintln(p.out, name+":")
	if msg.IsAssistant() {
		p.answer(msg)
	} else {
		fmt.Fprintln(p.out, msg.Content)
	}
	fmt.Fprintln(p.out)
}

func (p *messagePrinter) citations(citations []model.Citation) {
	if len(citations) == 0 {
		return
	}
	fmt.Fprintln(p.out)
	headingColor.Fprintln(p.out, "Fuentes:")
	for _, c := range citations {
		line := "  " + c.Badge()
		if c.Title != "" {
			line += ": " + c.Title
		}
		if c.Year != "" {
			line += " (" + c.Year + ")"
		}
		fmt.Fprintln(p.out, line)
		if c.URL != "" {
			dimColor.Fprintln(p.out, "      "+c.URL)
		}
	}
}

// codeBlocks prints the code blocks of an answer under their ids. Colour
// terminals get chroma highlighting.
func (p *messagePrinter) codeBlocks(blocks []markdown.CodeBlock) {
	for _, cb := range blocks {
		lang := cb.Language
		if lang == "" {
			lang = strings.ToLower(markdown.DetectLanguage(cb.Code))
		}
		label := cb.ID
		if lang != "" {
			label += " (" + lang + ")"
		}
		headingColor.Fprintln(p.out, label+":")
		code := cb.Code
		if p.renderer != nil {
			code = strings.TrimRight(markdown.Highlight(code, lang), "\n")
		}
		fmt.Fprintln(p.out, code)
		fmt.Fprintln(p.out)
	}
}

// lastAnswer returns the newest assistant message.
func lastAnswer(messages []model.Message) (model.Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsAssistant() {
			return messages[i], true
		}
	}
	return model.Message{}, false
}
