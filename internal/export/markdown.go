// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown with YAML frontmatter.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	exported := e.options.now()

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", escapeYAML(t.DisplayTitle()))
	if t.ChatID != "" {
		fmt.Fprintf(&sb, "chat_id: %s\n", escapeYAML(t.ChatID))
	}
	fmt.Fprintf(&sb, "exported: %s\n", exported.Format(time.RFC3339))
	fmt.Fprintf(&sb, "messages: %d\n", len(t.Messages))
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(t.DisplayTitle()))

	for i, msg := range t.Messages {
		if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", msg.Role.DisplayName(), formatShortTimestamp(msg.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", msg.Role.DisplayName())
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if e.options.IncludeSources && msg.HasCitations() {
			sb.WriteString(e.formatSources(msg.Citations))
			sb.WriteString("\n")
		}

		if i < len(t.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exportado desde NutriRAG el %s*\n", formatTimestamp(exported))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

func (e *MarkdownExporter) formatSources(citations []model.Citation) string {
	var sb strings.Builder
	sb.WriteString("**Fuentes**\n\n")
	for _, c := range citations {
		line := escapeMarkdown(sourceLine(c))
		if c.URL != "" {
			line += " <" + c.URL + ">"
		}
		fmt.Fprintf(&sb, "- %s\n", line)
	}
	return sb.String()
}

// =============================================================================
// ESCAPING
// =============================================================================

// markdownEscaper escapes characters that would break headings and list items.
var markdownEscaper = strings.NewReplacer(
	"#", "\\#",
	"*", "\\*",
	"_", "\\_",
	"[", "\\[",
	"]", "\\]",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// yamlQuoter escapes a value placed inside double quotes.
var yamlQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// escapeYAML quotes a frontmatter value when it holds special characters.
func escapeYAML(s string) string {
	plain := !strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\¿?") &&
		strings.TrimSpace(s) == s
	if plain {
		return s
	}
	return `"` + yamlQuoter.Replace(s) + `"`
}
