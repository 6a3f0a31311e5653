// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// converter renders message markdown. Raw HTML in messages is dropped
// because goldmark runs without the unsafe option.
var converter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a standalone HTML page.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a transcript to HTML.
func (e *HTMLExporter) Export(t *Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	title := html.EscapeString(t.DisplayTitle())
	exported := e.options.now()

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"es\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", title)
	sb.WriteString("    <meta name=\"generator\" content=\"nutrirag\">\n")
	fmt.Fprintf(&sb, "    <meta name=\"date\" content=\"%s\">\n", exported.Format(time.RFC3339))
	sb.WriteString(stylesheet)
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body class=\"%s\">\n", e.themeClass())
	sb.WriteString("    <main class=\"container\">\n")
	sb.WriteString("        <header class=\"header\">\n")
	fmt.Fprintf(&sb, "            <h1>%s</h1>\n", title)
	fmt.Fprintf(&sb, "            <p class=\"metadata\">%d mensajes · exportado el %s</p>\n",
		len(t.Messages), formatTimestamp(exported))
	sb.WriteString("        </header>\n")

	for _, msg := range t.Messages {
		content, err := e.renderContent(msg.Content)
		if err != nil {
			return nil, fmt.Errorf("render message %s: %w", msg.ID, err)
		}
		e.renderMessage(&sb, msg, content)
	}

	sb.WriteString("        <footer class=\"footer\">Exportado desde NutriRAG</footer>\n")
	sb.WriteString("    </main>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) themeClass() string {
	if e.options.Theme == "light" {
		return "light"
	}
	return "dark"
}

func (e *HTMLExporter) renderContent(content string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(strings.TrimSpace(content)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *HTMLExporter) renderMessage(sb *strings.Builder, msg model.Message, content string) {
	roleClass := "user"
	if msg.IsAssistant() {
		roleClass = "assistant"
	}
	fmt.Fprintf(sb, "        <section class=\"message %s-message\">\n", roleClass)
	sb.WriteString("            <div class=\"message-header\">\n")
	fmt.Fprintf(sb, "                <span class=\"role-label\">%s</span>\n", html.EscapeString(msg.Role.DisplayName()))
	if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
		fmt.Fprintf(sb, "                <span class=\"timestamp\">%s</span>\n", formatShortTimestamp(msg.Timestamp))
	}
	sb.WriteString("            </div>\n")
	sb.WriteString("            <div class=\"message-content\">\n")
	sb.WriteString(content)
	sb.WriteString("            </div>\n")

	if e.options.IncludeSources && msg.HasCitations() {
		sb.WriteString("            <ol class=\"sources\">\n")
		for _, c := range msg.Citations {
			line := html.EscapeString(sourceLine(c))
			if c.URL != "" {
				line = fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(c.URL), line)
			}
			fmt.Fprintf(sb, "                <li>%s</li>\n", line)
		}
		sb.WriteString("            </ol>\n")
	}

	sb.WriteString("        </section>\n")
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const stylesheet = `    <style>
        :root { --accent: #2e9e6b; }
        body.dark { --bg: #1a1b26; --fg: #d5d6db; --card: #24283b; --muted: #8b90a8; }
        body.light { --bg: #f7f7f5; --fg: #1f2328; --card: #ffffff; --muted: #6a6f7a; }
        * { box-sizing: border-box; }
        body {
            margin: 0;
            background: var(--bg);
            color: var(--fg);
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            line-height: 1.6;
        }
        .container { max-width: 860px; margin: 0 auto; padding: 2rem 1rem; }
        .header h1 { margin: 0 0 .25rem; color: var(--accent); }
        .metadata, .timestamp, .footer { color: var(--muted); font-size: .85rem; }
        .message { background: var(--card); border-radius: 8px; padding: 1rem 1.25rem; margin: 1rem 0; }
        .user-message { border-left: 4px solid var(--muted); }
        .assistant-message { border-left: 4px solid var(--accent); }
        .message-header { display: flex; justify-content: space-between; margin-bottom: .5rem; }
        .role-label { font-weight: 600; }
        .message-content pre { overflow-x: auto; padding: .75rem; background: var(--bg); border-radius: 6px; }
        .sources { margin: .75rem 0 0; padding-left: 1.25rem; font-size: .9rem; }
        .sources a { color: var(--accent); }
        .footer { text-align: center; margin-top: 2rem; }
    </style>
`
