// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// ErrEmptyTranscript is returned when a chat has no messages to export.
var ErrEmptyTranscript = errors.New("chat has no messages")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is one chat as it is exported.
type Transcript struct {
	ChatID   string
	Title    string
	Messages []model.Message
}

// DisplayTitle returns the chat title on one line, falling back to the
// first question.
func (t *Transcript) DisplayTitle() string {
	if title := strings.Join(strings.Fields(t.Title), " "); title != "" {
		return title
	}
	for _, msg := range t.Messages {
		if msg.IsUser() {
			return model.ChatTitle(strings.Join(strings.Fields(msg.Content), " "))
		}
	}
	return "Chat de NutriRAG"
}

func (t *Transcript) validate() error {
	if t == nil {
		return errors.New("transcript is nil")
	}
	if len(t.Messages) == 0 {
		return ErrEmptyTranscript
	}
	return nil
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts a transcript to the target format.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// Options configures export behavior.
type Options struct {
	// IncludeTimestamps adds the time to each message heading.
	IncludeTimestamps bool

	// IncludeSources lists the citations under each answer.
	IncludeSources bool

	// Theme for HTML export ("light" or "dark").
	Theme string

	// Now stamps the export. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeTimestamps: true,
		IncludeSources:    true,
		Theme:             "dark",
		Now:               time.Now,
	}
}

func (o *Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Formats lists the accepted format names.
var Formats = []string{"md", "json", "html"}

// ForFormat returns the exporter for a format name.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a transcript and writes it to path. An empty path or
// a directory gets a generated file name. Returns the written path.
func ExportToFile(t *Transcript, exporter Exporter, path string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, Filename(t, exporter, time.Now()))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Filename builds the default file name for an exported transcript.
func Filename(t *Transcript, exporter Exporter, at time.Time) string {
	return fmt.Sprintf("chat_%s_%s%s",
		sanitizeFilename(t.DisplayTitle()),
		at.Format("20060102_150405"),
		exporter.FileExtension(),
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// unsafeFilenameRunes are replaced with '-' on every platform.
const unsafeFilenameRunes = `/\:*?¿"<>|`

// sanitizeFilename turns a chat title into a portable file name stem of at
// most 50 runes.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	stem := strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return '_'
		case r < 32 || r == 127 || strings.ContainsRune(unsafeFilenameRunes, r):
			return '-'
		default:
			return r
		}
	}, string(runes))
	if stem == "" {
		return "chat"
	}
	return stem
}

// formatTimestamp formats a timestamp for metadata lines.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for message headings.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04")
}

// sourceLine is the plain-text form of a citation.
func sourceLine(c model.Citation) string {
	line := c.Badge()
	if c.Title != "" {
		line += ": " + c.Title
	}
	if c.Year != "" {
		line += " (" + c.Year + ")"
	}
	return line
}
