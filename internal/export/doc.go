// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes saved NutriRAG chats to files.
//
// # Supported Formats
//
//   - Markdown: frontmatter, messages and numbered sources
//   - JSON: the transcript as data
//   - HTML: a standalone page with embedded CSS
//
// # Usage
//
//	exporter, err := export.ForFormat("md", export.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(transcript, exporter, "")
package export
