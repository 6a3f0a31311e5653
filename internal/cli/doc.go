// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the nutrirag command line.
//
// Running nutrirag with no subcommand opens the full-screen chat. The
// subcommands cover the same session from a plain terminal or a script.
//
// # Commands
//
//   - chat: line-mode conversation with history (liner)
//   - ask: one question, answer and sources on stdout
//   - chats list|show|delete|export: saved conversations, export to md/json/html
//   - profile show|set|clear: the local clinical profile
//   - status: backend health and local state
//   - config show|get|set|path: configuration file
//   - mock-server: in-memory backend for development
//   - version: build information
//
// Global flags are --config, --api-url, --log-level and --json. Subcommands
// log warnings to stderr; the chat screen logs to ~/.nutrirag/nutrirag.log.
//
// # Usage
//
//	func main() {
//		os.Exit(cli.Execute())
//	}
//
// Exit codes follow the error kind: 2 for usage, 3 for configuration,
// 5 when the backend cannot be reached and 7 when a chat does not exist.
package cli
