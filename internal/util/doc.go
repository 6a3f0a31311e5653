// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by storage, config and the UI.
//
// # Key Functions
//
// File Operations:
//   - WriteFileAtomic: Crash-safe file writing with fsync and rename
//
// Display Width:
//   - TruncateWidth: Cut a string to a terminal column budget with "..."
//   - PadRight: Pad a string with spaces to a column width
//   - Width: Display width of a string, wide runes counted as two
//
// # Usage
//
//	title := util.TruncateWidth(chat.Title, 24)
//	err := util.WriteFileAtomic(path, data, 0600)
package util
