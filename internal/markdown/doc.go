// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders assistant answers for the terminal.
//
// # Key Types
//
//   - Renderer: glamour renderer bound to a width and theme
//   - CodeBlock: a code block found in an answer, with a positional id
//
// Code blocks are numbered "code-0", "code-1", ... in document order, so the
// same answer always yields the same ids. The UI binds copy actions to them.
//
// # Usage
//
//	r := markdown.NewRenderer(80, "auto")
//	out := r.Render(answer)
//	for _, cb := range markdown.Extract(answer) {
//	    fmt.Println(cb.ID, cb.Language)
//	}
package markdown
