// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/atotto/clipboard"

// Copy feedback texts.
const (
	CopiedMessage         = "Copiado al portapapeles"
	CopyFailedMessage     = "No se pudo copiar al portapapeles"
	CodeCopiedMessage     = "Código copiado al portapapeles"
	CodeCopyFailedMessage = "Error al copiar el código"
)

// ClipboardWriter writes text to the system clipboard.
type ClipboardWriter func(text string) error

// SystemClipboard is the ClipboardWriter backed by the OS clipboard.
func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}
