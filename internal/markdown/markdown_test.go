// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answer = "Plan de ejemplo:\n\n" +
	"```json\n{\"desayuno\": \"avena\"}\n```\n\n" +
	"Texto intermedio.\n\n" +
	"    porciones = 5\n\n" +
	"```\nsin lenguaje\n```\n"

func TestExtract_PositionalIDs(t *testing.T) {
	blocks := Extract(answer)
	require.Len(t, blocks, 3)

	assert.Equal(t, "code-0", blocks[0].ID)
	assert.Equal(t, "json", blocks[0].Language)
	assert.Equal(t, `{"desayuno": "avena"}`, blocks[0].Code)

	assert.Equal(t, "code-1", blocks[1].ID)
	assert.Equal(t, "", blocks[1].Language)
	assert.Equal(t, "porciones = 5", blocks[1].Code)

	assert.Equal(t, "code-2", blocks[2].ID)
	assert.Equal(t, "sin lenguaje", blocks[2].Code)
}

func TestExtract_Stable(t *testing.T) {
	assert.Equal(t, Extract(answer), Extract(answer))
}

func TestExtract_NoBlocks(t *testing.T) {
	assert.Empty(t, Extract("Come **frutas** y verduras."))
	assert.Empty(t, Extract(""))
}

func TestFind(t *testing.T) {
	cb, ok := Find(answer, "code-2")
	require.True(t, ok)
	assert.Equal(t, "sin lenguaje", cb.Code)

	_, ok = Find(answer, "code-9")
	assert.False(t, ok)
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(60, "dark")
	out := r.Render("# Título\n\nCome **frutas**.")
	assert.Contains(t, out, "Título")
	assert.Contains(t, out, "frutas")
	assert.NotContains(t, out, "**")

	assert.Equal(t, "", r.Render(""))
}

func TestRenderer_SetWidth(t *testing.T) {
	r := NewRenderer(0, "light")
	assert.Equal(t, DefaultWidth, r.Width())

	r.SetWidth(40)
	assert.Equal(t, 40, r.Width())

	out := r.Render(strings.Repeat("palabra ", 30))
	assert.Greater(t, strings.Count(out, "\n"), 2, "long text wraps")
}

func TestHighlight(t *testing.T) {
	code := "func main() {}"
	out := Highlight(code, "go")
	assert.Contains(t, out, "func")
	assert.Contains(t, out, "\x1b[", "terminal escape codes are emitted")

	assert.NotEmpty(t, Highlight("plain words", "no-such-lang"))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "Bash", DetectLanguage("#!/bin/bash\necho hola"))
}
