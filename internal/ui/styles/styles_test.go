// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme_ForcedNames(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantDark bool
		markdown string
	}{
		{"dark", ThemeDark, true, ThemeDark},
		{"LIGHT", ThemeLight, false, ThemeLight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			theme := NewTheme(tc.name)
			assert.Equal(t, tc.wantName, theme.Name)
			assert.Equal(t, tc.wantDark, theme.IsDark)
			assert.Equal(t, tc.markdown, theme.MarkdownStyle())
		})
	}
}

func TestNewTheme_UnknownIsAuto(t *testing.T) {
	theme := NewTheme("neon")
	assert.Equal(t, ThemeAuto, theme.Name)
	assert.Equal(t, ThemeAuto, theme.MarkdownStyle())
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme(ThemeDark)
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	for _, tc := range tests {
		theme.SetSize(tc.width, 30)
		assert.Equal(t, tc.want, theme.GetLayoutMode(), "width %d", tc.width)
	}
}

func TestSpinnerConfig_Frame(t *testing.T) {
	s := SpinnerConfig{Frames: []string{"a", "b", "c"}, FPS: 10}
	assert.Equal(t, 100*time.Millisecond, s.Duration())
	assert.Equal(t, "a", s.Frame(0))
	assert.Equal(t, "b", s.Frame(150*time.Millisecond))
	assert.Equal(t, "a", s.Frame(300*time.Millisecond))
	assert.Equal(t, "a", s.Frame(-time.Second))

	assert.Equal(t, "", SpinnerConfig{}.Frame(time.Second))
	assert.Equal(t, time.Second, SpinnerConfig{}.Duration())
}

func TestRenderHelpers_IncludeIndicators(t *testing.T) {
	assert.Contains(t, RenderSuccess("listo"), "[OK] listo")
	assert.Contains(t, RenderError("fallo"), "[X] fallo")
	assert.Contains(t, RenderWarning("ojo"), "[!] ojo")
	assert.Contains(t, RenderInfo("dato"), "[i] dato")
	assert.Contains(t, RenderLink("https://fao.org"), "https://fao.org")
}

func TestRenderTreeLine(t *testing.T) {
	assert.Equal(t, "+- ", RenderTreeLine(false))
	assert.Equal(t, "`- ", RenderTreeLine(true))
	assert.Equal(t, strings.Repeat("-", 5), RenderRule(5))
	assert.Empty(t, RenderRule(0))
}
