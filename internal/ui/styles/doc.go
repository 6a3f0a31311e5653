// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the nutrirag TUI.

All colors use Lip Gloss AdaptiveColor so the same palette works on light and
dark terminals.

# Color System (colors.go)

  - Leaf - Brand green for the header, user messages and focus rings
  - Teal - Citations and links
  - Citrus - Quick prompts and selected messages
  - Rose, Amber, Emerald, Sky - Error, warning, success and info toasts

# Theme System (theme.go)

NewTheme takes the [ui] theme setting. "dark" and "light" force the
background used by adaptive colors; "auto" asks the terminal through termenv:

	theme := styles.NewTheme(cfg.UI.Theme)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// hide the sidebar
	}

# Animation System (animations.go)

SpinnerConfig frames back the typing indicator:

	frame := styles.DotsSpinner.Frame(time.Since(start))
*/
package styles
