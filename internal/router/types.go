// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "github.com/jeranaias/nutrirag-tui/internal/model"

// =============================================================================
// MODE
// =============================================================================

// Mode is how the backend should treat a query.
type Mode int

const (
	// ModeGeneral answers from the guides alone.
	ModeGeneral Mode = iota
	// ModeClinical personalises the answer with the user's clinical profile.
	ModeClinical
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeClinical:
		return "clinical"
	default:
		return "general"
	}
}

// ParseMode converts a wire name back to a Mode. Unknown names are general.
func ParseMode(s string) Mode {
	if s == "clinical" {
		return ModeClinical
	}
	return ModeGeneral
}

// =============================================================================
// DECISION
// =============================================================================

// Decision is the outcome of routing a single query.
type Decision struct {
	Mode Mode

	// ClinicalData is the profile to attach. Nil unless Mode is ModeClinical
	// and a profile is loaded.
	ClinicalData *model.ClinicalData
}

// IsClinical reports whether the decision is clinical.
func (d Decision) IsClinical() bool {
	return d.Mode == ModeClinical
}
