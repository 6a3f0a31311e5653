// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// ============================================================================
// CLASSIFICATION FUNCTIONS
// ============================================================================

// ClinicalKeywords are the lower-case, NFC-normalised terms that mark a query
// as clinical. Order matters only for MatchedKeywords output.
var ClinicalKeywords = []string{
	"diabetes",
	"hipertensión",
	"colesterol",
	"peso",
	"dieta",
	"nutrición",
	"calorías",
	"imc",
	"obesidad",
	"adelgazar",
	"engordar",
	"enfermedad",
	"condición",
	"alergia",
	"medicamento",
}

// normalize lower-cases and NFC-normalises a query so that accented
// keywords match regardless of how the text was composed.
// A Caser is stateful, so one is built per call.
func normalize(query string) string {
	return cases.Lower(language.Spanish).String(norm.NFC.String(query))
}

// Classify returns ModeClinical if any clinical keyword is a substring of the
// lower-cased query, and ModeGeneral otherwise. An empty query is general.
func Classify(query string) Mode {
	if query == "" {
		return ModeGeneral
	}
	q := normalize(query)
	for _, kw := range ClinicalKeywords {
		if strings.Contains(q, kw) {
			return ModeClinical
		}
	}
	return ModeGeneral
}

// MatchedKeywords returns every clinical keyword found in the query, in
// keyword-list order.
func MatchedKeywords(query string) []string {
	if query == "" {
		return nil
	}
	q := normalize(query)
	var matched []string
	for _, kw := range ClinicalKeywords {
		if strings.Contains(q, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Decide classifies the query and picks the clinical payload to send.
// The profile is attached only to clinical queries; a nil profile is never
// attached.
func Decide(query string, profile *model.ClinicalData) Decision {
	mode := Classify(query)
	if mode != ModeClinical || profile == nil {
		return Decision{Mode: mode}
	}
	data := profile.Clone()
	return Decision{Mode: mode, ClinicalData: &data}
}
