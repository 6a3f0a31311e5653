// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CITATION TESTS
// =============================================================================

func TestCitationsFromSources_IndexBased(t *testing.T) {
	sources := []Source{
		{Title: "A", Organization: "FAO", Similarity: "0.9"},
		{Title: "B", Organization: "OPS", Similarity: "0.8"},
	}

	citations := CitationsFromSources(sources)
	require.Len(t, citations, 2)

	assert.Equal(t, "cite-0", citations[0].ID)
	assert.Equal(t, "cite-1", citations[1].ID)
	assert.Equal(t, "[1]", citations[0].Label)
	assert.Equal(t, "[2]", citations[1].Label)
	assert.Equal(t, "Similitud: 0.9", citations[0].Excerpt)
	assert.Equal(t, "Similitud: 0.8", citations[1].Excerpt)
	assert.Equal(t, "FAO", citations[0].Organization)
	assert.Equal(t, "B", citations[1].Title)
}

func TestCitationFromSource_Fields(t *testing.T) {
	year := 2022
	c := CitationFromSource(4, Source{
		Title:        "Guías alimentarias",
		Organization: "FAO",
		Year:         &year,
		Author:       "FAO",
		Link:         "https://www.fao.org",
		Similarity:   "87.5%",
	})

	assert.Equal(t, Citation{
		ID:           "cite-4",
		Label:        "[5]",
		Organization: "FAO",
		Year:         "2022",
		Title:        "Guías alimentarias",
		URL:          "https://www.fao.org",
		Excerpt:      "Similitud: 87.5%",
	}, c)
	assert.Equal(t, "[5] FAO", c.Badge())
}

func TestCitationFromSource_MissingYear(t *testing.T) {
	c := CitationFromSource(0, Source{Title: "T", Organization: "OPS", Similarity: "1"})
	assert.Equal(t, "", c.Year)
	assert.Equal(t, "", c.URL)
}

func TestCitationsFromSources_Empty(t *testing.T) {
	assert.Nil(t, CitationsFromSources(nil))
	assert.Nil(t, CitationsFromSources([]Source{}))
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChatTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"exactly fifty", strings.Repeat("b", 50), strings.Repeat("b", 50)},
		{"sixty", strings.Repeat("c", 60), strings.Repeat("c", 50) + "..."},
		{"multibyte", strings.Repeat("ñ", 51), strings.Repeat("ñ", 50) + "..."},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChatTitle(tc.input); got != tc.want {
				t.Errorf("ChatTitle() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-05-01 10:30:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01T10:30:00.5", time.Date(2024, 5, 1, 10, 30, 0, 500000000, time.UTC)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}

	for _, tc := range tests {
		got := ParseTimestamp(tc.input)
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestRelativeAge(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "ahora"},
		{5 * time.Minute, "5 min"},
		{90 * time.Minute, "1 hora"},
		{2 * time.Hour, "2 horas"},
		{30 * time.Hour, "Ayer"},
		{72 * time.Hour, "3 días"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, RelativeAge(now.Add(-tc.ago), now), "ago=%s", tc.ago)
	}
	assert.Equal(t, "", RelativeAge(time.Time{}, now))
}

// =============================================================================
// CLINICAL DATA TESTS
// =============================================================================

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestClinicalData_Validate(t *testing.T) {
	tests := []struct {
		name   string
		data   ClinicalData
		fields []string
	}{
		{"empty is valid", ClinicalData{}, nil},
		{"full valid", ClinicalData{
			Age: intPtr(30), Gender: GenderFemale, Weight: floatPtr(62.5), Height: floatPtr(165),
			DietType: DietVegan, ActivityLevel: ActivityVeryActive,
		}, nil},
		{"age zero", ClinicalData{Age: intPtr(0)}, []string{"age"}},
		{"age 150", ClinicalData{Age: intPtr(150)}, []string{"age"}},
		{"age 149", ClinicalData{Age: intPtr(149)}, nil},
		{"negative weight", ClinicalData{Weight: floatPtr(-1)}, []string{"weight"}},
		{"zero height", ClinicalData{Height: floatPtr(0)}, []string{"height"}},
		{"bad enums", ClinicalData{Gender: "x", DietType: "paleo", ActivityLevel: "extreme"},
			[]string{"gender", "activity_level", "diet_type"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.data.Validate()
			if tc.fields == nil {
				assert.NoError(t, err)
				return
			}
			verrs, ok := AsValidationErrors(err)
			require.True(t, ok)
			require.Len(t, verrs, len(tc.fields))
			for i, f := range tc.fields {
				assert.Equal(t, f, verrs[i].Field)
			}
		})
	}
}

func TestValidationErrors_Messages(t *testing.T) {
	err := ClinicalData{Age: intPtr(200), Weight: floatPtr(0)}.Validate()
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)

	assert.Equal(t, "La edad debe ser un número entre 1 y 149.", verrs.For("age"))
	assert.Equal(t, "El peso debe ser un número mayor a 0.", verrs.For("weight"))
	assert.Equal(t, "", verrs.For("height"))
	assert.Contains(t, err.Error(), "; ")
}

func TestClinicalForm_Parse(t *testing.T) {
	form := ClinicalForm{
		Age:           " 42 ",
		Gender:        "male",
		Weight:        "80.5",
		Height:        "178",
		Conditions:    "diabetes, hipertensión, ,",
		Allergies:     "",
		Medications:   "metformina",
		DietType:      "omnivore",
		ActivityLevel: "moderate",
	}

	d, err := form.Parse()
	require.NoError(t, err)
	assert.Equal(t, 42, *d.Age)
	assert.Equal(t, 80.5, *d.Weight)
	assert.Equal(t, []string{"diabetes", "hipertensión"}, d.Conditions)
	assert.Nil(t, d.Allergies)
	assert.Equal(t, []string{"metformina"}, d.Medications)

	back := FormFromData(d)
	assert.Equal(t, "42", back.Age)
	assert.Equal(t, "80.5", back.Weight)
	assert.Equal(t, "diabetes, hipertensión", back.Conditions)
}

func TestClinicalForm_ParseNonNumeric(t *testing.T) {
	_, err := ClinicalForm{Age: "treinta", Height: "alto", Gender: "robot"}.Parse()
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)

	assert.Equal(t, MsgInvalidAge, verrs.For("age"))
	assert.Equal(t, MsgInvalidHeight, verrs.For("height"))
	assert.Equal(t, MsgInvalidGender, verrs.For("gender"))
	assert.Len(t, verrs, 3)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, ParseList(""))
	assert.Nil(t, ParseList(" , ,"))
	assert.Equal(t, []string{"nueces", "lácteos"}, ParseList("nueces,  lácteos "))
}

func TestClinicalData_JSONOmitsAbsent(t *testing.T) {
	data, err := json.Marshal(ClinicalData{Age: intPtr(30), DietType: DietKeto})
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":30,"diet_type":"keto"}`, string(data))
}

func TestClinicalData_CloneIsDeep(t *testing.T) {
	orig := ClinicalData{Age: intPtr(30), Conditions: []string{"diabetes"}}
	clone := orig.Clone()
	*clone.Age = 31
	clone.Conditions[0] = "asma"

	assert.Equal(t, 30, *orig.Age)
	assert.Equal(t, "diabetes", orig.Conditions[0])
	assert.False(t, orig.IsEmpty())
	assert.True(t, ClinicalData{}.IsEmpty())
}

func TestClinicalData_CloneDropsEmptyLists(t *testing.T) {
	clone := ClinicalData{Conditions: []string{}, Medications: []string{"insulina"}}.Clone()
	assert.Nil(t, clone.Conditions)
	assert.Nil(t, clone.Allergies)
	assert.Equal(t, []string{"insulina"}, clone.Medications)
	assert.True(t, ClinicalData{Allergies: []string{}}.Clone().IsEmpty())
}
