// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package profile

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

func newForm(existing *model.ClinicalData) *Form {
	return New(styles.NewTheme(styles.ThemeDark), existing)
}

func typeText(f *Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(f *Form, key tea.KeyType) tea.Cmd {
	_, cmd := f.Update(tea.KeyMsg{Type: key})
	return cmd
}

func TestNew_Empty(t *testing.T) {
	f := newForm(nil)
	assert.False(t, f.HasExisting())
	assert.Equal(t, []string{ButtonSave, ButtonCancel}, f.Buttons())
	assert.Equal(t, model.ClinicalForm{}, f.Values())

	out := f.View()
	for _, label := range []string{Title, "Edad", "Sexo", "Peso (kg)", "Altura (cm)", "Nivel de actividad física",
		"Tipo de dieta", "Condiciones médicas (separadas por comas)", "Alergias (separadas por comas)",
		"Medicamentos actuales (separados por comas)", ButtonSave, ButtonCancel} {
		assert.Contains(t, out, label)
	}
	assert.NotContains(t, out, ButtonClear)
}

func TestNew_Existing(t *testing.T) {
	age := 42
	weight := 70.5
	f := newForm(&model.ClinicalData{
		Age:        &age,
		Weight:     &weight,
		Gender:     model.GenderFemale,
		DietType:   model.DietVegan,
		Conditions: []string{"diabetes", "hipertensión"},
	})

	assert.True(t, f.HasExisting())
	assert.Contains(t, f.Buttons(), ButtonClear)

	v := f.Values()
	assert.Equal(t, "42", v.Age)
	assert.Equal(t, "70.5", v.Weight)
	assert.Equal(t, "female", v.Gender)
	assert.Equal(t, "vegan", v.DietType)
	assert.Equal(t, "diabetes, hipertensión", v.Conditions)
	assert.Contains(t, f.View(), "Femenino")
}

func TestTypingAndSave(t *testing.T) {
	f := newForm(nil)
	typeText(f, "30")

	press(f, tea.KeyTab) // Sexo
	press(f, tea.KeyRight)
	press(f, tea.KeyRight)
	assert.Equal(t, "female", f.Values().Gender)

	press(f, tea.KeyTab) // Peso
	typeText(f, "65")

	cmd := press(f, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	require.NotNil(t, msg.Data.Age)
	assert.Equal(t, 30, *msg.Data.Age)
	assert.Equal(t, 65.0, *msg.Data.Weight)
	assert.Equal(t, model.GenderFemale, msg.Data.Gender)
	assert.Empty(t, f.Errors())
}

func TestSave_InlineErrors(t *testing.T) {
	f := newForm(nil)
	typeText(f, "200")
	press(f, tea.KeyTab)
	press(f, tea.KeyTab)
	typeText(f, "abc")

	cmd := f.Save()
	assert.Nil(t, cmd)
	assert.Equal(t, model.MsgInvalidAge, f.Errors().For("age"))
	assert.Equal(t, model.MsgInvalidWeight, f.Errors().For("weight"))

	out := f.View()
	assert.Contains(t, out, model.MsgInvalidAge)
	assert.Contains(t, out, model.MsgInvalidWeight)
	assert.Equal(t, fieldAge, f.focus, "focus jumps to the first invalid field")
}

func TestOptionCycleWraps(t *testing.T) {
	fld := newOptionField("gender", "Sexo", model.GenderOptions)
	fld.cycle(-1)
	assert.Equal(t, "other", fld.value())
	fld.cycle(1)
	assert.Equal(t, "", fld.value(), "wraps back to unset")
	fld.cycle(1)
	assert.Equal(t, "male", fld.value())
}

func TestButtons(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		steps    int
		want     tea.Msg
	}{
		{"cancel", false, fieldCount + 1, CancelMsg{}},
		{"clear", true, fieldCount + 2, ClearMsg{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var existing *model.ClinicalData
			if tc.existing {
				age := 30
				existing = &model.ClinicalData{Age: &age}
			}
			f := newForm(existing)
			for i := 0; i < tc.steps; i++ {
				press(f, tea.KeyTab)
			}
			cmd := press(f, tea.KeyEnter)
			require.NotNil(t, cmd)
			assert.Equal(t, tc.want, cmd())
		})
	}
}

func TestEscCancels(t *testing.T) {
	f := newForm(nil)
	cmd := press(f, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestFocusWraps(t *testing.T) {
	f := newForm(nil)
	press(f, tea.KeyShiftTab)
	assert.Equal(t, fieldCount+len(f.Buttons())-1, f.focus)
	press(f, tea.KeyTab)
	assert.Equal(t, 0, f.focus)
}
