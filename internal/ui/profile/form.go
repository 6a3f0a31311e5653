// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package profile

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// =============================================================================
// TEXTS
// =============================================================================

const (
	Title       = "Información Clínica"
	Description = "Para brindarte recomendaciones más personalizadas, cuéntanos un poco sobre ti. Esta información se guardará en este equipo y no será compartida."

	ButtonSave   = "Guardar"
	ButtonCancel = "Cancelar"
	ButtonClear  = "Borrar Datos"

	unsetOption = "Selecciona"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SubmitMsg is sent when the form validates and the user saves.
type SubmitMsg struct {
	Data model.ClinicalData
}

// CancelMsg is sent when the user closes the form without saving.
type CancelMsg struct{}

// ClearMsg is sent when the user asks to delete the stored profile.
type ClearMsg struct{}

// =============================================================================
// FIELDS
// =============================================================================

type fieldKind int

const (
	kindText fieldKind = iota
	kindOption
)

// field is one row of the form. Text rows own a textinput; option rows cycle
// through opts, where index -1 means "not provided".
type field struct {
	key         string // ClinicalData JSON name, used to match validation errors
	label       string
	kind        fieldKind
	input       textinput.Model
	opts        []model.Option
	optionIndex int
}

func (f *field) value() string {
	if f.kind == kindText {
		return f.input.Value()
	}
	if f.optionIndex < 0 || f.optionIndex >= len(f.opts) {
		return ""
	}
	return f.opts[f.optionIndex].Value
}

func (f *field) setValue(v string) {
	if f.kind == kindText {
		f.input.SetValue(v)
		return
	}
	f.optionIndex = -1
	for i, o := range f.opts {
		if o.Value == v {
			f.optionIndex = i
		}
	}
}

func (f *field) cycle(delta int) {
	if f.kind != kindOption {
		return
	}
	// -1 .. len-1 wraps around
	n := len(f.opts) + 1
	f.optionIndex = ((f.optionIndex+1+delta)%n+n)%n - 1
}

func newTextField(key, label, placeholder string, charLimit int) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = charLimit
	in.Prompt = ""
	return field{key: key, label: label, kind: kindText, input: in}
}

func newOptionField(key, label string, opts []model.Option) field {
	return field{key: key, label: label, kind: kindOption, opts: opts, optionIndex: -1}
}

// Field order; also the focus order before the buttons.
const (
	fieldAge = iota
	fieldGender
	fieldWeight
	fieldHeight
	fieldActivity
	fieldDiet
	fieldConditions
	fieldAllergies
	fieldMedications
	fieldCount
)

// =============================================================================
// FORM MODEL
// =============================================================================

// Form is the Bubble Tea model of the clinical data form.
type Form struct {
	fields      []field
	buttons     []string
	focus       int // 0..fieldCount-1 are fields, then buttons
	errors      model.ValidationErrors
	hasExisting bool

	width int
	theme *styles.Theme
}

// New creates a form filled from existing, or empty when existing is nil.
// The delete button is only offered for an existing profile.
func New(theme *styles.Theme, existing *model.ClinicalData) *Form {
	f := &Form{
		theme: theme,
		width: 64,
		fields: []field{
			newTextField("age", "Edad", "Ej: 30", 3),
			newOptionField("gender", "Sexo", model.GenderOptions),
			newTextField("weight", "Peso (kg)", "Ej: 70", 6),
			newTextField("height", "Altura (cm)", "Ej: 170", 6),
			newOptionField("activity_level", "Nivel de actividad física", model.ActivityOptions),
			newOptionField("diet_type", "Tipo de dieta", model.DietOptions),
			newTextField("conditions", "Condiciones médicas (separadas por comas)", "Ej: diabetes, hipertensión", 200),
			newTextField("allergies", "Alergias (separadas por comas)", "Ej: nueces, lácteos", 200),
			newTextField("medications", "Medicamentos actuales (separados por comas)", "Ej: metformina, ibuprofeno", 200),
		},
	}

	f.buttons = []string{ButtonSave, ButtonCancel}
	if existing != nil && !existing.IsEmpty() {
		f.hasExisting = true
		f.buttons = append(f.buttons, ButtonClear)
		f.fill(model.FormFromData(*existing))
	}
	f.applyFocus()
	return f
}

func (f *Form) fill(src model.ClinicalForm) {
	f.fields[fieldAge].setValue(src.Age)
	f.fields[fieldGender].setValue(src.Gender)
	f.fields[fieldWeight].setValue(src.Weight)
	f.fields[fieldHeight].setValue(src.Height)
	f.fields[fieldActivity].setValue(src.ActivityLevel)
	f.fields[fieldDiet].setValue(src.DietType)
	f.fields[fieldConditions].setValue(src.Conditions)
	f.fields[fieldAllergies].setValue(src.Allergies)
	f.fields[fieldMedications].setValue(src.Medications)
}

// Values returns the raw form contents.
func (f *Form) Values() model.ClinicalForm {
	return model.ClinicalForm{
		Age:           f.fields[fieldAge].value(),
		Gender:        f.fields[fieldGender].value(),
		Weight:        f.fields[fieldWeight].value(),
		Height:        f.fields[fieldHeight].value(),
		ActivityLevel: f.fields[fieldActivity].value(),
		DietType:      f.fields[fieldDiet].value(),
		Conditions:    f.fields[fieldConditions].value(),
		Allergies:     f.fields[fieldAllergies].value(),
		Medications:   f.fields[fieldMedications].value(),
	}
}

// Errors returns the validation errors of the last save attempt.
func (f *Form) Errors() model.ValidationErrors {
	return f.errors
}

// HasExisting reports whether the form edits a stored profile.
func (f *Form) HasExisting() bool {
	return f.hasExisting
}

// Buttons returns the labels of the available buttons.
func (f *Form) Buttons() []string {
	return f.buttons
}

// SetWidth sets the form width.
func (f *Form) SetWidth(width int) {
	f.width = width
	for i := range f.fields {
		f.fields[i].input.Width = width - 10
	}
}

func (f *Form) focusCount() int {
	return fieldCount + len(f.buttons)
}

func (f *Form) move(delta int) {
	n := f.focusCount()
	f.focus = ((f.focus+delta)%n + n) % n
	f.applyFocus()
}

func (f *Form) applyFocus() {
	for i := range f.fields {
		if f.fields[i].kind != kindText {
			continue
		}
		if i == f.focus {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

func (f *Form) focusedButton() (string, bool) {
	if f.focus < fieldCount {
		return "", false
	}
	return f.buttons[f.focus-fieldCount], true
}

// Save validates the form. It returns the command that emits SubmitMsg, or
// nil with Errors set when a field is invalid.
func (f *Form) Save() tea.Cmd {
	data, err := f.Values().Parse()
	if err != nil {
		verrs, ok := model.AsValidationErrors(err)
		if !ok {
			verrs = model.ValidationErrors{{Field: "form", Message: err.Error()}}
		}
		f.errors = verrs
		f.focusFirstError()
		return nil
	}
	f.errors = nil
	return func() tea.Msg { return SubmitMsg{Data: data} }
}

func (f *Form) focusFirstError() {
	for i, fld := range f.fields {
		if f.errors.For(fld.key) != "" {
			f.focus = i
			f.applyFocus()
			return
		}
	}
}

func (f *Form) activate(button string) tea.Cmd {
	switch button {
	case ButtonSave:
		return f.Save()
	case ButtonClear:
		return func() tea.Msg { return ClearMsg{} }
	default:
		return func() tea.Msg { return CancelMsg{} }
	}
}

// Init starts the cursor blink.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.focus < fieldCount && f.fields[f.focus].kind == kindText {
			var cmd tea.Cmd
			f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
			return f, cmd
		}
		return f, nil
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return CancelMsg{} }
	case "ctrl+s":
		return f, f.Save()
	case "tab", "down":
		f.move(1)
		return f, nil
	case "shift+tab", "up":
		f.move(-1)
		return f, nil
	case "enter":
		if b, ok := f.focusedButton(); ok {
			return f, f.activate(b)
		}
		f.move(1)
		return f, nil
	case "left", "right":
		delta := 1
		if keyMsg.String() == "left" {
			delta = -1
		}
		if f.focus >= fieldCount {
			f.move(delta)
			return f, nil
		}
		if f.fields[f.focus].kind == kindOption {
			f.fields[f.focus].cycle(delta)
			return f, nil
		}
	case " ":
		if f.focus < fieldCount && f.fields[f.focus].kind == kindOption {
			f.fields[f.focus].cycle(1)
			return f, nil
		}
	}

	if f.focus < fieldCount && f.fields[f.focus].kind == kindText {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return f, cmd
	}
	return f, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form box.
func (f *Form) View() string {
	t := f.theme
	inner := f.width - 6
	if inner < 30 {
		inner = 30
	}

	var b strings.Builder
	b.WriteString(t.FormTitle.Render(Title) + "\n")
	b.WriteString(t.WelcomeText.Width(inner).Render(Description) + "\n")

	for i := range f.fields {
		fld := &f.fields[i]
		focused := i == f.focus

		label := t.FormLabel.Render(fld.label)
		if focused {
			label = t.FormLabelFocused.Render("> " + fld.label)
		}
		b.WriteString("\n" + label + "\n")

		if fld.kind == kindText {
			b.WriteString("  " + fld.input.View())
		} else {
			text := unsetOption
			if fld.optionIndex >= 0 {
				text = fld.opts[fld.optionIndex].Label
			}
			if focused {
				text = "< " + text + " >"
			}
			b.WriteString("  " + text)
		}

		if msg := f.errors.For(fld.key); msg != "" {
			b.WriteString("\n  " + t.FormError.Render(msg))
		}
	}
	if msg := f.errors.For("form"); msg != "" {
		b.WriteString("\n\n" + t.FormError.Render(msg))
	}

	buttons := make([]string, len(f.buttons))
	for i, label := range f.buttons {
		style := t.FormButton
		if f.focus == fieldCount+i {
			style = t.FormButtonActive
			if label == ButtonClear {
				style = t.FormButtonDanger
			}
		}
		buttons[i] = style.Render(label)
	}
	b.WriteString("\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n\n" + t.ShortcutDesc.Render("tab siguiente  <-/-> opciones  ctrl+s guardar  esc cancelar"))

	return t.FormBox.Width(f.width).Render(b.String())
}
