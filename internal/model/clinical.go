// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

// Gender is the self-reported sex of the user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel describes weekly physical activity.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// DietType is the user's eating pattern.
type DietType string

const (
	DietOmnivore    DietType = "omnivore"
	DietVegetarian  DietType = "vegetarian"
	DietVegan       DietType = "vegan"
	DietPescetarian DietType = "pescetarian"
	DietKeto        DietType = "keto"
	DietOther       DietType = "other"
)

// Option pairs an enumeration value with its display label.
type Option struct {
	Value string
	Label string
}

// GenderOptions lists the valid genders in display order.
var GenderOptions = []Option{
	{Value: string(GenderMale), Label: "Masculino"},
	{Value: string(GenderFemale), Label: "Femenino"},
	{Value: string(GenderOther), Label: "Otro"},
}

// ActivityOptions lists the valid activity levels in display order.
var ActivityOptions = []Option{
	{Value: string(ActivitySedentary), Label: "Sedentario"},
	{Value: string(ActivityLight), Label: "Ligera (1-3 días/semana)"},
	{Value: string(ActivityModerate), Label: "Moderada (3-5 días/semana)"},
	{Value: string(ActivityActive), Label: "Activa (6-7 días/semana)"},
	{Value: string(ActivityVeryActive), Label: "Muy activa (atleta)"},
}

// DietOptions lists the valid diet types in display order.
var DietOptions = []Option{
	{Value: string(DietOmnivore), Label: "Omnívora"},
	{Value: string(DietVegetarian), Label: "Vegetariana"},
	{Value: string(DietVegan), Label: "Vegana"},
	{Value: string(DietPescetarian), Label: "Pescetariana"},
	{Value: string(DietKeto), Label: "Cetogénica"},
	{Value: string(DietOther), Label: "Otra"},
}

func inOptions(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// OptionLabel returns the label for v, or v itself when it is not listed.
func OptionLabel(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

// =============================================================================
// CLINICAL DATA
// =============================================================================

// ClinicalData holds the optional personal health attributes of the user.
// Every field may be absent; absent fields are omitted from JSON. An empty
// list and an absent one mean the same thing and Clone reduces both to nil.
type ClinicalData struct {
	Age           *int          `json:"age,omitempty"`
	Gender        Gender        `json:"gender,omitempty"`
	Weight        *float64      `json:"weight,omitempty"`
	Height        *float64      `json:"height,omitempty"`
	Conditions    []string      `json:"conditions,omitempty"`
	Allergies     []string      `json:"allergies,omitempty"`
	Medications   []string      `json:"medications,omitempty"`
	DietType      DietType      `json:"diet_type,omitempty"`
	ActivityLevel ActivityLevel `json:"activity_level,omitempty"`
}

// IsEmpty reports whether no attribute is set.
func (d ClinicalData) IsEmpty() bool {
	return d.Age == nil && d.Gender == "" && d.Weight == nil && d.Height == nil &&
		len(d.Conditions) == 0 && len(d.Allergies) == 0 && len(d.Medications) == 0 &&
		d.DietType == "" && d.ActivityLevel == ""
}

// Clone returns a deep copy with empty lists set to nil.
func (d ClinicalData) Clone() ClinicalData {
	out := d
	if d.Age != nil {
		v := *d.Age
		out.Age = &v
	}
	if d.Weight != nil {
		v := *d.Weight
		out.Weight = &v
	}
	if d.Height != nil {
		v := *d.Height
		out.Height = &v
	}
	out.Conditions = cloneStrings(d.Conditions)
	out.Allergies = cloneStrings(d.Allergies)
	out.Medications = cloneStrings(d.Medications)
	return out
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}

// Validation messages, shown next to the offending field.
const (
	MsgInvalidAge      = "La edad debe ser un número entre 1 y 149."
	MsgInvalidWeight   = "El peso debe ser un número mayor a 0."
	MsgInvalidHeight   = "La altura debe ser un número mayor a 0."
	MsgInvalidGender   = "Selecciona un sexo válido."
	MsgInvalidActivity = "Selecciona un nivel de actividad válido."
	MsgInvalidDiet     = "Selecciona un tipo de dieta válido."
)

// Validate checks ranges and enumerations of the fields that are set.
// Returns ValidationErrors with one entry per offending field, or nil.
func (d ClinicalData) Validate() error {
	var errs ValidationErrors

	if d.Age != nil && (*d.Age <= 0 || *d.Age >= 150) {
		errs = append(errs, ValidationError{Field: "age", Message: MsgInvalidAge})
	}
	if d.Weight != nil && (math.IsNaN(*d.Weight) || *d.Weight <= 0) {
		errs = append(errs, ValidationError{Field: "weight", Message: MsgInvalidWeight})
	}
	if d.Height != nil && (math.IsNaN(*d.Height) || *d.Height <= 0) {
		errs = append(errs, ValidationError{Field: "height", Message: MsgInvalidHeight})
	}
	if d.Gender != "" && !inOptions(GenderOptions, string(d.Gender)) {
		errs = append(errs, ValidationError{Field: "gender", Message: MsgInvalidGender})
	}
	if d.ActivityLevel != "" && !inOptions(ActivityOptions, string(d.ActivityLevel)) {
		errs = append(errs, ValidationError{Field: "activity_level", Message: MsgInvalidActivity})
	}
	if d.DietType != "" && !inOptions(DietOptions, string(d.DietType)) {
		errs = append(errs, ValidationError{Field: "diet_type", Message: MsgInvalidDiet})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// ValidationError is a problem with a single clinical data field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of per-field validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for field, or "" if the field is valid.
func (e ValidationErrors) For(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// =============================================================================
// FORM INPUT
// =============================================================================

// ClinicalForm is the raw text a user typed into the profile form or passed
// as command flags. Empty strings mean "not provided".
type ClinicalForm struct {
	Age           string
	Gender        string
	Weight        string
	Height        string
	Conditions    string
	Allergies     string
	Medications   string
	DietType      string
	ActivityLevel string
}

// FormFromData renders data back into editable text.
func FormFromData(d ClinicalData) ClinicalForm {
	f := ClinicalForm{
		Gender:        string(d.Gender),
		Conditions:    strings.Join(d.Conditions, ", "),
		Allergies:     strings.Join(d.Allergies, ", "),
		Medications:   strings.Join(d.Medications, ", "),
		DietType:      string(d.DietType),
		ActivityLevel: string(d.ActivityLevel),
	}
	if d.Age != nil {
		f.Age = strconv.Itoa(*d.Age)
	}
	if d.Weight != nil {
		f.Weight = strconv.FormatFloat(*d.Weight, 'f', -1, 64)
	}
	if d.Height != nil {
		f.Height = strconv.FormatFloat(*d.Height, 'f', -1, 64)
	}
	return f
}

// Parse converts the form to ClinicalData and validates it.
// Text that is not a number fails with the same message as an out-of-range value.
func (f ClinicalForm) Parse() (ClinicalData, error) {
	var (
		d    ClinicalData
		errs ValidationErrors
	)

	if s := strings.TrimSpace(f.Age); s != "" {
		if v, err := strconv.Atoi(s); err != nil {
			errs = append(errs, ValidationError{Field: "age", Message: MsgInvalidAge})
		} else {
			d.Age = &v
		}
	}
	if s := strings.TrimSpace(f.Weight); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err != nil {
			errs = append(errs, ValidationError{Field: "weight", Message: MsgInvalidWeight})
		} else {
			d.Weight = &v
		}
	}
	if s := strings.TrimSpace(f.Height); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err != nil {
			errs = append(errs, ValidationError{Field: "height", Message: MsgInvalidHeight})
		} else {
			d.Height = &v
		}
	}

	d.Gender = Gender(strings.TrimSpace(f.Gender))
	d.DietType = DietType(strings.TrimSpace(f.DietType))
	d.ActivityLevel = ActivityLevel(strings.TrimSpace(f.ActivityLevel))
	d.Conditions = ParseList(f.Conditions)
	d.Allergies = ParseList(f.Allergies)
	d.Medications = ParseList(f.Medications)

	if err := d.Validate(); err != nil {
		verrs, _ := AsValidationErrors(err)
		for _, ve := range verrs {
			if errs.For(ve.Field) == "" {
				errs = append(errs, ve)
			}
		}
	}

	if len(errs) > 0 {
		return d, errs
	}
	return d, nil
}

// ParseList splits a comma-separated value, trims each entry and drops empty ones.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
