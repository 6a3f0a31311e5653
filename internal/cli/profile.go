// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// profileFlag binds one clinical attribute to a command flag.
type profileFlag struct {
	name  string
	usage string
	field func(f *model.ClinicalForm) *string
}

var profileFlags = []profileFlag{
	{"age", "age in years (1-149)", func(f *model.ClinicalForm) *string { return &f.Age }},
	{"gender", "male, female or other", func(f *model.ClinicalForm) *string { return &f.Gender }},
	{"weight", "weight in kg", func(f *model.ClinicalForm) *string { return &f.Weight }},
	{"height", "height in cm", func(f *model.ClinicalForm) *string { return &f.Height }},
	{"conditions", "comma-separated medical conditions", func(f *model.ClinicalForm) *string { return &f.Conditions }},
	{"allergies", "comma-separated allergies", func(f *model.ClinicalForm) *string { return &f.Allergies }},
	{"medications", "comma-separated medications", func(f *model.ClinicalForm) *string { return &f.Medications }},
	{"diet", "omnivore, vegetarian, vegan, pescetarian, keto or other", func(f *model.ClinicalForm) *string { return &f.DietType }},
	{"activity", "sedentary, light, moderate, active or very_active", func(f *model.ClinicalForm) *string { return &f.ActivityLevel }},
}

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Gestiona tus datos clínicos locales",
		Long: `Tus datos clínicos se guardan solo en este equipo. Se envían al servidor
únicamente con las preguntas que mencionan una condición de salud.`,
		Args: usageArgs(cobra.NoArgs),
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Muestra los datos guardados",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := a.profiles(a.logger)
			if err != nil {
				return err
			}
			defer kv.Close()

			data, _ := store.Load()
			if a.jsonOutput {
				if data == nil {
					return printJSON(cmd.OutOrStdout(), struct{}{})
				}
				return printJSON(cmd.OutOrStdout(), data)
			}
			printProfile(cmd.OutOrStdout(), data)
			return nil
		},
	}

	values := make([]string, len(profileFlags))
	set := &cobra.Command{
		Use:   "set",
		Short: "Guarda o actualiza datos clínicos",
		Long: `Actualiza solo los campos indicados; el resto se conserva. Un valor
vacío borra ese campo.`,
		Example: `  nutrirag profile set --age 45 --conditions "diabetes tipo 2, hipertensión"
  nutrirag profile set --diet vegetarian --activity moderate`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := a.profiles(a.logger)
			if err != nil {
				return err
			}
			defer kv.Close()

			var form model.ClinicalForm
			if existing, ok := store.Load(); ok {
				form = model.FormFromData(*existing)
			}
			changed := false
			for i, pf := range profileFlags {
				if cmd.Flags().Changed(pf.name) {
					*pf.field(&form) = values[i]
					changed = true
				}
			}
			if !changed {
				return &UsageError{Reason: "indica al menos un campo (ver 'nutrirag profile set --help')"}
			}

			data, err := form.Parse()
			if err != nil {
				return err
			}
			if data.IsEmpty() {
				store.Clear()
			} else {
				store.Save(data)
			}
			okColor.Fprintln(cmd.OutOrStdout(), "Información guardada: tus datos clínicos han sido guardados localmente.")
			return nil
		},
	}
	for i, pf := range profileFlags {
		set.Flags().StringVar(&values[i], pf.name, "", pf.usage)
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Elimina los datos guardados",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := a.profiles(a.logger)
			if err != nil {
				return err
			}
			defer kv.Close()

			store.Clear()
			okColor.Fprintln(cmd.OutOrStdout(), "Datos borrados: tus datos clínicos han sido eliminados.")
			return nil
		},
	}

	cmd.AddCommand(show, set, clearCmd)
	return cmd
}

// printProfile writes a readable summary of the clinical profile.
func printProfile(w io.Writer, d *model.ClinicalData) {
	if d == nil || d.IsEmpty() {
		fmt.Fprintln(w, "No hay datos clínicos guardados.")
		return
	}

	var rows [][2]string
	if d.Age != nil {
		rows = append(rows, [2]string{"Edad", strconv.Itoa(*d.Age) + " años"})
	}
	if d.Gender != "" {
		rows = append(rows, [2]string{"Sexo", model.OptionLabel(model.GenderOptions, string(d.Gender))})
	}
	if d.Weight != nil {
		rows = append(rows, [2]string{"Peso", strconv.FormatFloat(*d.Weight, 'f', -1, 64) + " kg"})
	}
	if d.Height != nil {
		rows = append(rows, [2]string{"Altura", strconv.FormatFloat(*d.Height, 'f', -1, 64) + " cm"})
	}
	if len(d.Conditions) > 0 {
		rows = append(rows, [2]string{"Condiciones", strings.Join(d.Conditions, ", ")})
	}
	if len(d.Allergies) > 0 {
		rows = append(rows, [2]string{"Alergias", strings.Join(d.Allergies, ", ")})
	}
	if len(d.Medications) > 0 {
		rows = append(rows, [2]string{"Medicamentos", strings.Join(d.Medications, ", ")})
	}
	if d.DietType != "" {
		rows = append(rows, [2]string{"Dieta", model.OptionLabel(model.DietOptions, string(d.DietType))})
	}
	if d.ActivityLevel != "" {
		rows = append(rows, [2]string{"Actividad", model.OptionLabel(model.ActivityOptions, string(d.ActivityLevel))})
	}

	headingColor.Fprintln(w, "Mis datos clínicos")
	for _, r := range rows {
		fmt.Fprintf(w, "  %-13s %s\n", r[0]+":", r[1])
	}
}
