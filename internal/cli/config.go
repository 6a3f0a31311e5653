// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Muestra o cambia la configuración",
		Long: `Muestra o cambia ~/.nutrirag/config.toml. Las claves usan notación con
puntos, por ejemplo api.base_url o ui.theme.

Claves disponibles:
  ` + strings.Join(config.GetAllKeys(), "\n  "),
		Args: usageArgs(cobra.NoArgs),
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Muestra la configuración efectiva",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), a.cfg)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.cfg.String())
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <clave>",
		Short: "Muestra un valor",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.cfg.Get(args[0])
			if err != nil {
				return &UsageError{Reason: err.Error()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	set := &cobra.Command{
		Use:     "set <clave> <valor>",
		Short:   "Cambia un valor y lo guarda",
		Example: `  nutrirag config set api.base_url http://localhost:8000
  nutrirag config set session.status_delay 750ms`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}

			// Edit the file contents, not the effective config, so env
			// overrides are never written back.
			isJSON := strings.HasSuffix(path, ".json")
			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				load := config.LoadTOML
				if isJSON {
					load = config.LoadJSON
				}
				if err := load(cfg, path); err != nil {
					return NewCommandError("config", "set", path, err)
				}
			} else if !errors.Is(statErr, os.ErrNotExist) {
				return NewCommandError("config", "set", path, statErr)
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return &UsageError{Reason: err.Error()}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			save := config.SaveTOML
			if isJSON {
				save = config.SaveJSON
			}
			if err := save(cfg, path); err != nil {
				return NewCommandError("config", "set", path, err)
			}
			okColor.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Muestra la ruta del archivo de configuración",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.AddCommand(show, get, set, path)
	return cmd
}

// configFile is the file config set writes: --config or the default TOML.
func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.ConfigPathTOML()
}
