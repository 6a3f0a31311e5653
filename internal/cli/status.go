// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/config"
)

// healthTimeout bounds the status probe.
const healthTimeout = 5 * time.Second

// statusReport is the --json output of status.
type statusReport struct {
	Version    string `json:"version"`
	API        string `json:"api"`
	Online     bool   `json:"online"`
	Status     string `json:"status,omitempty"`
	Latency    string `json:"latency,omitempty"`
	Error      string `json:"error,omitempty"`
	Storage    string `json:"storage"`
	StorageDir string `json:"storage_dir"`
	Profile    bool   `json:"profile"`
	ConfigFile string `json:"config_file"`
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Comprueba la conexión con el servidor y el estado local",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *app) runStatus(cmd *cobra.Command) error {
	report := statusReport{
		Version: Version,
		API:     a.cfg.API.BaseURL,
		Storage: a.cfg.Storage.Backend,
	}
	if dir, err := a.cfg.StorageDir(); err == nil {
		report.StorageDir = dir
	}
	if path, err := config.ConfigPathTOML(); err == nil {
		report.ConfigFile = path
	}
	if a.configPath != "" {
		report.ConfigFile = a.configPath
	}

	if store, kv, err := a.profiles(a.logger); err == nil {
		report.Profile = store.Exists()
		kv.Close()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()
	start := time.Now()
	health, healthErr := a.client().Health(ctx)
	if healthErr == nil {
		report.Online = true
		report.Status = health.Status
		report.Latency = time.Since(start).Round(time.Millisecond).String()
	} else {
		report.Error = healthErr.Error()
	}

	out := cmd.OutOrStdout()
	if a.jsonOutput {
		if err := printJSON(out, report); err != nil {
			return err
		}
	} else {
		headingColor.Fprintf(out, "NutriRAG %s\n\n", report.Version)
		fmt.Fprintf(out, "  %-16s %s ", "Servidor:", report.API)
		if report.Online {
			okColor.Fprintf(out, "en línea")
			dimColor.Fprintf(out, " (%s, %s)\n", report.Status, report.Latency)
		} else {
			errColor.Fprintln(out, "sin conexión")
		}
		fmt.Fprintf(out, "  %-16s %s (%s)\n", "Almacenamiento:", report.Storage, report.StorageDir)
		profile := "no guardados"
		if report.Profile {
			profile = "guardados"
		}
		fmt.Fprintf(out, "  %-16s %s\n", "Datos clínicos:", profile)
		fmt.Fprintf(out, "  %-16s %s\n", "Configuración:", report.ConfigFile)
	}

	if healthErr != nil {
		return NewCommandError("status", "health", "el servidor no responde", healthErr)
	}
	return nil
}
