// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/config"
	"github.com/jeranaias/nutrirag-tui/internal/logging"
	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/storage"
	"github.com/jeranaias/nutrirag-tui/internal/ui/components"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// app holds the global flags and the state every command shares.
type app struct {
	configPath string
	apiURL     string
	logLevel   string
	jsonOutput bool

	cfg    *config.Config
	logger *slog.Logger

	// httpClient and clipboard are replaced by tests.
	httpClient *http.Client
	clipboard  components.ClipboardWriter
}

// load reads the configuration and applies the global flags.
// An explicit --config must load; a broken default config only warns.
func (a *app) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
		if err != nil {
			return err
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return err
		}
		if err != nil {
			yellow := color.New(color.FgYellow)
			yellow.Fprintf(cmd.ErrOrStderr(), "Aviso: %v (usando valores por defecto)\n", err)
		}
	}

	if a.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(a.apiURL, "/")
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	// Subcommands print to the terminal, so only warnings are logged there
	// unless a level was asked for.
	level := "warn"
	if a.logLevel != "" {
		level = a.logLevel
	}
	format := cfg.Logging.Format
	if format == "text" && ColorsEnabled(cmd.ErrOrStderr()) {
		format = "color"
	}
	a.logger = logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: format})

	color.NoColor = !ColorsEnabled(cmd.OutOrStdout())
	return nil
}

// client returns a backend client for the configured URL.
func (a *app) client() *backend.Client {
	return backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:    a.cfg.API.BaseURL,
		Timeout:    a.cfg.API.Timeout.Duration,
		HTTPClient: a.httpClient,
	})
}

// profiles opens the configured profile storage. The caller closes the KV.
func (a *app) profiles(logger *slog.Logger) (*storage.ProfileStore, storage.KV, error) {
	dir, err := a.cfg.StorageDir()
	if err != nil {
		return nil, nil, NewCommandError("storage", "open", "no storage directory", err)
	}
	kv, err := storage.Open(a.cfg.Storage.Backend, dir)
	if err != nil {
		return nil, nil, NewCommandError("storage", "open", a.cfg.Storage.Backend, err)
	}
	return storage.NewProfileStore(kv, logger), kv, nil
}

// controller builds a session over client. The returned func releases it.
func (a *app) controller(client session.Backend, logger *slog.Logger) (*session.Controller, func(), error) {
	profiles, kv, err := a.profiles(logger)
	if err != nil {
		return nil, nil, err
	}
	ctrl := session.New(session.Options{
		Backend:       client,
		Profiles:      profiles,
		Logger:        logger,
		ChatListLimit: a.cfg.API.ChatListLimit,
		TopK:          a.cfg.API.TopK,
		StatusDelay:   a.cfg.Session.StatusDelay.Duration,
	})
	cleanup := func() {
		ctrl.Close()
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}
	return ctrl, cleanup, nil
}

// copyText writes text to the clipboard in use.
func (a *app) copyText(text string) error {
	if a.clipboard != nil {
		return a.clipboard(text)
	}
	return components.SystemClipboard(text)
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	errColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
)
