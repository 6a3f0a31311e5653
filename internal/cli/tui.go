// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/logging"
	"github.com/jeranaias/nutrirag-tui/internal/ui/chat"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

// runTUI opens the full-screen chat. The program owns the terminal, so
// logs go to the configured log file.
func (a *app) runTUI(cmd *cobra.Command) error {
	if err := RequiresTTY("open the chat screen"); err != nil {
		return err
	}

	logger := logging.Discard()
	if path, err := a.cfg.LogFile(); err == nil {
		fileLogger, closer, err := logging.OpenFile(path, logging.Options{
			Level:  a.cfg.Logging.Level,
			Format: a.cfg.Logging.Format,
		})
		if err == nil {
			logger = fileLogger
			defer closer.Close()
		} else {
			a.logger.Warn("logging disabled", "error", err)
		}
	}
	logger.Info("starting nutrirag", "version", Version, "api", a.cfg.API.BaseURL)

	lipgloss.SetColorProfile(colorProfile(cmd.OutOrStdout()))

	client := a.client()
	ctrl, cleanup, err := a.controller(client, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	m := chat.New(chat.Options{
		Controller:     ctrl,
		Health:         client,
		Theme:          styles.NewTheme(a.cfg.UI.Theme),
		Logger:         logger,
		ShowTimestamps: a.cfg.UI.ShowTimestamps,
		WordWrap:       a.cfg.UI.WordWrap,
		SidebarWidth:   a.cfg.UI.SidebarWidth,
		RequestTimeout: a.cfg.API.Timeout.Duration,
		Clipboard:      a.clipboard,

		FillQuickPrompts: a.cfg.UI.FillQuickPrompts,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running nutrirag: %w", err)
	}
	return nil
}
