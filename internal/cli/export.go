// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/export"
	"github.com/jeranaias/nutrirag-tui/internal/model"
)

type exportOptions struct {
	format     string
	output     string
	noSources  bool
	noTimes    bool
	lightTheme bool
}

func newChatsExportCommand(a *app) *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Exporta un chat a Markdown, JSON o HTML",
		Example: `  nutrirag chats export 3f2a --format html --output sodio.html
  nutrirag chats export 3f2a --output -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "md", "md, json or html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "file or directory to write, - for stdout (default current directory)")
	cmd.Flags().BoolVar(&opts.noSources, "no-sources", false, "leave citations out of Markdown and HTML")
	cmd.Flags().BoolVar(&opts.noTimes, "no-timestamps", false, "leave message times out")
	cmd.Flags().BoolVar(&opts.lightTheme, "light", false, "use the light HTML theme")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, chatID string, opts exportOptions) error {
	settings := export.DefaultOptions()
	settings.IncludeSources = !opts.noSources
	settings.IncludeTimestamps = !opts.noTimes
	if opts.lightTheme {
		settings.Theme = "light"
	}
	exporter, err := export.ForFormat(opts.format, settings)
	if err != nil {
		return &UsageError{Reason: err.Error()}
	}

	client := a.client()
	stored, err := client.GetChat(cmd.Context(), chatID)
	if err != nil {
		return NewCommandError("chats", "export", chatID, err)
	}
	transcript := &export.Transcript{ChatID: chatID}
	for _, m := range stored {
		transcript.Messages = append(transcript.Messages, m.ToModel())
	}

	// The title only lives in the chat list.
	if chats, err := client.ListChats(cmd.Context(), a.cfg.API.ChatListLimit); err == nil {
		transcript.Title = chatTitle(chats, chatID)
	} else {
		a.logger.Debug("chat list unavailable for export title", "error", err)
	}

	if opts.output == "-" {
		content, err := exporter.Export(transcript)
		if err != nil {
			return exportError(chatID, err)
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}

	path, err := export.ExportToFile(transcript, exporter, opts.output)
	if err != nil {
		return exportError(chatID, err)
	}
	if a.jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"chat_id": chatID,
			"path":    path,
			"format":  exporter.MimeType(),
		})
	}
	okColor.Fprintln(cmd.OutOrStdout(), "Chat exportado:", path)
	return nil
}

func exportError(chatID string, err error) error {
	if errors.Is(err, export.ErrEmptyTranscript) {
		return NewCommandError("chats", "export", "el chat no tiene mensajes", err)
	}
	return NewCommandError("chats", "export", chatID, err)
}

func chatTitle(chats []model.Chat, id string) string {
	for _, c := range chats {
		if c.ID == id {
			return c.Title
		}
	}
	return ""
}
