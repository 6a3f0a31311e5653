// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/session"
)

func newChatsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Lista, muestra o elimina chats guardados",
		Args:  usageArgs(cobra.NoArgs),
	}

	var limit int
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista los chats, el más reciente primero",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = a.cfg.API.ChatListLimit
			}
			chats, err := a.client().ListChats(cmd.Context(), limit)
			if err != nil {
				return NewCommandError("chats", "list", "no se pudo cargar el historial", err)
			}
			if a.jsonOutput {
				if chats == nil {
					chats = []model.Chat{}
				}
				return printJSON(cmd.OutOrStdout(), chats)
			}
			printChatList(cmd.OutOrStdout(), session.State{Chats: chats}, time.Now())
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of chats (default api.chat_list_limit)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra los mensajes de un chat",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := a.client().GetChat(cmd.Context(), args[0])
			if err != nil {
				return NewCommandError("chats", "show", args[0], err)
			}
			messages := make([]model.Message, 0, len(stored))
			for _, m := range stored {
				messages = append(messages, m.ToModel())
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), messages)
			}
			printer := newMessagePrinter(cmd.OutOrStdout(), a.cfg.UI.Theme)
			for _, msg := range messages {
				printer.message(msg)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Elimina un chat",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteChat(cmd.Context(), args[0]); err != nil {
				return NewCommandError("chats", "delete", "no se pudo eliminar el chat", err)
			}
			okColor.Fprintln(cmd.OutOrStdout(), "Chat eliminado:", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, remove, newChatsExportCommand(a))
	return cmd
}
