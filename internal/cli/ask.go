// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/router"
	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/ui/components"
)

type askOptions struct {
	explain bool
	copy    bool
	chatID  string
}

// askResult is the --json output of ask.
type askResult struct {
	ChatID    string           `json:"chat_id"`
	Mode      string           `json:"mode"`
	Keywords  []string         `json:"keywords,omitempty"`
	Answer    string           `json:"answer"`
	Citations []model.Citation `json:"citations,omitempty"`
}

func newAskCommand(a *app) *cobra.Command {
	var opts askOptions
	cmd := &cobra.Command{
		Use:   "ask <pregunta>",
		Short: "Hace una pregunta y muestra la respuesta con sus fuentes",
		Example: `  nutrirag ask "¿Cuántas porciones de fruta al día?"
  nutrirag ask --explain "Tengo diabetes, ¿qué puedo desayunar?"
  nutrirag ask --chat 3f2a... "¿Y para la cena?"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd, strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "show the routing mode and the clinical keywords found")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the answer to the clipboard")
	cmd.Flags().StringVar(&opts.chatID, "chat", "", "continue an existing chat")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, question string, opts askOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ctrl, cleanup, err := a.controller(a.client(), a.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// The chat list is not needed to answer; a failure shows up on the query.
	if err := ctrl.Start(ctx); err != nil {
		a.logger.Debug("chat list unavailable", "error", err)
	}
	if opts.chatID != "" {
		if err := ctrl.SelectChat(ctx, opts.chatID); err != nil {
			return NewCommandError("ask", "load chat", opts.chatID, err)
		}
	}

	decision := router.Decide(question, ctrl.State().Profile)
	keywords := router.MatchedKeywords(question)
	if opts.explain && !a.jsonOutput {
		printDecision(out, decision, keywords)
	}

	if err := ctrl.SendMessage(ctx, question); err != nil {
		if errors.Is(err, session.ErrEmptyMessage) {
			return &UsageError{Reason: "la pregunta está vacía"}
		}
		return NewCommandError("ask", "query", "no se pudo conectar con el servidor", err)
	}

	state := ctrl.State()
	answer, ok := lastAnswer(state.Messages)
	if !ok {
		return NewCommandError("ask", "query", "el servidor no devolvió respuesta", nil)
	}

	if a.jsonOutput {
		result := askResult{
			ChatID:    state.CurrentChatID,
			Mode:      decision.Mode.String(),
			Answer:    answer.Content,
			Citations: answer.Citations,
		}
		if opts.explain {
			result.Keywords = keywords
		}
		if err := printJSON(out, result); err != nil {
			return err
		}
	} else {
		newMessagePrinter(out, a.cfg.UI.Theme).answer(answer)
		dimColor.Fprintf(cmd.ErrOrStderr(), "\nchat %s\n", state.CurrentChatID)
	}

	if opts.copy {
		if err := a.copyText(answer.Content); err != nil {
			return NewCommandError("ask", "copy", components.CopyFailedMessage, err)
		}
		okColor.Fprintln(cmd.ErrOrStderr(), components.CopiedMessage)
	}
	return nil
}

// printDecision explains how a question will be routed.
func printDecision(w io.Writer, d router.Decision, keywords []string) {
	fmt.Fprintf(w, "Modo: %s\n", d.Mode)
	if len(keywords) > 0 {
		fmt.Fprintf(w, "Palabras clínicas: %s\n", strings.Join(keywords, ", "))
	}
	switch {
	case d.ClinicalData != nil:
		fmt.Fprintln(w, "Datos clínicos: se envían con la pregunta")
	case d.IsClinical():
		fmt.Fprintln(w, "Datos clínicos: no hay perfil guardado")
	default:
		fmt.Fprintln(w, "Datos clínicos: no se envían")
	}
	fmt.Fprintln(w)
}
