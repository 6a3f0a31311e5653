// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode conversation for terminals where the full screen is
// not wanted (screen readers, tmux panes, serial consoles).
//
// USABILITY: liner provides line editing and history across sessions.
//
// Commands inside the chat:
//
//	/nuevo            Start a new conversation
//	/chats            List saved conversations
//	/abrir <n|id>     Open a saved conversation
//	/borrar <n|id>    Delete a saved conversation
//	/perfil           Show the stored clinical profile
//	/codigo [code-N]  List the code blocks of the last answer, or copy one
//	/ayuda            Show this help
//	/salir            Exit

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/config"
	"github.com/jeranaias/nutrirag-tui/internal/markdown"
	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/session"
	"github.com/jeranaias/nutrirag-tui/internal/ui/components"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
)

const (
	historyFileName = "chat_history"
	chatPrompt      = "tú> "
)

// lineReader reads one line of input. *liner.State implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newChatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Conversa en modo texto, sin pantalla completa",
		Long: `Abre una conversación línea a línea. Las flechas recorren el historial
de preguntas, que se guarda entre sesiones.

Escribe /ayuda dentro del chat para ver los comandos.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChat(cmd)
		},
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	ctrl, cleanup, err := a.controller(a.client(), a.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if dir, err := config.ConfigDir(); err == nil {
		historyFile = filepath.Join(dir, historyFileName)
		if f, err := os.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if historyFile != "" {
			if err := saveHistory(line, historyFile); err != nil {
				a.logger.Warn("failed to save chat history", "error", err)
			}
		}
	}()

	out := cmd.OutOrStdout()
	return runREPL(cmd.Context(), ctrl, line, out, newMessagePrinter(out, a.cfg.UI.Theme), a.copyText)
}

// saveHistory persists the prompt history with owner-only permissions.
func saveHistory(line *liner.State, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = line.WriteHistory(f)
	return err
}

// =============================================================================
// REPL
// =============================================================================

type repl struct {
	ctrl    *session.Controller
	in      lineReader
	out     io.Writer
	printer *messagePrinter
	events  <-chan session.Event
	copy    components.ClipboardWriter
	now     func() time.Time
}

// runREPL reads questions and commands until /salir, EOF or Ctrl+C.
func runREPL(ctx context.Context, ctrl *session.Controller, in lineReader, out io.Writer, printer *messagePrinter, copyText components.ClipboardWriter) error {
	events, unsubscribe := ctrl.Subscribe(ctx)
	defer unsubscribe()

	r := &repl{ctrl: ctrl, in: in, out: out, printer: printer, events: events, copy: copyText, now: time.Now}

	if err := ctrl.Start(ctx); err != nil {
		errColor.Fprintln(out, "No se pudo cargar el historial de chats.")
	}
	r.drain()

	headingColor.Fprint(out, "NutriRAG")
	fmt.Fprintln(out, " - escribe tu pregunta o /ayuda para ver los comandos.")
	if ctrl.State().NeedsProfile {
		dimColor.Fprintln(out, "Sin datos clínicos guardados. Usa 'nutrirag profile set' para personalizar las respuestas.")
		ctrl.DismissProfilePrompt()
		r.drain()
	}
	dimColor.Fprintln(out, styles.RenderRule(min(GetTerminalWidth(), 60)))
	fmt.Fprintln(out)

	for {
		input, err := in.Prompt(chatPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		in.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := r.command(ctx, input); quit {
				return nil
			}
			continue
		}
		r.send(ctx, input)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// send runs one turn, echoing the typing status while it waits.
func (r *repl) send(ctx context.Context, text string) {
	before := len(r.ctrl.State().Messages)

	done := make(chan error, 1)
	go func() { done <- r.ctrl.SendMessage(ctx, text) }()

	status := ""
	for {
		select {
		case err := <-done:
			r.drain()
			r.finishTurn(before, err)
			return
		case ev, ok := <-r.events:
			if !ok {
				r.events = nil
				continue
			}
			if ev.Kind == session.EventNotice {
				r.notice(ev.Notice)
				continue
			}
			if ev.State.IsTyping && ev.State.TypingStatus != status {
				status = ev.State.TypingStatus
				dimColor.Fprintln(r.out, status)
			}
		}
	}
}

func (r *repl) finishTurn(before int, err error) {
	if errors.Is(err, session.ErrStale) {
		return
	}
	state := r.ctrl.State()
	if len(state.Messages) > before {
		if last := state.Messages[len(state.Messages)-1]; last.IsAssistant() {
			fmt.Fprintln(r.out)
			r.printer.answer(last)
			fmt.Fprintln(r.out)
		}
	}
}

// drain prints the notices already queued without waiting for more.
func (r *repl) drain() {
	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				r.events = nil
				return
			}
			if ev.Kind == session.EventNotice {
				r.notice(ev.Notice)
			}
		default:
			return
		}
	}
}

func (r *repl) notice(n session.Notice) {
	switch n.Kind {
	case session.NoticeError:
		errColor.Fprintln(r.out, n.Text())
	case session.NoticeSuccess:
		okColor.Fprintln(r.out, n.Text())
	default:
		fmt.Fprintln(r.out, n.Text())
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// command runs a slash command and reports whether the REPL should exit.
func (r *repl) command(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/salir", "/q", "/exit":
		return true
	case "/ayuda", "/?", "/help":
		r.help()
	case "/nuevo", "/new":
		if !r.ctrl.State().HasChat() {
			dimColor.Fprintln(r.out, "Ya estás en un chat nuevo.")
			break
		}
		r.ctrl.NewChat()
		okColor.Fprintln(r.out, "Nuevo chat.")
	case "/chats":
		if err := r.ctrl.RefreshChats(ctx); err != nil {
			errColor.Fprintln(r.out, "No se pudo cargar el historial de chats.")
			break
		}
		printChatList(r.out, r.ctrl.State(), r.now())
	case "/abrir", "/open":
		id, err := resolveChat(r.ctrl.State(), args)
		if err != nil {
			errColor.Fprintln(r.out, err)
			break
		}
		if err := r.ctrl.SelectChat(ctx, id); err == nil {
			fmt.Fprintln(r.out)
			for _, msg := range r.ctrl.State().Messages {
				r.printer.message(msg)
			}
		}
	case "/borrar", "/delete":
		id, err := resolveChat(r.ctrl.State(), args)
		if err != nil {
			errColor.Fprintln(r.out, err)
			break
		}
		_ = r.ctrl.DeleteChat(ctx, id)
	case "/perfil", "/profile":
		printProfile(r.out, r.ctrl.State().Profile)
	case "/codigo", "/code":
		r.code(args)
	default:
		errColor.Fprintf(r.out, "Comando desconocido: %s (usa /ayuda)\n", name)
	}
	r.drain()
	return false
}

func (r *repl) help() {
	commands := [][2]string{
		{"/nuevo", "Empieza un chat nuevo"},
		{"/chats", "Lista los chats guardados"},
		{"/abrir <n|id>", "Abre un chat guardado"},
		{"/borrar <n|id>", "Elimina un chat guardado"},
		{"/perfil", "Muestra tus datos clínicos"},
		{"/codigo [code-N]", "Lista o copia el código de la última respuesta"},
		{"/ayuda", "Muestra esta ayuda"},
		{"/salir", "Sale del chat (también Ctrl+C o Ctrl+D)"},
	}
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %-16s %s\n", c[0], c[1])
	}
}

// code lists the code blocks of the last answer, or copies the one named
// by id ("code-0" or just "0").
func (r *repl) code(args []string) {
	answer, ok := lastAnswer(r.ctrl.State().Messages)
	if !ok {
		fmt.Fprintln(r.out, "Todavía no hay respuestas en este chat.")
		return
	}
	if len(args) == 0 {
		blocks := markdown.Extract(answer.Content)
		if len(blocks) == 0 {
			fmt.Fprintln(r.out, "La última respuesta no tiene código.")
			return
		}
		r.printer.codeBlocks(blocks)
		return
	}

	id := args[0]
	if n, err := strconv.Atoi(id); err == nil {
		id = markdown.CodeBlockID(n)
	}
	cb, found := markdown.Find(answer.Content, id)
	if !found {
		errColor.Fprintf(r.out, "No hay bloque de código %s\n", id)
		return
	}
	if r.copy == nil {
		errColor.Fprintln(r.out, components.CodeCopyFailedMessage)
		return
	}
	if err := r.copy(cb.Code); err != nil {
		errColor.Fprintln(r.out, components.CodeCopyFailedMessage)
		return
	}
	okColor.Fprintln(r.out, components.CodeCopiedMessage)
}

// resolveChat accepts a 1-based position in the cached list or a chat id.
func resolveChat(state session.State, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("indica el número o el id del chat (/chats los lista)")
	}
	arg := args[0]
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(state.Chats) {
			return "", fmt.Errorf("no hay chat número %d", n)
		}
		return state.Chats[n-1].ID, nil
	}
	if state.ChatIndex(arg) < 0 {
		return "", fmt.Errorf("chat no encontrado: %s", arg)
	}
	return arg, nil
}

// printChatList prints the cached chats in backend order.
func printChatList(w io.Writer, state session.State, now time.Time) {
	if len(state.Chats) == 0 {
		fmt.Fprintln(w, "No hay chats guardados.")
		return
	}
	for i, c := range state.Chats {
		marker := " "
		if c.ID == state.CurrentChatID {
			marker = "*"
		}
		age := model.RelativeAge(c.Updated(), now)
		fmt.Fprintf(w, "%s%3d. %s", marker, i+1, c.Title)
		if age != "" {
			dimColor.Fprintf(w, "  %s", age)
		}
		fmt.Fprintln(w)
	}
}
