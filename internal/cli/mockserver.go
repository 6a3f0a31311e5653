// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/nutrirag-tui/internal/logging"
	"github.com/jeranaias/nutrirag-tui/internal/mockapi"
)

const shutdownTimeout = 5 * time.Second

type mockServerOptions struct {
	addr    string
	latency time.Duration
	seed    bool
}

func newMockServerCommand(a *app) *cobra.Command {
	var opts mockServerOptions
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Ejecuta un servidor de prueba en memoria",
		Long: `Sirve la API HTTP de NutriRAG desde memoria para probar el cliente sin
el servidor de recuperación. Las respuestas y fuentes son fijas (FAO, OPS,
GABA SESAL) y los chats se pierden al detenerlo.`,
		Example: `  nutrirag mock-server --addr :8000 --latency 1500ms --seed
  nutrirag --api-url http://localhost:8000`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMockServer(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8000", "listen address")
	cmd.Flags().DurationVar(&opts.latency, "latency", 0, "delay before each answer")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "start with two demo chats")
	return cmd
}

func (a *app) runMockServer(cmd *cobra.Command, opts mockServerOptions) error {
	level := "info"
	if a.logLevel != "" {
		level = a.logLevel
	}
	format := a.cfg.Logging.Format
	if format == "text" && ColorsEnabled(cmd.ErrOrStderr()) {
		format = "color"
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: format})

	mock := mockapi.New(mockapi.Options{Logger: logger, Latency: opts.latency})
	if opts.seed {
		mock.Seed("Porciones para niños", "¿Porciones sugeridas para 7 años (GABA)?")
		mock.Seed("Reducir sodio", "Cómo reducir sodio según guía nacional")
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return NewCommandError("mock-server", "listen", opts.addr, err)
	}
	srv := &http.Server{
		Handler:           mock.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	okColor.Fprintf(cmd.OutOrStdout(), "Servidor de prueba escuchando en http://%s\n", ln.Addr())
	dimColor.Fprintln(cmd.OutOrStdout(), "Pulsa Ctrl+C para detenerlo.")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down mock server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock server shutdown: %w", err)
	}
	return nil
}
