// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the nutrirag command tree. Running it without a
// subcommand opens the chat screen.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "nutrirag",
		Short: "Asistente nutricional NutriRAG en la terminal",
		Long: `NutriRAG responde preguntas de nutrición con guías oficiales (FAO, OPS,
GABA SESAL) y cita sus fuentes. Sin subcomando abre la pantalla de chat.

Tus datos clínicos se guardan solo en este equipo y se envían únicamente
con las preguntas clínicas.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.nutrirag/config.toml)")
	flags.StringVar(&a.apiURL, "api-url", "", "backend base URL (overrides api.base_url)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.jsonOutput, "json", false, "print machine-readable JSON where supported")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Reason: err.Error()}
	})

	root.AddCommand(
		newChatCommand(a),
		newAskCommand(a),
		newChatsCommand(a),
		newProfileCommand(a),
		newStatusCommand(a),
		newConfigCommand(a),
		newMockServerCommand(a),
		newVersionCommand(),
	)
	return root
}

// usageArgs marks argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &UsageError{Reason: err.Error()}
		}
		return nil
	}
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	red := color.New(color.FgRed, color.Bold)
	red.Fprint(stderr, "Error: ")
	fmt.Fprintln(stderr, err)
	if ExitCode(err) == ExitUsageError {
		fmt.Fprintf(stderr, "Ejecuta '%s --help' para ver el uso.\n", root.CommandPath())
	}
	return ExitCode(err)
}
