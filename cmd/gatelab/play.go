package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tekmux/gatelab/internal/config"
	"github.com/tekmux/gatelab/internal/platform/logger"
	"github.com/tekmux/gatelab/internal/tui"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the sandbox in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal is owned by the UI, so logs are dropped.
			log := logger.New(io.Discard, slog.LevelError)

			local, err := newLocalSandbox(config.Default().Sandbox, log)
			if err != nil {
				return err
			}
			defer func() { _ = local.Close() }()

			return tui.Run(cmd.Context(), local.service,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
		},
	}
}
