package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tekmux/gatelab/internal/config"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/platform/logger"
)

// errIncorrect makes the check command exit non-zero.
var errIncorrect = errors.New("circuit does not match the target")

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E53935"))
)

func newCheckCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "check CHALLENGE [KIND...]",
		Short: "Check gates, placed in order, against a challenge",
		Example: `  gatelab check 1 AND
  gatelab check 3 NOT AND OR
  gatelab check --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := newLocalSandbox(config.Default().Sandbox, logger.New(io.Discard, slog.LevelError))
			if err != nil {
				return err
			}
			defer func() { _ = local.Close() }()

			out := cmd.OutOrStdout()
			if list {
				for _, ch := range local.service.Challenges() {
					fmt.Fprintf(out, "%s  %-22s %-7s %s\n", ch.ID, ch.Title, ch.Difficulty, ch.Target)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("a challenge id is required")
			}

			kinds := make([]logic.Kind, 0, len(args)-1)
			for _, arg := range args[1:] {
				k, err := logic.ParseKind(arg)
				if err != nil {
					return err
				}
				kinds = append(kinds, k)
			}

			ctx := cmd.Context()
			svc := local.service
			snap, err := svc.CreateSession(ctx)
			if err != nil {
				return err
			}
			if _, err := svc.SelectMode(ctx, snap.SessionID, domain.ModeChallenges); err != nil {
				return err
			}
			if _, err := svc.StartChallenge(ctx, snap.SessionID, args[0]); err != nil {
				return err
			}
			for i, k := range kinds {
				p := domain.Point{X: float64(i) * 120, Y: 0}
				if _, err := svc.PlaceGate(ctx, snap.SessionID, domain.WorkspaceChallenge, k, p); err != nil {
					return err
				}
			}

			result, err := svc.CheckChallenge(ctx, snap.SessionID)
			if err != nil {
				return err
			}
			if result.Correct {
				fmt.Fprintln(out, passStyle.Render(result.Message))
				return nil
			}
			fmt.Fprintln(out, failStyle.Render(result.Message))
			if result.FailingCase != nil {
				fmt.Fprintf(out, "fails at %s\n", result.FailingCase)
			}
			return errIncorrect
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the challenges")
	return cmd
}
