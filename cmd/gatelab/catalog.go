package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/symbol"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func newGatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gates",
		Short: "List the gate kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return lipgloss.NewStyle()
				}).
				Headers("Kind", "Glyph", "Inputs", "Description")
			for _, k := range logic.Kinds() {
				t.Row(k.String(), k.Glyph(), fmt.Sprint(k.Arity()), k.Description())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table KIND",
		Short: "Print the truth table of a gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := logic.ParseKind(args[0])
			if err != nil {
				return err
			}

			headers := []string{"A", "B", k.String()}
			if k.Unary() {
				headers = []string{"A", k.String()}
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
			for _, row := range logic.TruthTable(k) {
				cells := make([]string, 0, len(row.Inputs)+1)
				for _, in := range row.Inputs {
					cells = append(cells, truthLetter(in))
				}
				t.Row(append(cells, truthLetter(row.Output))...)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}

func truthLetter(v bool) string {
	if v {
		return "T"
	}
	return "F"
}

func newSymbolCmd() *cobra.Command {
	var (
		size    int
		diagram bool
	)

	cmd := &cobra.Command{
		Use:   "symbol KIND",
		Short: "Print the SVG symbol of a gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := logic.ParseKind(args[0])
			if err != nil {
				return err
			}

			svg := symbol.Symbol(k, size)
			if diagram {
				svg = symbol.Diagram(k)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(svg))
			return err
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", symbol.DefaultSize,
		fmt.Sprintf("symbol width in pixels (%d-%d)", symbol.MinSize, symbol.MaxSize))
	cmd.Flags().BoolVar(&diagram, "diagram", false, "print the fixed-size learn diagram instead")
	return cmd
}
