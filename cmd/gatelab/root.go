package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gatelab",
		Short: "An interactive logic gate sandbox",
		Long: `gatelab teaches digital logic: learn the six basic gates, build
circuits on a free canvas, and solve challenges against a target expression.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newPlayCmd(),
		newGatesCmd(),
		newTableCmd(),
		newSymbolCmd(),
		newCheckCmd(),
	)
	return root
}
