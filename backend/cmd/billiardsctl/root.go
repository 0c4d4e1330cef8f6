package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "billiardsctl",
		Short:         "Operator tooling for the billiards cafe backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newMigrateCmd(),
		newQuoteCmd(),
		newHashPINCmd(),
	)

	return root
}
