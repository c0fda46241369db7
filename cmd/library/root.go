package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/library/pkg/config"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "library",
		Short:         "Library manager",
		Long:          `Library manager for books, patrons and loans.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files loaded before the environment is read")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}
