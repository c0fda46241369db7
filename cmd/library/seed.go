package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/library/svc/library/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		file   string
		prefix string
		start  int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load YAML fixtures into the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixtures, err := seed.Load(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = seed.Apply(ctx, a.svc, fixtures, seed.NewSequence(prefix, start), a.log)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "fixtures.yaml", "fixtures file")
	cmd.Flags().StringVar(&prefix, "id-prefix", seed.DefaultPrefix, "prefix of generated library ids")
	cmd.Flags().IntVar(&start, "id-start", 1001, "first number of generated library ids")
	return cmd
}
