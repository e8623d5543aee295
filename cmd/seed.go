package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"mesa-boost/internal/db"
)

func newSeedCmd(c *cli) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo packages, profiles and wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := db.NewPostgresPool(cmd.Context(), c.cfg.Psql)
			if err != nil {
				return err
			}
			defer pool.Close()

			demo := db.Demo(seed)
			if err := db.Seed(cmd.Context(), pool, demo); err != nil {
				return err
			}
			c.logger.Info("demo data seeded",
				slog.Int("packages", len(demo.Packages)),
				slog.Int("profiles", len(demo.Profiles)))
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for generated profiles")
	return cmd
}
