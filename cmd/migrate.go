package main

import (
	"github.com/spf13/cobra"

	"mesa-boost/internal/db"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Migrate(c.cfg.Psql.Addr.String()); err != nil {
				return err
			}
			c.logger.Info("migrations applied successfully")
			return nil
		},
	}
}
