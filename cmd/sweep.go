package main

import (
	"github.com/spf13/cobra"
)

func newSweepCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Take the expiry lease, run one sweep and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.close(c.logger)

			return a.expirer.Tick(cmd.Context())
		},
	}
}
