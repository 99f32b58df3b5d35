package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/dashboard"
)

func newDashboardCmd(c *cli) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Live view of device stats and the app loop",
		Long: `Open a full-screen view that polls the device and shows its statistics
and app loop. Step through apps with the arrow keys, press m to send a
quick notification, and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.tty {
				return awtrix.NewValidationError("dashboard needs an interactive terminal")
			}
			client, err := c.client()
			if err != nil {
				return err
			}
			return dashboard.Run(cmd.Context(), client, client.Host(), interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", dashboard.DefaultInterval, "How often to poll the device")
	return cmd
}
