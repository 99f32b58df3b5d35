package main

import (
	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
)

func newPowerCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "power on|off",
		Short:     "Turn the matrix on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		Example: `  awtrix power off
  awtrix power on --device kitchen`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch args[0] {
			case "on":
				on = true
			case "off":
			default:
				return awtrix.NewValidationError("power state must be 'on' or 'off'")
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.SetPower(cmd.Context(), on); err != nil {
				return err
			}
			c.done("Matrix turned %s", args[0])
			return nil
		},
	}
}

func newSleepCmd(c *cli) *cobra.Command {
	var duration int

	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Put the device into deep sleep",
		Long: `Put the device into deep sleep for the given number of seconds.

The device wakes up on its own when the time runs out, or when its middle
button is pressed.`,
		Example: `  awtrix sleep --duration 3600`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := awtrix.ValidateSleepDuration(duration); err != nil {
				return err
			}
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.Sleep(cmd.Context(), uint32(duration)); err != nil {
				return err
			}
			c.done("Device sleeping for %ds", duration)
			return nil
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 0, "Sleep duration in seconds")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}
