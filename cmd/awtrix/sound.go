package main

import (
	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
)

func newSoundCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sound",
		Short: "Play sounds on the device buzzer",
	}

	play := &cobra.Command{
		Use:     "play NAME",
		Short:   "Play a melody stored on the device",
		Example: `  awtrix sound play alarm`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.PlaySound(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.done("Playing '%s'", args[0])
			return nil
		},
	}

	rtttl := &cobra.Command{
		Use:     "rtttl MELODY",
		Short:   "Play an RTTTL melody",
		Example: `  awtrix sound rtttl "beep:d=32,o=7,b=120:a,P,c#"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := awtrix.ValidateRTTTL(args[0]); err != nil {
				return err
			}
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.PlayRTTTL(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.done("Playing melody")
			return nil
		},
	}

	r2d2 := &cobra.Command{
		Use:   "r2d2",
		Short: "Play a random R2-D2 style sound",
		Long: `Play a random R2-D2 style sound.

Only available over HTTP; the firmware has no MQTT topic for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			if err := client.PlayR2D2(cmd.Context()); err != nil {
				return err
			}
			c.done("Beep boop")
			return nil
		},
	}

	cmd.AddCommand(play, rtttl, r2d2)
	return cmd
}
