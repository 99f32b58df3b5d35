package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
)

func newAppCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Navigate the app loop",
	}
	cmd.AddCommand(
		newAppListCmd(c),
		newAppStepCmd(c, "next", "Show the next app in the loop", awtrix.Controller.NextApp),
		newAppStepCmd(c, "previous", "Show the previous app in the loop", awtrix.Controller.PreviousApp),
		newAppSwitchCmd(c),
	)
	return cmd
}

func newAppListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the apps in the loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			loop, err := client.Loop(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(loop, loop.Format)
		},
	}
}

func newAppStepCmd(c *cli, name, short string, step func(awtrix.Controller, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := step(ctl, cmd.Context()); err != nil {
				return err
			}
			c.done("Switched to %s app", name)
			return nil
		},
	}
}

func newAppSwitchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "switch NAME",
		Short:   "Jump to an app by name",
		Example: `  awtrix app switch Time`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := awtrix.ValidateAppName(args[0]); err != nil {
				return err
			}
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.SwitchApp(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.done("Switched to '%s'", args[0])
			return nil
		},
	}
}
