package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/ui"
)

func newInfoCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Read firmware information",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the firmware version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := c.client()
				if err != nil {
					return err
				}
				v, err := client.Version(cmd.Context())
				if err != nil {
					return err
				}
				return c.render(map[string]string{"version": v}, func() string {
					return v + "\n"
				})
			},
		},
		newScreenCmd(c),
		newNameListCmd(c, "effects", "List the available background effects", (*awtrix.Client).Effects),
		newNameListCmd(c, "transitions", "List the available app transitions", (*awtrix.Client).Transitions),
	)
	return cmd
}

func newNameListCmd(c *cli, use, short string, fetch func(*awtrix.Client, context.Context) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			names, err := fetch(client, cmd.Context())
			if err != nil {
				return err
			}
			return c.render(names, func() string {
				if len(names) == 0 {
					return "None reported\n"
				}
				return strings.Join(names, "\n") + "\n"
			})
		},
	}
}

func newScreenCmd(c *cli) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Show what the matrix is displaying right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			if raw {
				values, err := client.ScreenRaw(cmd.Context())
				if err != nil {
					return err
				}
				data, err := ui.MarshalJSON(values)
				if err != nil {
					return err
				}
				_, err = c.stdout.Write(data)
				return err
			}
			screen, err := client.Screen(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(screen, func() string {
				return ui.RenderScreen(screen, c.out.Colored())
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the packed 0xRRGGBB pixel values as a JSON array")
	return cmd
}
