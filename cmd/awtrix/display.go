package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
)

func newDisplayCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "display",
		Short: "Control the matrix lighting",
	}
	cmd.AddCommand(newMoodCmd(c))
	return cmd
}

func newMoodCmd(c *cli) *cobra.Command {
	var (
		brightness uint8
		color      string
		kelvin     int
		off        bool
	)

	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Fill the matrix with a single ambient color",
		Long: `Turn the whole matrix into a mood light.

The color is given either as --color or as a white temperature with
--kelvin. Use --off to leave mood light mode and return to the app loop.`,
		Example: `  awtrix display mood --color orange --brightness 120
  awtrix display mood --kelvin 2700
  awtrix display mood --off`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m awtrix.MoodLight
			if !off {
				if color != "" && cmd.Flags().Changed("kelvin") {
					return awtrix.NewValidationError("--color and --kelvin cannot be combined")
				}
				if color == "" && !cmd.Flags().Changed("kelvin") {
					return awtrix.NewValidationError("one of --color, --kelvin or --off is required")
				}
				if cmd.Flags().Changed("brightness") {
					m.Brightness = awtrix.Ptr(brightness)
				}
				if err := withColor(color, func(col awtrix.Color) { m.Color = &col }); err != nil {
					return err
				}
				if cmd.Flags().Changed("kelvin") {
					if err := awtrix.ValidateKelvin(kelvin); err != nil {
						return err
					}
					m.Kelvin = awtrix.Ptr(uint16(kelvin))
				}
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.SetMoodLight(cmd.Context(), m); err != nil {
				return err
			}
			if off {
				c.done("Mood light off")
			} else {
				c.done("Mood light on")
			}
			return nil
		},
	}

	cmd.Flags().Uint8Var(&brightness, "brightness", 0, "Brightness (0-255)")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Light color")
	cmd.Flags().IntVar(&kelvin, "kelvin", 0, fmt.Sprintf("White temperature in kelvin (%d-%d)", awtrix.MinKelvin, awtrix.MaxKelvin))
	cmd.Flags().BoolVar(&off, "off", false, "Turn the mood light off")
	return cmd
}

func newIndicatorCmd(c *cli) *cobra.Command {
	var (
		color string
		off   bool
	)

	cmd := &cobra.Command{
		Use:   "indicator 1|2|3|all",
		Short: "Light or clear the corner indicators",
		Example: `  awtrix indicator 1 --color red
  awtrix indicator all --off`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"1", "2", "3", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := awtrix.ParseIndicators(args[0])
			if err != nil {
				return err
			}
			if off == (color != "") {
				return awtrix.NewValidationError("exactly one of --color or --off is required")
			}

			var col *awtrix.Color
			if err := withColor(color, func(parsed awtrix.Color) { col = &parsed }); err != nil {
				return err
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range numbers {
				if err := ctl.SetIndicator(cmd.Context(), n, col); err != nil {
					return fmt.Errorf("indicator %d: %w", n, err)
				}
			}

			if col == nil {
				c.done("Indicator %s cleared", args[0])
			} else {
				c.done("Indicator %s set to %s", args[0], col.Hex())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Indicator color")
	cmd.Flags().BoolVar(&off, "off", false, "Turn the indicator off")
	return cmd
}
