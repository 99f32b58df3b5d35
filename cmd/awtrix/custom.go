package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/logging"
)

func newCustomCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage custom apps",
		Long: `Create, delete and live-update custom apps.

Custom apps are named entries in the device's app loop. The device has no
endpoint that lists them; 'awtrix app list' shows the whole loop.`,
	}
	cmd.AddCommand(newCustomCreateCmd(c), newCustomDeleteCmd(c), newCustomWatchCmd(c))
	return cmd
}

func newCustomCreateCmd(c *cli) *cobra.Command {
	var (
		msg      messageFlags
		lifetime uint32
		save     bool
		pos      uint32
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create or replace a custom app",
		Example: `  awtrix custom create weather --text "21°C" --icon 2355
  awtrix custom create ci --text "passing" --color green --lifetime 600
  awtrix custom create stocks --file stocks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := awtrix.ValidateAppName(name); err != nil {
				return err
			}

			var app awtrix.CustomApp
			if msg.file != "" {
				loaded, err := readJSONFile[awtrix.CustomApp](msg.file, c.stdin)
				if err != nil {
					return err
				}
				app = loaded
			} else {
				b := awtrix.NewCustomAppBuilder()
				if err := applyMessage(b, &msg, cmd.Flags()); err != nil {
					return err
				}
				if cmd.Flags().Changed("lifetime") {
					b.Lifetime(lifetime)
				}
				if save {
					b.Save(true)
				}
				if cmd.Flags().Changed("pos") {
					b.Pos(pos)
				}
				app = b.Build()
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.CreateCustomApp(cmd.Context(), name, app); err != nil {
				return err
			}
			c.done("Custom app '%s' created", name)
			return nil
		},
	}

	msg.bind(cmd.Flags())
	cmd.Flags().Uint32Var(&lifetime, "lifetime", 0, "Remove the app after this many seconds without updates")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the app across reboots")
	cmd.Flags().Uint32Var(&pos, "pos", 0, "Position in the app loop")
	return cmd
}

func newCustomDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a custom app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := awtrix.ValidateAppName(args[0]); err != nil {
				return err
			}
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.DeleteCustomApp(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.done("Custom app '%s' deleted", args[0])
			return nil
		},
	}
}

func newCustomWatchCmd(c *cli) *cobra.Command {
	var (
		file     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch NAME",
		Short: "Keep a custom app in sync with a JSON file",
		Long: `Post the app from a JSON file, then re-post it whenever the file's
modification time changes. Runs until interrupted with Ctrl+C.

Parse and device errors are reported and the push is retried at the next
interval.`,
		Example: `  awtrix custom watch weather --file weather.json --interval 10s`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := awtrix.ValidateAppName(name); err != nil {
				return err
			}
			if interval <= 0 {
				return awtrix.NewValidationError("--interval must be positive")
			}
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("watching %s: %w", file, err)
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}

			if c.text() {
				c.out.Printf("Watching %s for app '%s' (every %s, Ctrl+C to stop)\n", file, name, interval)
			}
			return watchFile(cmd.Context(), file, interval, func() error {
				app, err := readJSONFile[awtrix.CustomApp](file, nil)
				if err != nil {
					return err
				}
				if err := ctl.CreateCustomApp(cmd.Context(), name, app); err != nil {
					return err
				}
				c.done("Updated app '%s' from %s", name, file)
				return nil
			}, func(err error) {
				logging.Warn("Custom app update failed", zap.String("app", name), zap.Error(err))
				c.out.Warn("update failed: %s", awtrix.GetShortErrorMessage(err))
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding the app")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "How often to check the file for changes")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// watchFile calls push once, then again each time path's mtime changes,
// until ctx ends. A failed push goes to report and is retried on the next
// tick.
func watchFile(ctx context.Context, path string, interval time.Duration, push func() error, report func(error)) error {
	var last time.Time
	check := func() {
		info, err := os.Stat(path)
		if err != nil {
			report(err)
			return
		}
		if info.ModTime().Equal(last) {
			return
		}
		if err := push(); err != nil {
			report(err)
			return
		}
		last = info.ModTime()
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			check()
		}
	}
}
