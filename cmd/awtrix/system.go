package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/ui"
)

func newSystemCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Device status and maintenance",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show device statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			s, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(s, s.FormatDetailed)
		},
	}

	reboot := &cobra.Command{
		Use:   "reboot",
		Short: "Restart the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.confirm("Reboot device",
				"The display goes dark until the device is back on the network.") {
				return nil
			}
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.Reboot(cmd.Context()); err != nil {
				return err
			}
			c.done("Device rebooting")
			return nil
		},
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Write the running settings to flash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			if err := client.Save(cmd.Context()); err != nil {
				return err
			}
			c.done("Settings saved to flash")
			return nil
		},
	}

	cmd.AddCommand(
		stats,
		reboot,
		newResetCmd(c, "factory-reset", "Erase the device and restore firmware defaults",
			"Factory reset",
			[]string{
				"All settings, custom apps and WiFi credentials are erased.",
				"The device restarts in access point mode.",
			},
			(*awtrix.Client).FactoryReset, "Factory reset started"),
		newResetCmd(c, "reset-settings", "Restore default settings, keeping WiFi",
			"Reset settings",
			[]string{"All settings return to firmware defaults."},
			(*awtrix.Client).ResetSettings, "Settings reset to defaults"),
		save,
		newBackupCmd(c),
	)
	return cmd
}

func newResetCmd(c *cli, use, short, title string, warnings []string, reset func(*awtrix.Client, context.Context) error, doneMsg string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.confirm(title, warnings...) {
				return nil
			}
			client, err := c.client()
			if err != nil {
				return err
			}
			if err := reset(client, cmd.Context()); err != nil {
				return err
			}
			c.done("%s", doneMsg)
			return nil
		},
	}
}

// Backup is the document written by "system backup"
type Backup struct {
	Version   string          `json:"version"`
	Stats     awtrix.Stats    `json:"stats"`
	Settings  awtrix.Settings `json:"settings"`
	Loop      awtrix.LoopInfo `json:"loop"`
	CreatedAt time.Time       `json:"created_at"`
}

type backupSummary struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func newBackupCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [FILE]",
		Short: "Save version, stats, settings and app loop to a file",
		Long: `Read the firmware version, statistics, settings and app loop and store
them in one JSON document.

Without FILE the backup goes to awtrix3_backup_YYYYMMDD_HHMMSS.json in the
current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}

			path := fmt.Sprintf("awtrix3_backup_%s.json", time.Now().Format(timestampLayout))
			if len(args) == 1 {
				path = args[0]
			}

			progress := ui.NewProgress("Backing up "+client.Host(),
				"Firmware version", "Statistics", "Settings", "App loop", "Write file")

			var size int
			err = c.spin(cmd.Context(), "Backing up "+client.Host(), func(ctx context.Context) error {
				n, err := runBackup(ctx, client, path, progress)
				size = n
				return err
			})

			if c.text() {
				if err != nil {
					progress.SkipRemaining()
				}
				c.out.PrintProgress(progress)
			}
			if err != nil {
				return err
			}

			if !c.text() {
				return c.render(backupSummary{Path: path, Bytes: size}, nil)
			}
			c.out.PrintResult(ui.NewSuccessResult("Backup complete").
				AddDetail("Device", client.Host()).
				AddDetail("File", path).
				AddDetail("Size", fmt.Sprintf("%d bytes", size)))
			return nil
		},
	}
}

// runBackup fetches each part in turn, recording progress, and writes the
// document to path. It returns the number of bytes written.
func runBackup(ctx context.Context, client *awtrix.Client, path string, progress *ui.Progress) (int, error) {
	b := Backup{CreatedAt: time.Now().UTC()}

	steps := []func() (string, error){
		func() (v string, err error) {
			b.Version, err = client.Version(ctx)
			return b.Version, err
		},
		func() (string, error) {
			s, err := client.Stats(ctx)
			b.Stats = s
			return awtrix.FormatUptime(s.Uptime) + " uptime", err
		},
		func() (string, error) {
			s, err := client.Settings(ctx)
			b.Settings = s
			return "", err
		},
		func() (string, error) {
			l, err := client.Loop(ctx)
			b.Loop = l
			return fmt.Sprintf("%d apps", len(l.Apps)), err
		},
	}

	for i, step := range steps {
		progress.StartStep(i + 1)
		msg, err := step()
		if err != nil {
			progress.FailStep(i+1, awtrix.GetShortErrorMessage(err))
			return 0, err
		}
		progress.CompleteStep(i+1, msg)
	}

	write := len(steps) + 1
	progress.StartStep(write)
	data, err := ui.MarshalJSON(b)
	if err != nil {
		progress.FailStep(write, "encode failed")
		return 0, awtrix.NewSerializationError("failed to encode backup", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		progress.FailStep(write, err.Error())
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	progress.CompleteStep(write, fmt.Sprintf("%d bytes", len(data)))
	return len(data), nil
}
