package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/ui"
)

// timestampLayout names export and backup files
const timestampLayout = "20060102_150405"

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change device settings",
		Long: `Read and change device settings.

Keys use snake_case; nested groups are addressed with a dot, for example
time_app.format. Run 'awtrix settings list' for every key.`,
	}
	cmd.AddCommand(
		newSettingsGetCmd(c),
		newSettingsSetCmd(c),
		newSettingsListCmd(c),
		newSettingsExportCmd(c),
		newSettingsImportCmd(c),
	)
	return cmd
}

func newSettingsGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get [KEY]",
		Short: "Show all settings, or one key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			s, err := client.Settings(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return c.render(s, s.Format)
			}

			key := args[0]
			value, ok, err := awtrix.SettingValue(&s, key)
			if err != nil {
				return err
			}
			out := map[string]any{"key": key, "value": nil}
			if ok {
				out["value"] = value
			}
			return c.render(out, func() string {
				if !ok {
					return "(not set)\n"
				}
				return value + "\n"
			})
		},
	}
}

func newSettingsSetCmd(c *cli) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting",
		Example: `  awtrix settings set brightness 120
  awtrix settings set text_color "#00FF00"
  awtrix settings set time_app.format 2
  awtrix settings set brightness 40 --verify`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			update, err := awtrix.ApplySetting(awtrix.Settings{}, key, value)
			if err != nil {
				return err
			}
			if verify {
				if err := c.requireHTTP("--verify"); err != nil {
					return err
				}
				return c.safeUpdate(cmd, update, fmt.Sprintf("Set %s = %s", key, value))
			}

			// Over MQTT the current settings cannot be read, so only the
			// changed key is sent.
			var current awtrix.Settings
			if c.flags.mqttURL == "" {
				client, err := c.client()
				if err != nil {
					return err
				}
				if current, err = client.Settings(cmd.Context()); err != nil {
					return err
				}
			}

			updated, err := awtrix.ApplySetting(current, key, value)
			if err != nil {
				return err
			}

			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.UpdateSettings(cmd.Context(), updated); err != nil {
				return err
			}
			c.done("Set %s = %s", key, value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Read the setting back and restore the old settings if it did not apply")
	return cmd
}

func newSettingsListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the known settings keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := awtrix.SettingKeys()

			type row struct {
				Key         string `json:"key"`
				Type        string `json:"type"`
				Description string `json:"description"`
			}
			rows := make([]row, len(keys))
			for i, k := range keys {
				rows[i] = row{k.Key, k.Type, k.Description}
			}

			return c.render(rows, func() string {
				var b strings.Builder
				for _, k := range keys {
					fmt.Fprintf(&b, "%-26s %-14s %s\n", k.Key, k.Type, k.Description)
				}
				return b.String()
			})
		},
	}
}

func newSettingsExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE|-]",
		Short: "Save the device settings as JSON",
		Long: `Save the device settings as JSON.

Without FILE the settings go to awtrix3_settings_YYYYMMDD_HHMMSS.json in
the current directory. Use '-' to write to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			s, err := client.Settings(cmd.Context())
			if err != nil {
				return err
			}

			data, err := ui.MarshalJSON(s)
			if err != nil {
				return awtrix.NewSerializationError("failed to encode settings", err)
			}

			path := fmt.Sprintf("awtrix3_settings_%s.json", time.Now().Format(timestampLayout))
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				_, err := c.stdout.Write(data)
				return err
			}

			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			c.done("Settings exported to %s", path)
			return nil
		},
	}
}

func newSettingsImportCmd(c *cli) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "import FILE|-",
		Short: "Apply settings from a JSON file",
		Long: `Apply settings from a JSON file, such as one written by 'settings export'.

Only the keys present in the file are changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readJSONFile[awtrix.Settings](args[0], c.stdin)
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if verify {
				if err := c.requireHTTP("--verify"); err != nil {
					return err
				}
				return c.safeUpdate(cmd, s, "Settings imported from "+args[0])
			}
			ctl, err := c.controller(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.UpdateSettings(cmd.Context(), s); err != nil {
				return err
			}
			c.done("Settings imported from %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Read the settings back and restore the old ones if they did not apply")
	return cmd
}

// safeUpdate writes s with read-back verification, rolling back on mismatch
func (c *cli) safeUpdate(cmd *cobra.Command, s awtrix.Settings, success string) error {
	client, err := c.client()
	if err != nil {
		return err
	}

	var result *awtrix.SafeUpdateResult
	err = c.spin(cmd.Context(), "Applying and verifying settings", func(ctx context.Context) error {
		result = client.SafeUpdateSettings(ctx, s, nil)
		return nil
	})
	if err != nil {
		return err
	}
	if result.Success {
		c.done("%s (verified)", success)
		return nil
	}

	if result.RollbackSucceeded && c.text() {
		c.out.Warn("Device did not apply the change; previous settings restored")
	}
	if result.Update != nil {
		for _, m := range result.Update.Mismatches {
			c.out.Hint("  %s", m)
		}
	}
	return result.Error
}
