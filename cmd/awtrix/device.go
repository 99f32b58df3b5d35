package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/config"
	"github.com/muurk/awtrix/internal/discovery"
	"github.com/muurk/awtrix/internal/logging"
	"github.com/muurk/awtrix/internal/ui"
)

// probeTimeout bounds the reachability check of one device
const probeTimeout = 3 * time.Second

func newDeviceCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage configured devices",
		Long: `Find AWTRIX3 devices on the network and manage the named devices in the
configuration file.`,
	}
	cmd.AddCommand(
		newDeviceDiscoverCmd(c),
		newDeviceAddCmd(c),
		newDeviceRemoveCmd(c),
		newDeviceListCmd(c),
		newDeviceTestCmd(c),
		newDeviceDefaultCmd(c),
	)
	return cmd
}

// probe fetches the firmware version of host, bounded by probeTimeout
func (c *cli) probe(ctx context.Context, host string, d *config.Device) (string, error) {
	client, err := c.clientFor(host, d)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return client.Version(ctx)
}

type discoveredDevice struct {
	Name    string `json:"name"`
	Host    string `json:"host"`
	IP      string `json:"ip"`
	Port    int    `json:"port"`
	Version string `json:"version,omitempty"`
	Added   bool   `json:"added,omitempty"`
}

// configName turns an mDNS instance name into a config device name
func configName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

func newDeviceDiscoverCmd(c *cli) *cobra.Command {
	var (
		timeout time.Duration
		add     bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find AWTRIX3 devices with mDNS",
		Example: `  awtrix device discover
  awtrix device discover --timeout 10s --add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("timeout") {
				timeout = time.Duration(c.cfg.Preferences.DiscoveryTimeout) * time.Second
			}
			if timeout <= 0 {
				timeout = discovery.DefaultScanTimeout
			}

			var found []*discovery.Device
			err := c.spin(cmd.Context(), "Scanning for AWTRIX3 devices", func(ctx context.Context) error {
				var err error
				found, err = c.scan(ctx, timeout)
				return err
			})
			if err != nil {
				return err
			}

			rows := make([]discoveredDevice, len(found))
			for i, d := range found {
				rows[i] = discoveredDevice{Name: d.Name, Host: d.Address(), IP: d.IP, Port: d.Port}
				if v, err := c.probe(cmd.Context(), d.Address(), nil); err == nil {
					rows[i].Version = v
				} else {
					logging.Debug("Discovered device did not answer",
						zap.String("host", d.Address()), zap.Error(err))
				}

				if add {
					name := configName(d.Name)
					if c.cfg.Device(name) == nil {
						c.cfg.AddDevice(name, d.Address(), false)
						rows[i].Added = true
					}
				}
			}
			if add {
				if err := c.saveConfig(); err != nil {
					return err
				}
			}

			return c.render(rows, func() string {
				if len(rows) == 0 {
					return "No AWTRIX3 devices found\n"
				}
				var b strings.Builder
				fmt.Fprintf(&b, "Found %d device(s):\n", len(rows))
				for _, r := range rows {
					version := r.Version
					if version == "" {
						version = "unreachable"
					}
					fmt.Fprintf(&b, "  %-20s %-22s %s", r.Name, r.Host, version)
					if r.Added {
						fmt.Fprintf(&b, "  (added as %s)", configName(r.Name))
					}
					b.WriteString("\n")
				}
				return b.String()
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", discovery.DefaultScanTimeout, "How long to listen for devices")
	cmd.Flags().BoolVar(&add, "add", false, "Add new devices to the configuration")
	return cmd
}

func newDeviceAddCmd(c *cli) *cobra.Command {
	var (
		makeDefault bool
		noVerify    bool
	)

	cmd := &cobra.Command{
		Use:   "add NAME HOST",
		Short: "Add a named device",
		Example: `  awtrix device add living-room 192.168.1.50
  awtrix device add desk awtrix-desk.local --default`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, host := args[0], args[1]
			if strings.TrimSpace(name) == "" {
				return awtrix.NewValidationError("device name cannot be empty")
			}

			if !noVerify {
				v, err := c.probe(cmd.Context(), host, nil)
				if err != nil {
					c.out.Hint("Could not reach %s. Use --no-verify to add it anyway.", host)
					return err
				}
				logging.Debug("Verified device", zap.String("host", host), zap.String("version", v))
			}

			c.cfg.AddDevice(name, host, makeDefault)
			if err := c.saveConfig(); err != nil {
				return err
			}
			if c.cfg.DefaultDevice == name {
				c.done("Added device '%s' (%s) as default", name, host)
			} else {
				c.done("Added device '%s' (%s)", name, host)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&makeDefault, "default", false, "Make this the default device")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Do not check that the device answers")
	return cmd
}

func newDeviceRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a named device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			wasDefault := c.cfg.DefaultDevice == name
			if err := c.cfg.RemoveDevice(name); err != nil {
				return err
			}
			if err := c.saveConfig(); err != nil {
				return err
			}
			c.done("Removed device '%s'", name)
			if wasDefault && c.cfg.DefaultDevice != "" && c.text() {
				c.out.Hint("Default device is now '%s'", c.cfg.DefaultDevice)
			}
			return nil
		},
	}
}

type deviceStatus struct {
	Name    string `json:"name"`
	Host    string `json:"host"`
	Default bool   `json:"default"`
	Online  bool   `json:"online"`
	Version string `json:"version,omitempty"`
}

func newDeviceListCmd(c *cli) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured devices and whether they are online",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := c.cfg.DeviceNames()
			rows := make([]deviceStatus, len(names))
			for i, name := range names {
				d := c.cfg.Device(name)
				rows[i] = deviceStatus{Name: name, Host: d.Host, Default: name == c.cfg.DefaultDevice}
				if offline {
					continue
				}
				if v, err := c.probe(cmd.Context(), d.Host, d); err == nil {
					rows[i].Online, rows[i].Version = true, v
				}
			}

			return c.render(rows, func() string {
				if len(rows) == 0 {
					return "No devices configured. Add one with 'awtrix device add NAME HOST'.\n"
				}
				var b strings.Builder
				for _, r := range rows {
					marker := " "
					if r.Default {
						marker = "*"
					}
					status := "offline"
					switch {
					case offline:
						status = ""
					case r.Online:
						status = "online " + r.Version
					}
					fmt.Fprintf(&b, "%s %-20s %-22s %s\n", marker, r.Name, r.Host, status)
				}
				return b.String()
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "no-check", false, "Skip the online check")
	return cmd
}

type deviceTest struct {
	Host       string        `json:"host"`
	Online     bool          `json:"online"`
	Version    string        `json:"version,omitempty"`
	VersionRTT time.Duration `json:"version_rtt_ns,omitempty"`
	StatsRTT   time.Duration `json:"stats_rtt_ns,omitempty"`
	Uptime     string        `json:"uptime,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func newDeviceTestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "test [NAME]",
		Short: "Check that a device answers and measure its response time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				host   string
				device *config.Device
			)
			if len(args) == 1 {
				device = c.cfg.Device(args[0])
				if device == nil {
					return fmt.Errorf("device %q: %w", args[0], config.ErrDeviceNotFound)
				}
				host = device.Host
			} else {
				t, err := c.target()
				if err != nil {
					return err
				}
				host, device = t.Host, t.Device
			}

			client, err := c.clientFor(host, device)
			if err != nil {
				return err
			}

			res := deviceTest{Host: host}
			start := time.Now()
			res.Version, err = client.Version(cmd.Context())
			res.VersionRTT = time.Since(start)
			if err == nil {
				start = time.Now()
				var stats awtrix.Stats
				stats, err = client.Stats(cmd.Context())
				res.StatsRTT = time.Since(start)
				res.Uptime = awtrix.FormatUptime(stats.Uptime)
			}
			res.Online = err == nil
			if err != nil {
				res.Error = awtrix.GetShortErrorMessage(err)
			}

			if !c.text() {
				if renderErr := c.render(res, nil); renderErr != nil {
					return renderErr
				}
				return err
			}

			if err != nil {
				var tips []string
				if hint := awtrix.GetTroubleshootingHint(err); hint != "" {
					tips = strings.Split(hint, "\n")
				}
				c.out.PrintResult(ui.NewFailureResult("Device unreachable", err, tips...).
					AddDetail("Host", host))
				return errReported
			}
			c.out.PrintResult(ui.NewSuccessResult("Device online").
				AddDetail("Host", host).
				AddDetail("Firmware", res.Version).
				AddDetail("Uptime", res.Uptime).
				AddDetail("Version request", res.VersionRTT.Round(time.Millisecond).String()).
				AddDetail("Stats request", res.StatsRTT.Round(time.Millisecond).String()))
			return nil
		},
	}
}

func newDeviceDefaultCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "default NAME",
		Short: "Set the default device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.SetDefault(args[0]); err != nil {
				return err
			}
			if err := c.saveConfig(); err != nil {
				return err
			}
			c.done("Default device is now '%s'", args[0])
			return nil
		},
	}
}
