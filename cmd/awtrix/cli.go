package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/config"
	"github.com/muurk/awtrix/internal/discovery"
	"github.com/muurk/awtrix/internal/logging"
	"github.com/muurk/awtrix/internal/mqtt"
	"github.com/muurk/awtrix/internal/ui"
)

// streams are the process I/O handles, replaced in tests
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	tty    bool // stdout is a terminal
	getenv func(string) string
}

func defaultStreams() streams {
	return streams{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		tty:    ui.IsTerminal(os.Stdout),
		getenv: os.Getenv,
	}
}

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	device     string
	configPath string
	format     string
	json       bool
	timeout    time.Duration
	verbose    bool
	logLevel   string
	mqttURL    string
	mqttPrefix string
	yes        bool
	noColor    bool
}

// cli carries the state a command needs once the root pre-run has loaded
// the configuration
type cli struct {
	streams
	flags globalFlags

	cfg     *config.Config
	cfgPath string
	format  ui.Format
	out     *ui.Printer

	httpClient *http.Client
	publisher  *mqtt.Publisher

	// scan finds devices on the local network
	scan func(ctx context.Context, timeout time.Duration) ([]*discovery.Device, error)
}

func newCLI(s streams) *cli {
	return &cli{streams: s, scan: discovery.ScanForDevices}
}

// setup loads config, initializes logging and picks the output format
func (c *cli) setup(cmd *cobra.Command) error {
	path := c.flags.configPath
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg, c.cfgPath = cfg, path

	level := c.flags.logLevel
	if level == "" && c.flags.verbose {
		level = "debug"
	}
	if level == "" {
		level = c.getenv(logging.LogLevelEnvVar)
	}
	if level == "" {
		level = cfg.Preferences.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}

	format := cfg.Preferences.DefaultFormat
	if cmd.Flags().Changed("format") {
		format = c.flags.format
	}
	if c.flags.json {
		format = string(ui.FormatJSON)
	}
	if c.format, err = ui.ParseFormat(format); err != nil {
		return err
	}

	color := c.tty && cfg.Preferences.ColoredOutput && !c.flags.noColor
	c.out = ui.NewPrinter(c.stdout, c.stderr, color)

	logging.Debug("Configuration loaded",
		zap.String("path", path),
		zap.Int("devices", len(cfg.Devices)),
		zap.String("format", string(c.format)))
	return nil
}

// printer returns the configured printer, or a plain one when setup never ran
func (c *cli) printer() *ui.Printer {
	if c.out == nil {
		c.out = ui.NewPrinter(c.stdout, c.stderr, false)
	}
	return c.out
}

func (c *cli) close() {
	if c.publisher != nil {
		c.publisher.Close()
		c.publisher = nil
	}
	logging.Sync()
}

// text reports whether results should be printed for humans
func (c *cli) text() bool {
	return c.format == ui.FormatText
}

// done prints a success line in text mode only
func (c *cli) done(format string, args ...any) {
	if c.text() {
		c.out.Success(format, args...)
	}
}

func (c *cli) saveConfig() error {
	return c.cfg.Save(c.cfgPath)
}

// target resolves which device the command addresses
func (c *cli) target() (config.Target, error) {
	t, err := c.cfg.Resolve(c.flags.device, c.getenv)
	if err != nil {
		return t, err
	}
	logging.Debug("Resolved device",
		zap.String("host", t.Host),
		zap.String("name", t.Name),
		zap.String("source", string(t.Source)))
	return t, nil
}

func (c *cli) requestTimeout(d *config.Device) time.Duration {
	if c.flags.timeout > 0 {
		return c.flags.timeout
	}
	return d.RequestTimeout()
}

// clientFor builds an HTTP client for host sharing one pooled transport
func (c *cli) clientFor(host string, d *config.Device) (*awtrix.Client, error) {
	if c.httpClient == nil {
		opts := awtrix.DefaultTransportOptions()
		opts.Timeout = c.requestTimeout(d)
		c.httpClient = awtrix.NewHTTPClient(opts)
	}
	return awtrix.NewClient(host,
		awtrix.WithHTTPClient(c.httpClient),
		awtrix.WithLogger(logging.Named("http")),
	)
}

// client returns an HTTP client for the resolved device
func (c *cli) client() (*awtrix.Client, error) {
	t, err := c.target()
	if err != nil {
		return nil, err
	}
	return c.clientFor(t.Host, t.Device)
}

// controller returns the transport for write commands: MQTT when --mqtt is
// set, HTTP otherwise
func (c *cli) controller(ctx context.Context) (awtrix.Controller, error) {
	if c.flags.mqttURL == "" {
		return c.client()
	}
	if c.publisher != nil {
		return c.publisher, nil
	}

	prefix := c.flags.mqttPrefix
	var device *config.Device
	if t, err := c.target(); err == nil {
		device = t.Device
	} else if !errors.Is(err, config.ErrNoDevice) {
		return nil, err
	}
	if prefix == "" {
		prefix = device.Topic()
	}

	pub, err := mqtt.Connect(ctx, mqtt.Options{
		BrokerURL: c.flags.mqttURL,
		Prefix:    prefix,
		Timeout:   c.flags.timeout,
		Logger:    logging.Named("mqtt"),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", err)
	}
	c.publisher = pub
	return pub, nil
}

// requireHTTP rejects flags that need to read from the device when --mqtt is set
func (c *cli) requireHTTP(flag string) error {
	if c.flags.mqttURL != "" {
		return awtrix.NewValidationError(flag + " needs the HTTP API and cannot be used with --mqtt")
	}
	return nil
}

// confirm asks before a destructive operation unless --yes was given
func (c *cli) confirm(title string, warnings ...string) bool {
	if c.flags.yes {
		return true
	}
	return c.out.ConfirmDangerous(c.stdin, title, warnings)
}

// render prints v in the selected format
func (c *cli) render(v any, text func() string) error {
	return c.out.Render(c.format, v, text)
}

// spin runs fn behind a spinner when stderr is an interactive terminal
func (c *cli) spin(ctx context.Context, label string, fn func(context.Context) error) error {
	if f, ok := c.stderr.(*os.File); ok && c.tty && c.text() {
		return ui.RunWithSpinner(ctx, f, label, fn)
	}
	return fn(ctx)
}
