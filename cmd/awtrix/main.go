// Awtrix is a command-line controller for AWTRIX3 LED matrix clocks.
//
// It drives the device's HTTP API (and optionally its MQTT topics) to send
// notifications, manage custom apps, change settings, and inspect device
// state. Devices can be discovered over mDNS and saved by name.
//
// Usage:
//
//	awtrix [command] [flags]
//
// See 'awtrix --help' for available commands.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

// errReported marks a failure the command has already shown to the user
var errReported = errors.New("failure already reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], defaultStreams())
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, s streams) int {
	return execute(ctx, newCLI(s), args)
}

func execute(ctx context.Context, c *cli, args []string) int {
	root := newRootCmd(c)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	c.close()
	if err != nil {
		if !errors.Is(err, errReported) {
			c.printer().Error(err)
		}
		return 1
	}
	return 0
}
