package config

import (
	"errors"
	"fmt"
)

// DeviceEnvVar names a device host when --device is not given
const DeviceEnvVar = "AWTRIX_DEVICE"

var (
	// ErrNoDevice is returned when no resolution path produced a host
	ErrNoDevice = errors.New("no device specified: use --device, set " + DeviceEnvVar + ", or configure a default device")

	// ErrDeviceNotFound is returned when a named device is not in the config
	ErrDeviceNotFound = errors.New("device not found in config")
)

// Source records which resolution path picked the device
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceDefault Source = "default"
)

// Target is a resolved device
type Target struct {
	Host   string
	Name   string  // config name, empty for a literal host
	Device *Device // nil for a literal host
	Source Source
}

// Resolve picks the device to talk to, in order:
//  1. explicit, as a configured name and otherwise as a literal host
//  2. the AWTRIX_DEVICE environment variable, as a literal host
//  3. the configured default device
func (c *Config) Resolve(explicit string, getenv func(string) string) (Target, error) {
	if explicit != "" {
		if d := c.Device(explicit); d != nil {
			return Target{Host: d.Host, Name: explicit, Device: d, Source: SourceFlag}, nil
		}
		return Target{Host: explicit, Source: SourceFlag}, nil
	}

	if getenv != nil {
		if host := getenv(DeviceEnvVar); host != "" {
			return Target{Host: host, Source: SourceEnv}, nil
		}
	}

	if c.DefaultDevice != "" {
		d := c.Device(c.DefaultDevice)
		if d == nil {
			return Target{}, fmt.Errorf("default device %q: %w", c.DefaultDevice, ErrDeviceNotFound)
		}
		return Target{Host: d.Host, Name: c.DefaultDevice, Device: d, Source: SourceDefault}, nil
	}

	return Target{}, ErrNoDevice
}

// ResolveHost is Resolve reduced to the host string
func (c *Config) ResolveHost(explicit string, getenv func(string) string) (string, error) {
	t, err := c.Resolve(explicit, getenv)
	if err != nil {
		return "", err
	}
	return t.Host, nil
}
