package config

import (
	"fmt"
	"sort"
	"time"
)

const (
	// CurrentVersion is the config file schema version
	CurrentVersion = 1

	// DefaultDeviceTimeout is the per-device request timeout in seconds
	DefaultDeviceTimeout = 30

	// DefaultMQTTPrefix is the AWTRIX3 default MQTT topic prefix
	DefaultMQTTPrefix = "awtrix"
)

// Config represents the entire user configuration file.
type Config struct {
	Version       int                `yaml:"version"`
	DefaultDevice string             `yaml:"default_device,omitempty"`
	Devices       map[string]*Device `yaml:"devices,omitempty"` // Keyed by device name
	Preferences   *Preferences       `yaml:"preferences,omitempty"`
}

// Device is a named AWTRIX3 clock.
type Device struct {
	Host       string    `yaml:"host"`                  // IP address or hostname, optionally with port
	Name       string    `yaml:"name"`                  // Display name
	Timeout    int       `yaml:"timeout,omitempty"`     // Request timeout in seconds
	MQTTPrefix string    `yaml:"mqtt_prefix,omitempty"` // Topic prefix when driven over MQTT
	AddedAt    time.Time `yaml:"added_at,omitempty"`
}

// RequestTimeout returns the configured timeout, falling back to the default
func (d *Device) RequestTimeout() time.Duration {
	if d == nil || d.Timeout <= 0 {
		return DefaultDeviceTimeout * time.Second
	}
	return time.Duration(d.Timeout) * time.Second
}

// Topic returns the MQTT topic prefix for the device
func (d *Device) Topic() string {
	if d == nil || d.MQTTPrefix == "" {
		return DefaultMQTTPrefix
	}
	return d.MQTTPrefix
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultFormat    string `yaml:"default_format"`    // text, json or yaml
	ColoredOutput    bool   `yaml:"colored_output"`    // Style terminal output with colors
	LogLevel         string `yaml:"log_level"`         // debug, info, warn, error; empty is silent
	DiscoveryTimeout int    `yaml:"discovery_timeout"` // mDNS discovery timeout in seconds
}

func defaultPreferences() *Preferences {
	return &Preferences{
		DefaultFormat:    "text",
		ColoredOutput:    true,
		DiscoveryTimeout: 5,
	}
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version:     CurrentVersion,
		Devices:     make(map[string]*Device),
		Preferences: defaultPreferences(),
	}
}

// Device retrieves a device by name. Returns nil if it doesn't exist.
func (c *Config) Device(name string) *Device {
	return c.Devices[name]
}

// DeviceNames returns the configured device names in sorted order.
func (c *Config) DeviceNames() []string {
	names := make([]string, 0, len(c.Devices))
	for name := range c.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddDevice adds or replaces a device. The first device added becomes the
// default, as does any device added with makeDefault set.
func (c *Config) AddDevice(name, host string, makeDefault bool) *Device {
	if c.Devices == nil {
		c.Devices = make(map[string]*Device)
	}

	device := &Device{
		Host:    host,
		Name:    name,
		Timeout: DefaultDeviceTimeout,
		AddedAt: time.Now(),
	}
	c.Devices[name] = device

	if makeDefault || c.DefaultDevice == "" {
		c.DefaultDevice = name
	}
	return device
}

// RemoveDevice deletes a device. When the default device is removed, the
// alphabetically first remaining device becomes the new default.
func (c *Config) RemoveDevice(name string) error {
	if _, ok := c.Devices[name]; !ok {
		return fmt.Errorf("device %q: %w", name, ErrDeviceNotFound)
	}
	delete(c.Devices, name)

	if c.DefaultDevice == name {
		c.DefaultDevice = ""
		if names := c.DeviceNames(); len(names) > 0 {
			c.DefaultDevice = names[0]
		}
	}
	return nil
}

// SetDefault marks an existing device as the default.
func (c *Config) SetDefault(name string) error {
	if _, ok := c.Devices[name]; !ok {
		return fmt.Errorf("device %q: %w", name, ErrDeviceNotFound)
	}
	c.DefaultDevice = name
	return nil
}
