package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/awtrix/internal/awtrix"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux-only")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "awtrix") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg/awtrix", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if !strings.Contains(dir, ".config") {
		t.Errorf("GetConfigDir() = %v, should fall back to ~/.config", dir)
	}
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", path)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %v, want %v", cfg.Version, CurrentVersion)
	}
	if cfg.Devices == nil || len(cfg.Devices) != 0 {
		t.Errorf("Devices = %v, want empty map", cfg.Devices)
	}
	if cfg.Preferences == nil || cfg.Preferences.DefaultFormat != "text" {
		t.Errorf("Preferences = %+v", cfg.Preferences)
	}
}

func TestConfig_AddRemoveDevice(t *testing.T) {
	cfg := NewConfig()

	cfg.AddDevice("office", "192.168.1.20", false)
	if cfg.DefaultDevice != "office" {
		t.Errorf("first device should become default, got %q", cfg.DefaultDevice)
	}

	cfg.AddDevice("kitchen", "192.168.1.21", false)
	cfg.AddDevice("bedroom", "192.168.1.22", false)
	if cfg.DefaultDevice != "office" {
		t.Errorf("later devices should not change default, got %q", cfg.DefaultDevice)
	}

	cfg.AddDevice("living", "192.168.1.23", true)
	if cfg.DefaultDevice != "living" {
		t.Errorf("makeDefault ignored, default = %q", cfg.DefaultDevice)
	}

	if err := cfg.RemoveDevice("living"); err != nil {
		t.Fatalf("RemoveDevice() error = %v", err)
	}
	if cfg.DefaultDevice != "bedroom" {
		t.Errorf("default after removal = %q, want alphabetically first 'bedroom'", cfg.DefaultDevice)
	}

	if err := cfg.RemoveDevice("nope"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("RemoveDevice(unknown) error = %v, want ErrDeviceNotFound", err)
	}

	for _, name := range []string{"bedroom", "kitchen", "office"} {
		if err := cfg.RemoveDevice(name); err != nil {
			t.Fatalf("RemoveDevice(%s) error = %v", name, err)
		}
	}
	if cfg.DefaultDevice != "" {
		t.Errorf("default should be cleared when no devices remain, got %q", cfg.DefaultDevice)
	}
}

func TestConfig_SetDefault(t *testing.T) {
	cfg := NewConfig()
	cfg.AddDevice("a", "10.0.0.1", false)
	cfg.AddDevice("b", "10.0.0.2", false)

	if err := cfg.SetDefault("b"); err != nil || cfg.DefaultDevice != "b" {
		t.Errorf("SetDefault(b) = %v, default %q", err, cfg.DefaultDevice)
	}
	if err := cfg.SetDefault("c"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("SetDefault(c) error = %v", err)
	}
}

func TestDevice_Defaults(t *testing.T) {
	var d *Device
	if d.RequestTimeout().Seconds() != DefaultDeviceTimeout {
		t.Errorf("nil device timeout = %v", d.RequestTimeout())
	}
	if d.Topic() != DefaultMQTTPrefix {
		t.Errorf("nil device topic = %v", d.Topic())
	}

	d = &Device{Timeout: 5, MQTTPrefix: "clock1"}
	if d.RequestTimeout().Seconds() != 5 || d.Topic() != "clock1" {
		t.Errorf("device overrides ignored: %v %v", d.RequestTimeout(), d.Topic())
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg := NewConfig()
	cfg.AddDevice("office", "192.168.1.20", true)

	env := func(v string) func(string) string {
		return func(key string) string {
			if key == DeviceEnvVar {
				return v
			}
			return ""
		}
	}

	tests := []struct {
		name     string
		explicit string
		env      string
		wantHost string
		wantSrc  Source
	}{
		{"flag names configured device", "office", "10.0.0.9", "192.168.1.20", SourceFlag},
		{"flag is literal host", "10.0.0.5", "10.0.0.9", "10.0.0.5", SourceFlag},
		{"env beats default", "", "10.0.0.9", "10.0.0.9", SourceEnv},
		{"default device", "", "", "192.168.1.20", SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.Resolve(tt.explicit, env(tt.env))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Host != tt.wantHost || got.Source != tt.wantSrc {
				t.Errorf("Resolve() = %+v, want host %s from %s", got, tt.wantHost, tt.wantSrc)
			}
		})
	}
}

func TestConfig_ResolveErrors(t *testing.T) {
	cfg := NewConfig()
	if _, err := cfg.Resolve("", nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("empty config error = %v, want ErrNoDevice", err)
	}

	cfg.DefaultDevice = "ghost"
	_, err := cfg.Resolve("", nil)
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("dangling default error = %v, want ErrDeviceNotFound", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should name the missing default: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if len(cfg.Devices) != 0 {
		t.Errorf("missing file should give empty config, got %v", cfg.Devices)
	}

	d := cfg.AddDevice("office", "192.168.1.20:8080", false)
	d.MQTTPrefix = "clock1"
	cfg.Preferences.DefaultFormat = "json"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := loaded.Device("office")
	if got == nil || got.Host != "192.168.1.20:8080" || got.MQTTPrefix != "clock1" {
		t.Errorf("loaded device = %+v", got)
	}
	if loaded.DefaultDevice != "office" || loaded.Preferences.DefaultFormat != "json" {
		t.Errorf("loaded config = %+v / %+v", loaded, loaded.Preferences)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "devices: [unclosed"},
		{"future version", "version: 7\n"},
		{"device without host", "version: 1\ndevices:\n  office:\n    name: office\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			var de *awtrix.DeviceError
			if !errors.As(err, &de) || de.Type != awtrix.ErrTypeConfig {
				t.Errorf("Load() error = %v, want config error", err)
			}
		})
	}
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "devices:\n  office:\n    host: 10.0.0.1\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.Preferences == nil {
		t.Errorf("defaults not filled: %+v", cfg)
	}
	if cfg.Device("office").Name != "office" {
		t.Errorf("device name should default to its key, got %q", cfg.Device("office").Name)
	}
}

func TestConfig_ResolveHost(t *testing.T) {
	cfg := NewConfig()
	cfg.AddDevice("office", "192.168.1.20", true)

	host, err := cfg.ResolveHost("", nil)
	if err != nil || host != "192.168.1.20" {
		t.Errorf("ResolveHost() = %q, %v", host, err)
	}
	if _, err := NewConfig().ResolveHost("", nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("ResolveHost() on empty config error = %v", err)
	}
}
