// Package config manages the awtrix CLI configuration file and device resolution.
//
// The configuration is a YAML file listing named devices, the default
// device and a few output preferences:
//
//	version: 1
//	default_device: living-room
//	devices:
//	    living-room:
//	        host: 192.168.1.50
//	        name: living-room
//	        timeout: 30
//	preferences:
//	    default_format: text
//	    colored_output: true
//	    log_level: ""
//	    discovery_timeout: 5
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/awtrix/config.yaml or $HOME/.config/awtrix/config.yaml
//   - macOS: $HOME/.config/awtrix/config.yaml
//   - Windows: %LOCALAPPDATA%\awtrix\config.yaml
//
// # Device Resolution
//
// Resolve turns the --device flag, the AWTRIX_DEVICE environment variable
// and the default device into one host, in that order of precedence.
package config
