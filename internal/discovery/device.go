package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Device represents a discovered AWTRIX3 clock on the network
type Device struct {
	// Name is the mDNS instance name (e.g., "awtrix_a1b2c3")
	Name string

	// Hostname is the mDNS hostname (e.g., "awtrix_a1b2c3.local.")
	Hostname string

	// IP is the preferred address, IPv4 when one was advertised
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("AWTRIX %s (%s) at %s", d.Name, d.Hostname, d.Address())
}

// Address returns host:port, omitting the port when it is the HTTP default.
// The result is suitable for the config file and for awtrix.NewClient.
func (d *Device) Address() string {
	if d.Port == DefaultPort {
		if ip := net.ParseIP(d.IP); ip != nil && ip.To4() == nil {
			return "[" + d.IP + "]"
		}
		return d.IP
	}
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// BaseURL returns the HTTP base URL for the device
func (d *Device) BaseURL() string {
	return "http://" + net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
