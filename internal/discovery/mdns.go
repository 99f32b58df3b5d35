package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/awtrix/internal/logging"
)

const (
	// ServiceType is the mDNS service type AWTRIX3 advertises its web UI under
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default HTTP port for AWTRIX3 devices
	DefaultPort = 80
)

// hostnameMarkers identify AWTRIX3 firmware and the Ulanzi clocks it ships on
var hostnameMarkers = []string{"awtrix", "ulanzi"}

// isAwtrixHost reports whether an mDNS hostname belongs to an AWTRIX3 device
func isAwtrixHost(hostname string) bool {
	h := strings.ToLower(hostname)
	for _, marker := range hostnameMarkers {
		if strings.Contains(h, marker) {
			return true
		}
	}
	return false
}

// Scanner handles mDNS device discovery
type Scanner struct {
	// Timeout is the maximum time to wait for device discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForDevices discovers all AWTRIX3 devices on the local network
func (s *Scanner) ScanForDevices() ([]*Device, error) {
	return s.ScanForDevicesWithContext(context.Background())
}

// ScanForDevicesWithContext discovers devices until the scanner timeout or
// ctx expires. Devices are deduplicated by hostname.
func (s *Scanner) ScanForDevicesWithContext(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	c := newCollector()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			c.add(s.parseServiceEntry(entry))
		}
	}()

	logging.Debug("Browsing for AWTRIX devices",
		zap.String("service", ServiceType),
		zap.Duration("timeout", s.Timeout))

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	// zeroconf closes entries once the browse context ends
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	devices := c.list()
	logging.Debug("Discovery finished", zap.Int("devices", len(devices)))
	return devices, nil
}

// collector gathers discovered devices from the browse goroutine
type collector struct {
	mu      sync.Mutex
	seen    map[string]bool
	devices []*Device
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool)}
}

func (c *collector) add(d *Device) {
	if d == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(strings.TrimSuffix(d.Hostname, "."))
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.devices = append(c.devices, d)
}

func (c *collector) list() []*Device {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Device, len(c.devices))
	copy(out, c.devices)
	return out
}

// parseServiceEntry converts a zeroconf service entry to a Device
// Returns nil if the entry is not an AWTRIX3 device
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	if entry == nil || entry.HostName == "" {
		return nil
	}
	if !isAwtrixHost(entry.HostName) {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	name := entry.Instance
	if name == "" {
		name = strings.TrimSuffix(strings.TrimSuffix(entry.HostName, "."), ".local")
	}

	return &Device{
		Name:         name,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForDevices is a convenience function to scan for devices with a custom timeout
func ScanForDevices(ctx context.Context, timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.ScanForDevicesWithContext(ctx)
}
