package discovery

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name: "awtrix hostname with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "awtrix_a1b2c3"},
				HostName:      "awtrix_a1b2c3.local.",
				Port:          80,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
			},
			wantName: "awtrix_a1b2c3",
			wantIP:   "192.168.4.16",
			wantPort: 80,
		},
		{
			name: "ulanzi hostname, name from hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "Ulanzi-Clock.local.",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantName: "Ulanzi-Clock",
			wantIP:   "10.0.0.5",
			wantPort: 8080,
		},
		{
			name: "no port defaults to 80",
			entry: &zeroconf.ServiceEntry{
				HostName: "AWTRIX.local",
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantName: "AWTRIX",
			wantIP:   "172.16.0.1",
			wantPort: 80,
		},
		{
			name: "IPv4 preferred over IPv6",
			entry: &zeroconf.ServiceEntry{
				HostName: "awtrix.local.",
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantName: "awtrix",
			wantIP:   "192.168.1.50",
			wantPort: 80,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				HostName: "awtrix.local.",
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantName: "awtrix",
			wantIP:   "fe80::1",
			wantPort: 80,
		},
		{
			name: "other http service",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local.",
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name:    "empty hostname",
			entry:   &zeroconf.ServiceEntry{AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")}},
			wantNil: true,
		},
		{
			name:    "no address",
			entry:   &zeroconf.ServiceEntry{HostName: "awtrix.local."},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if device != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}
			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil device")
			}
			if device.Name != tt.wantName {
				t.Errorf("device.Name = %v, want %v", device.Name, tt.wantName)
			}
			if device.IP != tt.wantIP {
				t.Errorf("device.IP = %v, want %v", device.IP, tt.wantIP)
			}
			if device.Port != tt.wantPort {
				t.Errorf("device.Port = %v, want %v", device.Port, tt.wantPort)
			}
			if time.Since(device.DiscoveredAt) > time.Second {
				t.Errorf("device.DiscoveredAt is not recent: %v", device.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "awtrix.local.",
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
		Text:     []string{"path=/", "flag", "version=0.96"},
	}

	device := NewScanner().parseServiceEntry(entry)
	if device == nil {
		t.Fatal("parseServiceEntry() = nil, want device")
	}

	expected := map[string]string{"path": "/", "flag": "", "version": "0.96"}
	if len(device.Metadata) != len(expected) {
		t.Errorf("device.Metadata has %d entries, want %d", len(device.Metadata), len(expected))
	}
	for key, want := range expected {
		if got, ok := device.Metadata[key]; !ok || got != want {
			t.Errorf("device.Metadata[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestIsAwtrixHost(t *testing.T) {
	tests := []struct {
		hostname string
		want     bool
	}{
		{"awtrix_a1b2c3.local.", true},
		{"AWTRIX.local", true},
		{"ulanzi-tc001.local.", true},
		{"my-awtrix-clock.local.", true},
		{"printer.local.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			if got := isAwtrixHost(tt.hostname); got != tt.want {
				t.Errorf("isAwtrixHost(%q) = %v, want %v", tt.hostname, got, tt.want)
			}
		})
	}
}

func TestCollector_Dedup(t *testing.T) {
	c := newCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.add(&Device{Hostname: "awtrix.local."})
			c.add(&Device{Hostname: "AWTRIX.local"})
			c.add(nil)
		}()
	}
	wg.Wait()
	c.add(&Device{Hostname: "ulanzi.local."})

	if got := c.list(); len(got) != 2 {
		t.Errorf("collector kept %d devices, want 2", len(got))
	}
}

func TestNewScanner(t *testing.T) {
	if scanner := NewScanner(); scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
