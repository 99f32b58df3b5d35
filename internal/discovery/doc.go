// Package discovery finds AWTRIX3 clocks on the local network over mDNS.
//
// AWTRIX3 advertises its web interface as an "_http._tcp" service. Every
// HTTP service on the segment answers that browse, so entries are kept only
// when their hostname contains "awtrix" or "ulanzi".
//
// # Usage Example
//
//	devices, err := discovery.ScanForDevices(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, d := range devices {
//	    fmt.Println(d.Name, d.Address())
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Devices must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
package discovery
