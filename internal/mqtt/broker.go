package mqtt

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/muurk/awtrix/internal/awtrix"
)

// DefaultBrokerPort is used when the broker URL has no port
const DefaultBrokerPort = "1883"

// Broker is a parsed broker URL in the form paho expects
type Broker struct {
	Server   string // e.g. tcp://10.0.0.2:1883
	Username string
	Password string
	TLS      bool
}

// ParseBroker converts a user supplied broker URL into a paho server URL.
// mqtt:// and tcp:// map to tcp, mqtts://, ssl:// and tls:// map to ssl,
// and ws:// or wss:// are passed through with their path. A bare host is
// treated as tcp.
func ParseBroker(raw string) (Broker, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Broker{}, awtrix.NewURLError("broker URL is empty", nil)
	}
	if !strings.Contains(raw, "://") {
		raw = "mqtt://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Broker{}, awtrix.NewURLError(fmt.Sprintf("invalid broker URL %q", raw), err)
	}
	if u.Hostname() == "" {
		return Broker{}, awtrix.NewURLError(fmt.Sprintf("broker URL %q has no host", raw), nil)
	}

	host := u.Host
	if u.Port() == "" {
		host = u.Host + ":" + DefaultBrokerPort
	}

	var b Broker
	switch strings.ToLower(u.Scheme) {
	case "mqtt", "tcp":
		b.Server = "tcp://" + host
	case "mqtts", "ssl", "tls":
		b.Server = "ssl://" + host
		b.TLS = true
	case "ws", "wss":
		b.Server = u.Scheme + "://" + u.Host + u.Path
		b.TLS = u.Scheme == "wss"
	default:
		return Broker{}, awtrix.NewURLError(fmt.Sprintf("unsupported broker scheme %q", u.Scheme), nil)
	}

	if u.User != nil {
		b.Username = u.User.Username()
		b.Password, _ = u.User.Password()
	}
	return b, nil
}
