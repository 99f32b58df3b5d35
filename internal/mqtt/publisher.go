package mqtt

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/logging"
)

const (
	// DefaultPrefix is the topic prefix AWTRIX3 subscribes under out of the box
	DefaultPrefix = "awtrix"

	// DefaultPublishTimeout bounds the wait for a publish to complete
	DefaultPublishTimeout = 5 * time.Second

	defaultConnectTimeout = 10 * time.Second
	defaultQuiesce        = 250 // milliseconds
)

// publishClient is the part of a paho client the publisher needs.
// Tests substitute a fake without a live broker.
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

type connectClient interface {
	publishClient
	Connect() pahomqtt.Token
}

// Publisher sends AWTRIX3 commands to a device through an MQTT broker.
type Publisher struct {
	client  publishClient
	broker  string
	prefix  string
	timeout time.Duration
	logger  *zap.Logger
}

var _ awtrix.Controller = (*Publisher)(nil)

// Options configures Connect
type Options struct {
	BrokerURL string
	Prefix    string
	ClientID  string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Connect dials the broker and returns a ready Publisher.
// Callers must Close it to release the connection.
func Connect(ctx context.Context, opts Options) (*Publisher, error) {
	broker, err := ParseBroker(opts.BrokerURL)
	if err != nil {
		return nil, err
	}

	clientOpts := pahomqtt.NewClientOptions()
	clientOpts.AddBroker(broker.Server)
	clientID := opts.ClientID
	if clientID == "" {
		clientID = "awtrix-cli-" + time.Now().Format("150405.000")
	}
	clientOpts.SetClientID(clientID)
	clientOpts.SetCleanSession(true)
	clientOpts.SetAutoReconnect(false)
	clientOpts.SetConnectTimeout(defaultConnectTimeout)
	if broker.Username != "" {
		clientOpts.SetUsername(broker.Username)
		clientOpts.SetPassword(broker.Password)
	}
	if broker.TLS {
		clientOpts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	client := pahomqtt.NewClient(clientOpts)
	p := newPublisher(client, broker.Server, opts)

	if err := p.connect(ctx, client); err != nil {
		return nil, err
	}
	p.logger.Debug("mqtt connected", zap.String("broker", broker.Server), zap.String("client_id", clientID))
	return p, nil
}

func newPublisher(client publishClient, broker string, opts Options) *Publisher {
	p := &Publisher{
		client:  client,
		broker:  broker,
		prefix:  strings.TrimSuffix(opts.Prefix, "/"),
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	if p.prefix == "" {
		p.prefix = DefaultPrefix
	}
	if p.timeout <= 0 {
		p.timeout = DefaultPublishTimeout
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// connect waits for the broker handshake. A client that did not connect is
// disconnected so its connect goroutine stops.
func (p *Publisher) connect(ctx context.Context, client connectClient) error {
	if err := p.wait(ctx, client.Connect(), "connect"); err != nil {
		client.Disconnect(0)
		return err
	}
	return nil
}

// Prefix returns the topic prefix commands are published under
func (p *Publisher) Prefix() string {
	return p.prefix
}

// Close disconnects from the broker
func (p *Publisher) Close() {
	p.client.Disconnect(defaultQuiesce)
}

func (p *Publisher) topic(suffix string) string {
	return p.prefix + "/" + suffix
}

// wait blocks until tok completes, the publish timeout passes or ctx ends
func (p *Publisher) wait(ctx context.Context, tok pahomqtt.Token, what string) error {
	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-tok.Done():
	case <-timer.C:
		return &awtrix.DeviceError{
			Type:           awtrix.ErrTypeTimeout,
			Message:        fmt.Sprintf("mqtt %s did not complete within %s", what, p.timeout),
			NetworkSubtype: awtrix.NetworkErrorTimeout,
			Host:           p.broker,
		}
	case <-ctx.Done():
		return &awtrix.DeviceError{
			Type:           awtrix.ErrTypeTimeout,
			Message:        fmt.Sprintf("mqtt %s cancelled", what),
			Err:            ctx.Err(),
			NetworkSubtype: awtrix.NetworkErrorTimeout,
			Host:           p.broker,
		}
	}

	if err := tok.Error(); err != nil {
		return &awtrix.DeviceError{
			Type:    awtrix.ErrTypeTransport,
			Message: fmt.Sprintf("mqtt %s failed", what),
			Err:     err,
			Host:    p.broker,
		}
	}
	return nil
}

// publish sends payload to prefix/suffix at QoS 0. Strings and byte slices
// are sent as-is, nil as an empty message and anything else as JSON.
func (p *Publisher) publish(ctx context.Context, suffix string, payload any) error {
	var data []byte
	switch v := payload.(type) {
	case nil:
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return awtrix.NewSerializationError("failed to encode mqtt payload", err)
		}
		data = b
	}

	topic := p.topic(suffix)
	logging.LogPayload("mqtt payload", data)

	start := time.Now()
	err := p.wait(ctx, p.client.Publish(topic, 0, false, data), "publish to "+topic)
	logging.LogDeviceCall("mqtt", p.broker, "publish "+topic, time.Since(start), err)
	return err
}

type powerPayload struct {
	Power bool `json:"power"`
}

type sleepPayload struct {
	Sleep uint32 `json:"sleep"`
}

type switchPayload struct {
	Name string `json:"name"`
}

type indicatorPayload struct {
	Color awtrix.Color `json:"color"`
}

type soundPayload struct {
	Sound string `json:"sound"`
}

// SetPower turns the matrix on or off
func (p *Publisher) SetPower(ctx context.Context, on bool) error {
	return p.publish(ctx, "power", powerPayload{Power: on})
}

// Sleep puts the device into deep sleep for the given number of seconds
func (p *Publisher) Sleep(ctx context.Context, seconds uint32) error {
	return p.publish(ctx, "sleep", sleepPayload{Sleep: seconds})
}

func (p *Publisher) Notify(ctx context.Context, n awtrix.Notification) error {
	return p.publish(ctx, "notify", n)
}

func (p *Publisher) DismissNotification(ctx context.Context) error {
	return p.publish(ctx, "notify/dismiss", nil)
}

func (p *Publisher) NextApp(ctx context.Context) error {
	return p.publish(ctx, "nextapp", nil)
}

func (p *Publisher) PreviousApp(ctx context.Context) error {
	return p.publish(ctx, "previousapp", nil)
}

func (p *Publisher) SwitchApp(ctx context.Context, name string) error {
	return p.publish(ctx, "switch", switchPayload{Name: name})
}

// CreateCustomApp publishes the app to prefix/custom/<name>
func (p *Publisher) CreateCustomApp(ctx context.Context, name string, app awtrix.CustomApp) error {
	if err := awtrix.ValidateAppName(name); err != nil {
		return err
	}
	return p.publish(ctx, "custom/"+name, app)
}

// DeleteCustomApp publishes an empty message to the app topic
func (p *Publisher) DeleteCustomApp(ctx context.Context, name string) error {
	if err := awtrix.ValidateAppName(name); err != nil {
		return err
	}
	return p.publish(ctx, "custom/"+name, nil)
}

func (p *Publisher) SetMoodLight(ctx context.Context, m awtrix.MoodLight) error {
	return p.publish(ctx, "moodlight", m)
}

// SetIndicator lights indicator n in color c, or clears it when c is nil
func (p *Publisher) SetIndicator(ctx context.Context, n int, c *awtrix.Color) error {
	if err := awtrix.ValidateIndicator(n); err != nil {
		return err
	}
	suffix := fmt.Sprintf("indicator%d", n)
	if c == nil {
		return p.publish(ctx, suffix, nil)
	}
	return p.publish(ctx, suffix, indicatorPayload{Color: *c})
}

func (p *Publisher) PlaySound(ctx context.Context, sound string) error {
	return p.publish(ctx, "sound", soundPayload{Sound: sound})
}

// PlayRTTTL publishes the melody as a raw string
func (p *Publisher) PlayRTTTL(ctx context.Context, rtttl string) error {
	return p.publish(ctx, "rtttl", rtttl)
}

func (p *Publisher) UpdateSettings(ctx context.Context, s awtrix.Settings) error {
	return p.publish(ctx, "settings", s)
}

func (p *Publisher) Reboot(ctx context.Context) error {
	return p.publish(ctx, "reboot", nil)
}
