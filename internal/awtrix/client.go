package awtrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultMaxIdleConnsPerHost is how many idle connections are kept per device
	DefaultMaxIdleConnsPerHost = 10

	// unknownErrorBody replaces an error body that could not be read
	unknownErrorBody = "Unknown error"
)

// Controller is the write-only command surface shared by the HTTP client
// and the MQTT publisher.
type Controller interface {
	SetPower(ctx context.Context, on bool) error
	Sleep(ctx context.Context, seconds uint32) error
	Notify(ctx context.Context, n Notification) error
	DismissNotification(ctx context.Context) error
	NextApp(ctx context.Context) error
	PreviousApp(ctx context.Context) error
	SwitchApp(ctx context.Context, name string) error
	CreateCustomApp(ctx context.Context, name string, app CustomApp) error
	DeleteCustomApp(ctx context.Context, name string) error
	SetMoodLight(ctx context.Context, m MoodLight) error
	SetIndicator(ctx context.Context, n int, c *Color) error
	PlaySound(ctx context.Context, sound string) error
	PlayRTTTL(ctx context.Context, rtttl string) error
	UpdateSettings(ctx context.Context, s Settings) error
	Reboot(ctx context.Context) error
}

var _ Controller = (*Client)(nil)

// TransportOptions configures the shared HTTP transport
type TransportOptions struct {
	Timeout             time.Duration
	MaxIdleConnsPerHost int
	DisableCompression  bool
}

// DefaultTransportOptions returns the options used when none are given
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		Timeout:             DefaultTimeout,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
	}
}

// NewHTTPClient builds the pooled HTTP client. Build it once per process and
// hand it to every Client with WithHTTPClient.
func NewHTTPClient(opts TransportOptions) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = opts.MaxIdleConnsPerHost
	transport.DisableCompression = opts.DisableCompression

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}
}

// Client talks to one AWTRIX3 device over its HTTP API.
// A Client is immutable after construction and safe to copy.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for host, which may be "192.168.1.50",
// "clock.local:8080" or a full "http://" / "https://" URL. No connection is
// made until the first request.
func NewClient(host string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(host)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, NewURLError(fmt.Sprintf("invalid device address %q", host), err)
	}
	if base.Host == "" {
		return nil, NewURLError(fmt.Sprintf("invalid device address %q: missing host", host), nil)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	c := &Client{
		baseURL: base,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(DefaultTransportOptions())
	}
	return c, nil
}

// BaseURL returns the device base URL, e.g. "http://192.168.1.50/"
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Host returns the host[:port] part of the base URL
func (c *Client) Host() string {
	return c.baseURL.Host
}

// resolve joins an endpoint such as "/api/stats" to the base URL
func (c *Client) resolve(endpoint string) (*url.URL, error) {
	u, err := c.baseURL.Parse(endpoint)
	if err != nil {
		return nil, NewURLError(fmt.Sprintf("invalid endpoint %q", endpoint), err)
	}
	return u, nil
}

// do sends a request and runs it through handleResponse. A nil body sends
// no payload; anything else is encoded as JSON.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	u, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, NewSerializationError("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, NewURLError("failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("device request failed",
			zap.String("method", method),
			zap.String("url", u.String()),
			zap.Error(err),
		)
		return nil, NewTransportError(fmt.Sprintf("%s %s failed", method, endpoint), err, c.Host())
	}

	c.logger.Debug("device request",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return c.handleResponse(resp)
}

// handleResponse passes 2xx responses through and turns anything else into
// an API error carrying the status code and the body text.
func (c *Client) handleResponse(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer func() { _ = resp.Body.Close() }()

	message := unknownErrorBody
	if body, err := io.ReadAll(resp.Body); err == nil {
		message = string(body)
	}
	return nil, NewAPIError(resp.StatusCode, message)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// Post performs a POST request with no body
func (c *Client) Post(ctx context.Context, endpoint string) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil)
}

// PostJSON performs a POST request with a JSON body
func (c *Client) PostJSON(ctx context.Context, endpoint string, body any) (*http.Response, error) {
	if body == nil {
		body = struct{}{}
	}
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) post(ctx context.Context, endpoint string, body any) error {
	var (
		resp *http.Response
		err  error
	)
	if body == nil {
		resp, err = c.Post(ctx, endpoint)
	} else {
		resp, err = c.PostJSON(ctx, endpoint, body)
	}
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func getJSON[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return out, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, NewSerializationError(fmt.Sprintf("failed to decode %s response", endpoint), err)
	}
	return out, nil
}

// SetPower turns the matrix on or off
func (c *Client) SetPower(ctx context.Context, on bool) error {
	return c.post(ctx, "/api/power", powerRequest{Power: on})
}

// Sleep puts the device to sleep for the given number of seconds
func (c *Client) Sleep(ctx context.Context, seconds uint32) error {
	return c.post(ctx, "/api/sleep", sleepRequest{Sleep: seconds})
}

// Notify shows a notification
func (c *Client) Notify(ctx context.Context, n Notification) error {
	return c.post(ctx, "/api/notify", n)
}

// DismissNotification clears a held notification
func (c *Client) DismissNotification(ctx context.Context) error {
	return c.post(ctx, "/api/notify/dismiss", nil)
}

// Stats retrieves the device status snapshot
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	return getJSON[Stats](ctx, c, "/api/stats")
}

// Version retrieves the firmware version as plain text
func (c *Client) Version(ctx context.Context) (string, error) {
	resp, err := c.Get(ctx, "/version")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewTransportError("failed to read version response", err, c.Host())
	}
	return strings.TrimSpace(string(body)), nil
}

// Effects lists the effect names the firmware supports
func (c *Client) Effects(ctx context.Context) ([]string, error) {
	return c.names(ctx, "/api/effects")
}

// Transitions lists the transition names the firmware supports
func (c *Client) Transitions(ctx context.Context) ([]string, error) {
	return c.names(ctx, "/api/transitions")
}

// names decodes a JSON array of strings. Anything that is not an array
// yields an empty list and non-string members are skipped.
func (c *Client) names(ctx context.Context, endpoint string) ([]string, error) {
	raw, err := getJSON[json.RawMessage](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}, nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}

// Loop retrieves the app loop
func (c *Client) Loop(ctx context.Context) (LoopInfo, error) {
	return getJSON[LoopInfo](ctx, c, "/api/loop")
}

// NextApp switches to the next app in the loop
func (c *Client) NextApp(ctx context.Context) error {
	return c.post(ctx, "/api/nextapp", nil)
}

// PreviousApp switches to the previous app in the loop
func (c *Client) PreviousApp(ctx context.Context) error {
	return c.post(ctx, "/api/previousapp", nil)
}

// SwitchApp jumps to the named app
func (c *Client) SwitchApp(ctx context.Context, name string) error {
	return c.post(ctx, "/api/switch", switchRequest{Name: name})
}

func customEndpoint(name string) string {
	return "/api/custom?" + url.Values{"name": {name}}.Encode()
}

// CreateCustomApp creates or replaces the named custom app
func (c *Client) CreateCustomApp(ctx context.Context, name string, app CustomApp) error {
	return c.post(ctx, customEndpoint(name), app)
}

// DeleteCustomApp removes the named custom app by posting an empty body
func (c *Client) DeleteCustomApp(ctx context.Context, name string) error {
	return c.post(ctx, customEndpoint(name), struct{}{})
}

// SetMoodLight sets the ambient mood light. A zero MoodLight turns it off.
func (c *Client) SetMoodLight(ctx context.Context, m MoodLight) error {
	return c.post(ctx, "/api/moodlight", m)
}

// SetIndicator lights indicator n (1-3) in color c, or turns it off when c is nil
func (c *Client) SetIndicator(ctx context.Context, n int, color *Color) error {
	if err := ValidateIndicator(n); err != nil {
		return err
	}
	return c.post(ctx, fmt.Sprintf("/api/indicator%d", n), indicatorRequest{Color: color})
}

// PlaySound plays a sound file stored on the device
func (c *Client) PlaySound(ctx context.Context, sound string) error {
	return c.post(ctx, "/api/sound", soundRequest{Sound: sound})
}

// PlayRTTTL plays an RTTTL melody
func (c *Client) PlayRTTTL(ctx context.Context, rtttl string) error {
	return c.post(ctx, "/api/rtttl", rtttlRequest{RTTTL: rtttl})
}

// PlayR2D2 plays the built-in R2D2 sound
func (c *Client) PlayR2D2(ctx context.Context) error {
	return c.post(ctx, "/api/r2d2", nil)
}

// Settings retrieves the current device settings
func (c *Client) Settings(ctx context.Context) (Settings, error) {
	return getJSON[Settings](ctx, c, "/api/settings")
}

// UpdateSettings sends the fields that are set in s
func (c *Client) UpdateSettings(ctx context.Context, s Settings) error {
	return c.post(ctx, "/api/settings", s)
}

// Reboot restarts the device
func (c *Client) Reboot(ctx context.Context) error {
	return c.post(ctx, "/api/reboot", nil)
}

// FactoryReset erases all device data
func (c *Client) FactoryReset(ctx context.Context) error {
	return c.post(ctx, "/api/erase", nil)
}

// ResetSettings restores the default settings
func (c *Client) ResetSettings(ctx context.Context) error {
	return c.post(ctx, "/api/resetSettings", nil)
}

// Save writes the current configuration to device flash
func (c *Client) Save(ctx context.Context) error {
	return c.post(ctx, "/save", nil)
}
