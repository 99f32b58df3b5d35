package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/muurk/awtrix/internal/config"
	"github.com/muurk/awtrix/internal/discovery"
)

type request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeDevice is an AWTRIX3 HTTP API stand-in that records every request
type fakeDevice struct {
	*httptest.Server

	mu       sync.Mutex
	requests []request
}

func newFakeDevice(t *testing.T) *fakeDevice {
	t.Helper()
	d := &fakeDevice{}

	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "0.96\n")
	})
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"uptime":3661,"wifiSignal":-60,"heap":120000,"matrix":true,"currentApp":"Time"}`)
	})
	mux.HandleFunc("/api/loop", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"apps":[{"name":"Time"},{"name":"Date"},{"name":"weather","icon":2355}],"current":"Time"}`)
	})
	mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"brightness":80,"tempUnit":"C"}`)
		}
	})
	mux.HandleFunc("/api/screen", func(w http.ResponseWriter, r *http.Request) {
		pixels := make([]string, 256)
		for i := range pixels {
			pixels[i] = "0"
		}
		pixels[0] = strconv.Itoa(0xFF0000)
		_, _ = io.WriteString(w, "["+strings.Join(pixels, ",")+"]")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})

	d.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		d.mu.Lock()
		d.requests = append(d.requests, request{r.Method, r.URL.Path, r.URL.RawQuery, string(body)})
		d.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(d.Close)
	return d
}

func (d *fakeDevice) recorded() []request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]request(nil), d.requests...)
}

// posts returns the recorded POST requests
func (d *fakeDevice) posts() []request {
	var out []request
	for _, r := range d.recorded() {
		if r.Method == http.MethodPost {
			out = append(out, r)
		}
	}
	return out
}

type harness struct {
	t          *testing.T
	configPath string
	env        map[string]string
	stdin      string
	scan       func(ctx context.Context, timeout time.Duration) ([]*discovery.Device, error)
}

func newHarness(t *testing.T) *harness {
	return &harness{
		t:          t,
		configPath: filepath.Join(t.TempDir(), "config.yaml"),
		env:        map[string]string{},
	}
}

func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	c := newCLI(streams{
		stdin:  strings.NewReader(h.stdin),
		stdout: &out,
		stderr: &errOut,
		getenv: func(k string) string { return h.env[k] },
	})
	if h.scan != nil {
		c.scan = h.scan
	}
	code = execute(context.Background(), c, append([]string{"--config", h.configPath}, args...))
	return out.String(), errOut.String(), code
}

func TestCommands_Writes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		path     string
		query    string
		wantBody []string
		stdout   string
	}{
		{
			name:     "power on",
			args:     []string{"power", "on"},
			path:     "/api/power",
			wantBody: []string{`"power":true`},
			stdout:   "Matrix turned on",
		},
		{
			name:     "sleep",
			args:     []string{"sleep", "--duration", "60"},
			path:     "/api/sleep",
			wantBody: []string{`"sleep":60`},
		},
		{
			name:     "notify with clamped progress",
			args:     []string{"notify", "send", "Hello", "--color", "red", "--progress", "150", "--hold"},
			path:     "/api/notify",
			wantBody: []string{`"text":"Hello"`, `"color":[255,0,0]`, `"progress":100`, `"hold":true`},
		},
		{
			name: "notify dismiss",
			args: []string{"notify", "dismiss"},
			path: "/api/notify/dismiss",
		},
		{
			name:     "custom create",
			args:     []string{"custom", "create", "weather", "--text", "21C", "--icon", "2355", "--lifetime", "600"},
			path:     "/api/custom",
			query:    "name=weather",
			wantBody: []string{`"text":"21C"`, `"icon":2355`, `"lifetime":600`},
		},
		{
			name:     "custom delete",
			args:     []string{"custom", "delete", "weather"},
			path:     "/api/custom",
			query:    "name=weather",
			wantBody: []string{`{}`},
		},
		{
			name:     "switch app",
			args:     []string{"app", "switch", "Time"},
			path:     "/api/switch",
			wantBody: []string{`"name":"Time"`},
		},
		{
			name: "next app",
			args: []string{"app", "next"},
			path: "/api/nextapp",
		},
		{
			name:     "mood light",
			args:     []string{"display", "mood", "--kelvin", "2700", "--brightness", "100"},
			path:     "/api/moodlight",
			wantBody: []string{`"kelvin":2700`, `"brightness":100`},
		},
		{
			name:     "indicator",
			args:     []string{"indicator", "2", "--color", "#00FF00"},
			path:     "/api/indicator2",
			wantBody: []string{`"color":[0,255,0]`},
		},
		{
			name:     "rtttl",
			args:     []string{"sound", "rtttl", "beep:d=32,o=7,b=120:a"},
			path:     "/api/rtttl",
			wantBody: []string{`"rtttl":"beep:d=32,o=7,b=120:a"`},
		},
		{
			name: "r2d2",
			args: []string{"sound", "r2d2"},
			path: "/api/r2d2",
		},
		{
			name: "save",
			args: []string{"system", "save"},
			path: "/save",
		},
		{
			name: "reboot confirmed by flag",
			args: []string{"system", "reboot", "--yes"},
			path: "/api/reboot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice(t)
			h := newHarness(t)

			stdout, stderr, code := h.run(append([]string{"--device", dev.URL}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr)
			}

			posts := dev.posts()
			if len(posts) != 1 {
				t.Fatalf("got %d POST requests, want 1: %+v", len(posts), posts)
			}
			got := posts[0]
			if got.Path != tt.path {
				t.Errorf("path = %s, want %s", got.Path, tt.path)
			}
			if got.Query != tt.query {
				t.Errorf("query = %q, want %q", got.Query, tt.query)
			}
			for _, want := range tt.wantBody {
				if !strings.Contains(got.Body, want) {
					t.Errorf("body %s missing %s", got.Body, want)
				}
			}
			if tt.stdout != "" && !strings.Contains(stdout, tt.stdout) {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
		})
	}
}

func TestCommands_ValidationSendsNothing(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad power state", []string{"power", "dim"}},
		{"zero sleep", []string{"sleep", "--duration", "0"}},
		{"notify without text", []string{"notify", "send"}},
		{"unknown color", []string{"notify", "send", "hi", "--color", "mauve-ish"}},
		{"non-numeric icon", []string{"notify", "send", "hi", "--icon", "abc"}},
		{"bad rtttl", []string{"sound", "rtttl", "nocolons"}},
		{"kelvin out of range", []string{"display", "mood", "--kelvin", "9000"}},
		{"mood without color", []string{"display", "mood"}},
		{"indicator 4", []string{"indicator", "4", "--off"}},
		{"indicator color and off", []string{"indicator", "1", "--off", "--color", "red"}},
		{"blank app name", []string{"custom", "delete", " "}},
		{"dashboard without terminal", []string{"dashboard"}},
		{"verify over mqtt", []string{"--mqtt", "mqtt://127.0.0.1:1", "settings", "set", "brightness", "1", "--verify"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice(t)
			h := newHarness(t)

			_, stderr, code := h.run(append([]string{"--device", dev.URL}, tt.args...)...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Errorf("stderr = %q, want an error line", stderr)
			}
			if n := len(dev.recorded()); n != 0 {
				t.Errorf("device received %d requests, want 0", n)
			}
		})
	}
}

func TestIndicatorAllOff(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	if _, stderr, code := h.run("--device", dev.URL, "indicator", "all", "--off"); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	posts := dev.posts()
	if len(posts) != 3 {
		t.Fatalf("got %d requests, want 3", len(posts))
	}
	for i, p := range posts {
		if want := "/api/indicator" + string(rune('1'+i)); p.Path != want {
			t.Errorf("request %d path = %s, want %s", i, p.Path, want)
		}
		if p.Body != "{}" {
			t.Errorf("request %d body = %s, want {}", i, p.Body)
		}
	}
}

func TestNotify_FromFile(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "n.json")
	if err := os.WriteFile(path, []byte(`{"text":"from file","color":"#0000FF","duration":5}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, stderr, code := h.run("--device", dev.URL, "notify", "send", "--file", path); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	body := dev.posts()[0].Body
	for _, want := range []string{`"text":"from file"`, `"color":[0,0,255]`, `"duration":5`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}

	h.stdin = "{not json"
	_, stderr, code := h.run("--device", dev.URL, "notify", "send", "--file", "-")
	if code != 1 || !strings.Contains(stderr, "Error:") {
		t.Errorf("malformed stdin: code = %d, stderr = %q", code, stderr)
	}
}

func TestSettingsSet_ReadModifyWrite(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	if _, stderr, code := h.run("--device", dev.URL, "settings", "set", "brightness", "120"); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	reqs := dev.recorded()
	if len(reqs) != 2 || reqs[0].Method != http.MethodGet || reqs[1].Method != http.MethodPost {
		t.Fatalf("requests = %+v, want GET then POST", reqs)
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(reqs[1].Body), &sent); err != nil {
		t.Fatal(err)
	}
	if sent["brightness"] != float64(120) {
		t.Errorf("brightness = %v, want 120", sent["brightness"])
	}
	if sent["tempUnit"] != "C" {
		t.Errorf("untouched key lost: %v", sent)
	}
}

func TestSettingsSet_RejectedBeforeRead(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		named string
	}{
		{"unknown key", []string{"nope", "1"}, "nope"},
		{"time format out of range", []string{"time_app.format", "9"}, "time_app.format"},
		{"not a number", []string{"brightness", "bright"}, "brightness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice(t)
			h := newHarness(t)

			_, stderr, code := h.run(append([]string{"--device", dev.URL, "settings", "set"}, tt.args...)...)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.named) {
				t.Errorf("stderr = %q, want %s named", stderr, tt.named)
			}
			if reqs := dev.recorded(); len(reqs) != 0 {
				t.Errorf("requests = %+v, want none", reqs)
			}
		})
	}
}

func TestSettingsImport_OutOfRangeSendsNothing(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	h.stdin = `{"timeApp":{"format":9}}`
	_, stderr, code := h.run("--device", dev.URL, "settings", "import", "-")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "time_app.format") {
		t.Errorf("stderr = %q, want the range error", stderr)
	}
	if reqs := dev.recorded(); len(reqs) != 0 {
		t.Errorf("requests = %+v, want none", reqs)
	}

	h.stdin = `{"timeApp":{"format":3}}`
	if _, stderr, code := h.run("--device", dev.URL, "settings", "import", "-"); code != 0 {
		t.Fatalf("valid import: code = %d, stderr = %s", code, stderr)
	}
	if posts := dev.posts(); len(posts) != 1 || !strings.Contains(posts[0].Body, `"format":3`) {
		t.Errorf("posts = %+v", posts)
	}
}

func TestSettingsGet(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	stdout, _, code := h.run("--device", dev.URL, "settings", "get", "brightness")
	if code != 0 || stdout != "80\n" {
		t.Errorf("get brightness = %q (code %d)", stdout, code)
	}

	stdout, _, _ = h.run("--device", dev.URL, "--json", "settings", "get", "text_color")
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if got["key"] != "text_color" || got["value"] != nil {
		t.Errorf("got %v, want unset text_color", got)
	}
}

func TestSettingsExport(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "settings.json")

	if _, stderr, code := h.run("--device", dev.URL, "settings", "export", path); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"brightness": 80`) {
		t.Errorf("export = %s", data)
	}

	stdout, _, _ := h.run("--device", dev.URL, "settings", "export", "-")
	if !strings.Contains(stdout, `"tempUnit": "C"`) {
		t.Errorf("export to stdout = %s", stdout)
	}
}

func TestSystemStats_Formats(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	stdout, _, code := h.run("--device", dev.URL, "system", "stats")
	if code != 0 || !strings.Contains(stdout, "1h 1m 1s") {
		t.Errorf("text stats = %q", stdout)
	}

	stdout, _, _ = h.run("--device", dev.URL, "--format", "yaml", "system", "stats")
	if !strings.Contains(stdout, "uptime: 3661") {
		t.Errorf("yaml stats = %q", stdout)
	}
}

func TestReboot_Declined(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)
	h.stdin = "n\n"

	_, stderr, code := h.run("--device", dev.URL, "system", "reboot")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr, "Operation cancelled.") {
		t.Errorf("stderr = %q", stderr)
	}
	if len(dev.posts()) != 0 {
		t.Error("declined reboot must not reach the device")
	}
}

func TestFactoryReset_Confirmed(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)
	h.stdin = "yes\n"

	stdout, stderr, code := h.run("--device", dev.URL, "system", "factory-reset")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if posts := dev.posts(); len(posts) != 1 || posts[0].Path != "/api/erase" {
		t.Errorf("posts = %+v", posts)
	}
	if strings.Contains(stdout, "%!") {
		t.Errorf("stdout = %q, success line misformatted", stdout)
	}
}

func TestSystemBackup(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "backup.json")

	stdout, stderr, code := h.run("--device", dev.URL, "system", "backup", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Backup complete") {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatal(err)
	}
	if b.Version != "0.96" || b.Stats.Uptime != 3661 || len(b.Loop.Apps) != 3 {
		t.Errorf("backup = %+v", b)
	}
	if b.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestDeviceResolution(t *testing.T) {
	dev := newFakeDevice(t)

	t.Run("env var", func(t *testing.T) {
		h := newHarness(t)
		h.env[config.DeviceEnvVar] = dev.URL
		if _, stderr, code := h.run("app", "previous"); code != 0 {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr)
		}
	})

	t.Run("none", func(t *testing.T) {
		h := newHarness(t)
		_, stderr, code := h.run("app", "next")
		if code != 1 || !strings.Contains(stderr, "no device specified") {
			t.Errorf("code = %d, stderr = %q", code, stderr)
		}
	})
}

func TestDeviceLifecycle(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	steps := [][]string{
		{"device", "add", "kitchen", dev.URL},
		{"device", "add", "office", "10.255.255.1", "--no-verify"},
		{"device", "default", "office"},
	}
	for _, args := range steps {
		if _, stderr, code := h.run(args...); code != 0 {
			t.Fatalf("%v: exit code = %d, stderr = %s", args, code, stderr)
		}
	}

	cfg, err := config.Load(h.configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDevice != "office" || len(cfg.Devices) != 2 {
		t.Fatalf("config = %+v", cfg)
	}

	// named device reaches the fake through its configured host
	if _, stderr, code := h.run("--device", "kitchen", "power", "off"); code != 0 {
		t.Fatalf("power via name: code = %d, stderr = %s", code, stderr)
	}
	if posts := dev.posts(); len(posts) != 1 || posts[0].Body != `{"power":false}` {
		t.Errorf("posts = %+v", posts)
	}

	stdout, _, _ := h.run("--json", "device", "list", "--no-check")
	var rows []deviceStatus
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if len(rows) != 2 || rows[0].Name != "kitchen" || !rows[1].Default {
		t.Errorf("rows = %+v", rows)
	}

	if _, stderr, code := h.run("device", "remove", "office"); code != 0 {
		t.Fatalf("remove: code = %d, stderr = %s", code, stderr)
	}
	cfg, _ = config.Load(h.configPath)
	if cfg.DefaultDevice != "kitchen" {
		t.Errorf("default after removal = %q, want kitchen", cfg.DefaultDevice)
	}

	if _, _, code := h.run("device", "remove", "office"); code != 1 {
		t.Error("removing a missing device should fail")
	}
}

func TestDeviceAdd_VerifyFails(t *testing.T) {
	dev := newFakeDevice(t)
	url := dev.URL
	dev.Close()

	h := newHarness(t)
	_, stderr, code := h.run("device", "add", "gone", url)
	if code != 1 || !strings.Contains(stderr, "--no-verify") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
	if _, err := os.Stat(h.configPath); !os.IsNotExist(err) {
		t.Error("config must not be written when verification fails")
	}
}

func TestDeviceTest(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	stdout, _, code := h.run("--device", dev.URL, "device", "test")
	if code != 0 || !strings.Contains(stdout, "Device online") || !strings.Contains(stdout, "0.96") {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}

	url := dev.URL
	dev.Close()
	stdout, stderr, code := h.run("--device", url, "device", "test")
	if code != 1 || !strings.Contains(stdout, "Device unreachable") {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
	if strings.Contains(stderr, "Error:") {
		t.Errorf("failure printed twice: %q", stderr)
	}
}

func TestDeviceDiscover_Add(t *testing.T) {
	dev := newFakeDevice(t)
	addr := strings.TrimPrefix(dev.URL, "http://")
	host, port, _ := strings.Cut(addr, ":")

	h := newHarness(t)
	h.scan = func(ctx context.Context, timeout time.Duration) ([]*discovery.Device, error) {
		if timeout != 2*time.Second {
			t.Errorf("timeout = %s, want 2s", timeout)
		}
		p, _ := strconv.Atoi(port)
		return []*discovery.Device{{Name: "Awtrix Desk", Hostname: "awtrix-desk.local", IP: host, Port: p}}, nil
	}

	stdout, stderr, code := h.run("device", "discover", "--timeout", "2s", "--add")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "0.96") || !strings.Contains(stdout, "added as awtrix-desk") {
		t.Errorf("stdout = %q", stdout)
	}

	cfg, err := config.Load(h.configPath)
	if err != nil {
		t.Fatal(err)
	}
	if d := cfg.Device("awtrix-desk"); d == nil || d.Host != addr {
		t.Errorf("device = %+v, want host %s", d, addr)
	}
}

func TestAppList(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	stdout, _, code := h.run("--device", dev.URL, "app", "list")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"Time", "Date", "weather"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout %q missing %s", stdout, want)
		}
	}
}

func TestInfoScreen(t *testing.T) {
	dev := newFakeDevice(t)
	h := newHarness(t)

	stdout, _, code := h.run("--device", dev.URL, "info", "screen")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	rows := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(rows) != 8 {
		t.Fatalf("got %d rows, want 8:\n%s", len(rows), stdout)
	}
	if want := "#" + strings.Repeat(".", 31); rows[0] != want {
		t.Errorf("row 0 = %q, want %q", rows[0], want)
	}

	stdout, _, code = h.run("--device", dev.URL, "info", "screen", "--raw")
	if code != 0 {
		t.Fatalf("raw exit code = %d", code)
	}
	var raw []uint32
	if err := json.Unmarshal([]byte(stdout), &raw); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if len(raw) != 256 || raw[0] != 0xFF0000 {
		t.Errorf("raw[0] = %d, len %d", raw[0], len(raw))
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	h := newHarness(t)
	stdout, _, code := h.run("version", "--json")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if info["version"] == "" {
		t.Errorf("info = %v", info)
	}
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pushes := make(chan struct{}, 10)

	done := make(chan error)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() error {
			pushes <- struct{}{}
			return nil
		}, func(err error) { t.Errorf("unexpected report: %v", err) })
	}()

	<-pushes
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	select {
	case <-pushes:
	case <-time.After(2 * time.Second):
		t.Fatal("change not pushed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile() = %v", err)
	}
	if len(pushes) != 0 {
		t.Errorf("unchanged file pushed %d extra times", len(pushes))
	}
}

func TestWatchFile_RetriesFailedPush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		attempts int
		reports  int
	)
	pushed := make(chan struct{})

	done := make(chan error)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() error {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			if attempts < 3 {
				return errors.New("device offline")
			}
			if attempts == 3 {
				close(pushed)
			}
			return nil
		}, func(error) {
			mu.Lock()
			reports++
			mu.Unlock()
		})
	}()

	select {
	case <-pushed:
	case <-time.After(2 * time.Second):
		t.Fatal("failed push was not retried")
	}
	// once a push succeeds an unchanged file is left alone
	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile() = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if reports != 2 {
		t.Errorf("reports = %d, want 2", reports)
	}
}
