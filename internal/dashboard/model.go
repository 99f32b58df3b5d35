package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/ui"
)

const (
	// DefaultInterval is how often stats are polled
	DefaultInterval = 5 * time.Second

	// messageLimit caps the quick notification text
	messageLimit = 120
)

// Device is the part of the device API the dashboard needs
type Device interface {
	Stats(ctx context.Context) (awtrix.Stats, error)
	Loop(ctx context.Context) (awtrix.LoopInfo, error)
	NextApp(ctx context.Context) error
	PreviousApp(ctx context.Context) error
	Notify(ctx context.Context, n awtrix.Notification) error
}

var _ Device = (*awtrix.Client)(nil)

// Message types for async operations
type (
	refreshMsg struct {
		stats awtrix.Stats
		loop  awtrix.LoopInfo
		err   error
		at    time.Time
	}

	tickMsg time.Time

	actionMsg struct {
		status string
		err    error
	}
)

// Model is the dashboard screen
type Model struct {
	ctx      context.Context
	device   Device
	host     string
	interval time.Duration

	// Device state from the last successful poll
	Stats       *awtrix.Stats
	Loop        *awtrix.LoopInfo
	LastUpdated time.Time
	Err         error // error from the last poll or action
	Status      string

	Loading   bool
	Composing bool
	Width     int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a dashboard for device, polling every interval
func NewModel(ctx context.Context, device Device, host string, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.StepRunningStyle

	in := textinput.New()
	in.Placeholder = "Notification text"
	in.CharLimit = messageLimit
	in.Width = 50

	return Model{
		ctx:      ctx,
		device:   device,
		host:     host,
		interval: interval,
		Loading:  true,
		input:    in,
		spinner:  s,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the first poll and the poll timer
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh fetches stats and the app loop
func (m Model) refresh() tea.Cmd {
	ctx, device := m.ctx, m.device
	return func() tea.Msg {
		stats, err := device.Stats(ctx)
		if err != nil {
			return refreshMsg{err: err, at: time.Now()}
		}
		loop, err := device.Loop(ctx)
		return refreshMsg{stats: stats, loop: loop, err: err, at: time.Now()}
	}
}

// act runs fn and reports status on success
func (m Model) act(status string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{status: status, err: fn(ctx)}
	}
}

// Update handles key presses, poll results and timer ticks
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.Composing {
			return m.updateCompose(msg)
		}
		return m.updateKeys(msg)

	case refreshMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.err == nil {
			m.Stats, m.Loop = &msg.stats, &msg.loop
			m.LastUpdated = msg.at
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case actionMsg:
		if msg.err != nil {
			m.Err, m.Status = msg.err, ""
			return m, nil
		}
		m.Err, m.Status = nil, msg.status
		m.Loading = true
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.act("Switched to next app", m.device.NextApp)
	case key.Matches(msg, m.keys.Prev):
		return m, m.act("Switched to previous app", m.device.PreviousApp)
	case key.Matches(msg, m.keys.Refresh):
		m.Loading = true
		return m, m.refresh()
	case key.Matches(msg, m.keys.Notify):
		m.Composing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.Composing = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Send):
		text := strings.TrimSpace(m.input.Value())
		m.Composing = false
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		n := awtrix.NewNotificationBuilder().Text(text).Build()
		return m, m.act("Sent \""+text+"\"", func(ctx context.Context) error {
			return m.device.Notify(ctx, n)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("AWTRIX3 · " + m.host))
	b.WriteString("\n\n")

	switch {
	case m.Stats == nil && m.Err == nil:
		b.WriteString(m.spinner.View() + " Connecting...\n")
	case m.Stats == nil:
		b.WriteString(m.renderError() + "\n")
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderStats(),
			"    ",
			m.renderLoop(),
		))
		b.WriteString("\n\n")
		b.WriteString(m.renderStatus() + "\n")
	}

	if m.Composing {
		b.WriteString("\n" + ui.KeyStyle.Render("Message: ") + m.input.View() + "\n")
		b.WriteString("\n" + m.help.View(composeKeys{m.keys}))
	} else {
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderStats() string {
	s := m.Stats
	rows := [][2]string{
		{"Uptime", awtrix.FormatUptime(s.Uptime)},
		{"WiFi", fmt.Sprintf("%d dBm", s.WiFiSignal)},
		{"Heap", fmt.Sprintf("%d bytes", s.Heap)},
		{"Matrix", onOff(s.Matrix)},
	}
	if s.Temperature != nil {
		rows = append(rows, [2]string{"Temperature", fmt.Sprintf("%.1f°", *s.Temperature)})
	}
	if s.Humidity != nil {
		rows = append(rows, [2]string{"Humidity", fmt.Sprintf("%.0f%%", *s.Humidity)})
	}
	if s.Battery != nil {
		rows = append(rows, [2]string{"Battery", fmt.Sprintf("%d%%", *s.Battery)})
	}

	lines := []string{ui.ProgressLabelStyle.Render("Device")}
	for _, r := range rows {
		lines = append(lines, ui.ResultKeyStyle.Render(fmt.Sprintf("%-12s", r[0]))+ui.ResultValueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLoop() string {
	lines := []string{ui.ProgressLabelStyle.Render("App loop")}
	current := ""
	if m.Stats.CurrentApp != nil {
		current = *m.Stats.CurrentApp
	} else if m.Loop != nil && m.Loop.Current != nil {
		current = *m.Loop.Current
	}

	if m.Loop == nil || len(m.Loop.Apps) == 0 {
		return strings.Join(append(lines, ui.HintStyle.Render("(empty)")), "\n")
	}
	for _, app := range m.Loop.Apps {
		if app.Name == current {
			lines = append(lines, ui.StepCompleteStyle.Render(ui.CurrentMarker+" "+app.Name))
		} else {
			lines = append(lines, ui.StepPendingStyle.Render("  "+app.Name))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.Err != nil {
		return m.renderError()
	}
	var parts []string
	if m.Loading {
		parts = append(parts, m.spinner.View())
	}
	if m.Status != "" {
		parts = append(parts, ui.SuccessTitleStyle.Render(ui.SuccessMarker+" "+m.Status))
	}
	if !m.LastUpdated.IsZero() {
		parts = append(parts, ui.HintStyle.Render("updated "+m.LastUpdated.Format("15:04:05")))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderError() string {
	return ui.ErrorMessageStyle.Render(ui.FailureMarker + " " + awtrix.GetShortErrorMessage(m.Err))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run shows the dashboard until the user quits or ctx ends
func Run(ctx context.Context, device Device, host string, interval time.Duration, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(ctx, device, host, interval), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
