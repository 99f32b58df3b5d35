package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result is a boxed outcome summary, e.g. for "device test" or "system backup"
type Result struct {
	Type    ResultType
	Title   string
	Details [][2]string // Ordered key-value rows
	Error   error       // Failure cause
	Tips    []string    // Troubleshooting tips for failures
	Width   int
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string) *Result {
	return &Result{Type: ResultSuccess, Title: title, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, tips ...string) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Tips: tips, Width: GetTerminalWidth()}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string) *Result {
	return &Result{Type: ResultWarning, Title: title, Width: GetTerminalWidth()}
}

// AddDetail appends a detail row
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, [2]string{key, value})
	return r
}

func (r *Result) heading() (marker, label string) {
	switch r.Type {
	case ResultFailure:
		return FailureMarker, "FAILED"
	case ResultWarning:
		return WarningMarker, "WARNING"
	default:
		return SuccessMarker, "SUCCESS"
	}
}

// Render returns the styled result box
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var titleStyle lipgloss.Style
	var border lipgloss.Color
	switch r.Type {
	case ResultFailure:
		titleStyle, border = ErrorTitleStyle, ErrorColor
	case ResultWarning:
		titleStyle, border = WarningStyle, WarningColor
	default:
		titleStyle, border = SuccessTitleStyle, SuccessColor
	}

	marker, label := r.heading()
	lines := []string{"", titleStyle.Render(fmt.Sprintf("   %s  %s  ─  %s", marker, label, r.Title)), ""}

	for _, d := range r.Details {
		lines = append(lines, ResultKeyStyle.Render("   "+d[0]+":")+" "+ResultValueStyle.Render(d[1]))
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+r.Error.Error()), "")
	}

	if len(r.Tips) > 0 {
		lines = append(lines, r.renderTips(width), "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

func (r *Result) renderTips(width int) string {
	lines := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
	for _, tip := range r.Tips {
		lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
	}

	innerWidth := width - 12
	if innerWidth < 40 {
		innerWidth = 40
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(innerWidth).
		Padding(0, 1).
		MarginLeft(3).
		Render(strings.Join(lines, "\n"))
}

// Plain returns the result without styling or borders
func (r *Result) Plain() string {
	var b strings.Builder
	marker, _ := r.heading()
	fmt.Fprintf(&b, "%s %s\n", marker, r.Title)
	for _, d := range r.Details {
		fmt.Fprintf(&b, "  %s: %s\n", d[0], d[1])
	}
	if r.Error != nil {
		fmt.Fprintf(&b, "  Error: %v\n", r.Error)
	}
	for _, tip := range r.Tips {
		fmt.Fprintf(&b, "  - %s\n", tip)
	}
	return b.String()
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}
