package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepFailed
	StepSkipped
)

// Step is one stage of a multi-step operation such as a backup
type Step struct {
	Number  int
	Name    string
	Status  StepStatus
	Message string // e.g. "12 apps", "2,345 bytes"
}

// Progress tracks a fixed list of named steps
type Progress struct {
	Label   string
	Steps   []Step
	Current int     // Current step (1-based)
	Percent float64 // 0.0 - 1.0
	Width   int
	bar     progress.Model
}

// NewProgress creates a progress display with one step per name
func NewProgress(label string, names ...string) *Progress {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name}
	}
	p := &Progress{Label: label, Steps: steps}
	return p.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 20
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return p
}

// UpdateStep updates a step's status and optional message
func (p *Progress) UpdateStep(number int, status StepStatus, message string) {
	if number < 1 || number > len(p.Steps) {
		return
	}
	p.Steps[number-1].Status = status
	p.Steps[number-1].Message = message

	if status == StepRunning {
		p.Current = number
		return
	}
	p.updatePercent()
}

// updatePercent counts finished steps, skipped ones included
func (p *Progress) updatePercent() {
	completed := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete || s.Status == StepSkipped {
			completed++
		}
	}
	p.Percent = float64(completed) / float64(len(p.Steps))
}

func (p *Progress) StartStep(number int) {
	p.UpdateStep(number, StepRunning, "")
}

func (p *Progress) CompleteStep(number int, message string) {
	p.UpdateStep(number, StepComplete, message)
}

func (p *Progress) FailStep(number int, message string) {
	p.UpdateStep(number, StepFailed, message)
}

// SkipRemaining marks every pending step as skipped
func (p *Progress) SkipRemaining() {
	for i := range p.Steps {
		if p.Steps[i].Status == StepPending {
			p.Steps[i].Status = StepSkipped
		}
	}
	p.updatePercent()
}

// Render returns the styled progress bar and step list
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(ProgressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	bar := fmt.Sprintf("%s  %3.0f%%", p.bar.ViewAs(p.Percent), p.Percent*100)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(bar))
	b.WriteString("\n\n")

	lines := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		lines[i] = p.renderStepLine(step)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func stepMarker(status StepStatus) (string, lipgloss.Style) {
	switch status {
	case StepComplete:
		return StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		return StepMarkerRunning, StepRunningStyle
	case StepFailed:
		return FailureMarker, ErrorTitleStyle
	case StepSkipped:
		return StepMarkerSkipped, StepPendingStyle
	default:
		return StepMarkerPending, StepPendingStyle
	}
}

func (p *Progress) renderStepLine(step Step) string {
	marker, style := stepMarker(step.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "  [%d/%d] ", step.Number, len(p.Steps))
	b.WriteString(style.Render(step.Name))

	padding := 30 - lipgloss.Width(step.Name)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}
	return b.String()
}

// Plain returns the step list without styling or the bar
func (p *Progress) Plain() string {
	var b strings.Builder
	for _, step := range p.Steps {
		marker, _ := stepMarker(step.Status)
		fmt.Fprintf(&b, "%s %s", marker, step.Name)
		if step.Message != "" {
			fmt.Fprintf(&b, " (%s)", step.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}
