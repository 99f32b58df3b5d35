package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/awtrix/internal/awtrix"
)

// Printer writes command output. Results go to out, diagnostics and errors
// to errOut, so piping JSON or YAML output stays clean.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	width  int
	color  bool
}

// NewPrinter creates a Printer. Nil writers default to stdout and stderr.
// Styling is applied only when color is set.
func NewPrinter(out, errOut io.Writer, color bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{
		out:    out,
		errOut: errOut,
		width:  GetTerminalWidth(),
		color:  color,
	}
}

// Out returns the result writer
func (p *Printer) Out() io.Writer {
	return p.out
}

// Colored reports whether styling is enabled
func (p *Printer) Colored() bool {
	return p.color
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Printf writes formatted content to the output
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// Title prints a bold section title
func (p *Printer) Title(title string) {
	p.Println(p.style(TitleStyle, title))
}

// Success prints a checkmarked confirmation line
func (p *Printer) Success(format string, args ...any) {
	p.Println(p.style(SuccessTitleStyle, SuccessMarker) + " " + fmt.Sprintf(format, args...))
}

// Warn prints a warning line to the diagnostic stream
func (p *Printer) Warn(format string, args ...any) {
	line := p.style(WarningStyle, WarningMarker+"  "+fmt.Sprintf(format, args...))
	_, _ = fmt.Fprintln(p.errOut, line)
}

// Hint prints a muted hint line to the diagnostic stream
func (p *Printer) Hint(format string, args ...any) {
	_, _ = fmt.Fprintln(p.errOut, p.style(HintStyle, fmt.Sprintf(format, args...)))
}

// KeyValues prints aligned "key: value" rows in the given order
func (p *Printer) KeyValues(rows [][2]string) {
	keyWidth := 0
	for _, row := range rows {
		if len(row[0]) > keyWidth {
			keyWidth = len(row[0])
		}
	}
	for _, row := range rows {
		key := fmt.Sprintf("%-*s", keyWidth+1, row[0]+":")
		p.Println(p.style(KeyStyle, key) + " " + p.style(ValueStyle, row[1]))
	}
}

// Error prints err and, for device errors, a troubleshooting hint
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	msg := "Error: " + awtrix.GetShortErrorMessage(err)
	_, _ = fmt.Fprintln(p.errOut, p.style(ErrorMessageStyle, msg))

	if hint := awtrix.GetTroubleshootingHint(err); hint != "" {
		_, _ = fmt.Fprintln(p.errOut)
		for _, line := range strings.Split(hint, "\n") {
			_, _ = fmt.Fprintln(p.errOut, p.style(HintStyle, line))
		}
	}
}

// PrintResult prints a result box, or plain lines when styling is off
func (p *Printer) PrintResult(r *Result) {
	if !p.color {
		p.Print(r.Plain())
		return
	}
	r.Width = p.width
	p.Println(r.Render())
}

// PrintProgress prints a step list
func (p *Printer) PrintProgress(pr *Progress) {
	if !p.color {
		p.Print(pr.Plain())
		return
	}
	pr.SetWidth(p.width)
	p.Println(pr.Render())
}
