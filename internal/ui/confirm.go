package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prints prompt with a [y/N] suffix and reads one line from in.
// Only "y" or "yes" (any case) confirm; EOF and anything else decline.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ConfirmDangerous shows a warning box listing what the operation will do,
// then asks for confirmation.
func (p *Printer) ConfirmDangerous(in io.Reader, title string, warnings []string) bool {
	var lines []string
	if p.color {
		lines = append(lines, "", WarningStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title)), "")
		for _, w := range warnings {
			lines = append(lines, ValueStyle.Render("   • "+w))
		}
		lines = append(lines, "")

		box := lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(WarningColor).
			Width(p.width-2).
			Padding(0, 2).
			Render(strings.Join(lines, "\n"))
		_, _ = fmt.Fprintln(p.errOut, box)
	} else {
		_, _ = fmt.Fprintf(p.errOut, "%s  WARNING: %s\n", WarningMarker, title)
		for _, w := range warnings {
			_, _ = fmt.Fprintf(p.errOut, "   - %s\n", w)
		}
	}

	if !Confirm(in, p.errOut, p.style(WarningStyle, "Continue?")) {
		_, _ = fmt.Fprintln(p.errOut, p.style(HintStyle, "Operation cancelled."))
		return false
	}
	return true
}
