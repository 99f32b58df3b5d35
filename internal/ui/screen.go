package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/awtrix/internal/awtrix"
)

// RenderScreen draws a matrix snapshot, two terminal cells per pixel.
// Without color, lit pixels are '#' and dark ones '.'.
func RenderScreen(s awtrix.Screen, color bool) string {
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			px := s.Pixel(x, y)
			lit := px != (awtrix.Color{})
			switch {
			case color && lit:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(px.Hex())).Render("██"))
			case color:
				b.WriteString("  ")
			case lit:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
