package awtrix

import (
	"fmt"
	"strings"
	"time"
)

const notSet = "(not set)"

// FormatUptime renders seconds as "3d 4h 5m 6s", dropping leading zero units
func FormatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Summary returns a one-line summary of the device status
func (s Stats) Summary() string {
	app := "none"
	if s.CurrentApp != nil {
		app = *s.CurrentApp
	}
	return fmt.Sprintf("up %s, WiFi %d dBm, app: %s", FormatUptime(s.Uptime), s.WiFiSignal, app)
}

// FormatDetailed returns a multi-line status report
func (s Stats) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Device Status ===\n")
	b.WriteString(fmt.Sprintf("Uptime:      %s\n", FormatUptime(s.Uptime)))
	b.WriteString(fmt.Sprintf("WiFi Signal: %d dBm\n", s.WiFiSignal))
	b.WriteString(fmt.Sprintf("Free Heap:   %d bytes\n", s.Heap))
	b.WriteString(fmt.Sprintf("Matrix:      %s\n", onOff(s.Matrix)))
	if s.CurrentApp != nil {
		b.WriteString(fmt.Sprintf("Current App: %s\n", *s.CurrentApp))
	}

	if s.Temperature != nil || s.Humidity != nil || s.LDR != nil || s.Lux != nil || s.Battery != nil {
		b.WriteString("\n=== Sensors ===\n")
		if s.Temperature != nil {
			b.WriteString(fmt.Sprintf("Temperature: %.1f°\n", *s.Temperature))
		}
		if s.Humidity != nil {
			b.WriteString(fmt.Sprintf("Humidity:    %.1f%%\n", *s.Humidity))
		}
		if s.LDR != nil {
			b.WriteString(fmt.Sprintf("LDR:         %d\n", *s.LDR))
		}
		if s.Lux != nil {
			b.WriteString(fmt.Sprintf("Lux:         %.1f\n", *s.Lux))
		}
		if s.Battery != nil {
			b.WriteString(fmt.Sprintf("Battery:     %d%%\n", *s.Battery))
		}
	}

	if s.Indicators != nil {
		b.WriteString("\n=== Indicators ===\n")
		b.WriteString(fmt.Sprintf("1: %s  2: %s  3: %s\n",
			onOff(s.Indicators.Indicator1), onOff(s.Indicators.Indicator2), onOff(s.Indicators.Indicator3)))
	}

	return b.String()
}

// Format lists every known settings key with its value
func (s Settings) Format() string {
	var b strings.Builder

	b.WriteString("=== Device Settings ===\n")
	for _, f := range settingFields {
		value, ok := f.get(&s)
		if !ok {
			value = notSet
		}
		b.WriteString(fmt.Sprintf("%-26s %s\n", f.Key+":", value))
	}
	return b.String()
}

// Format lists the apps in loop order, marking the active one
func (l LoopInfo) Format() string {
	if len(l.Apps) == 0 {
		return "No apps in loop\n"
	}

	var b strings.Builder
	for i, app := range l.Apps {
		marker := " "
		if l.Current != nil && *l.Current == app.Name {
			marker = "▶"
		}
		line := fmt.Sprintf("%s %2d. %s", marker, i+1, app.Name)
		if app.Icon != nil {
			line += fmt.Sprintf(" (icon %d)", *app.Icon)
		}
		if app.Enabled != nil && !*app.Enabled {
			line += " [disabled]"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
