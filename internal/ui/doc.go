// Package ui renders awtrix CLI output.
//
// Command results go through a Printer, which writes to stdout and keeps
// warnings, hints and errors on stderr:
//
//	p := ui.NewPrinter(nil, nil, colored)
//	p.Success("Notification sent")
//	p.Error(err) // prints a troubleshooting hint for device errors
//
// Structured results are rendered with Render in text, JSON or YAML form.
// Result and Progress draw Lip Gloss boxes and step lists for multi-part
// operations such as "device test" and "system backup". RunWithSpinner
// shows a Bubble Tea spinner while slow work such as mDNS discovery runs.
//
// When colored output is disabled (non-terminal stdout or
// preferences.colored_output: false) everything is printed as plain text.
package ui
