package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/muurk/awtrix/internal/awtrix"
)

// Format selects how command results are rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", awtrix.NewValidationError(fmt.Sprintf("unknown output format %q (use text, json or yaml)", s))
	}
}

// MarshalJSON renders v as indented JSON with a trailing newline
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, awtrix.NewSerializationError("failed to encode JSON output", err)
	}
	return append(data, '\n'), nil
}

// MarshalYAML renders v as YAML. The value goes through its JSON form
// first so field names and color arrays match the device wire format.
func MarshalYAML(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, awtrix.NewSerializationError("failed to encode YAML output", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, awtrix.NewSerializationError("failed to encode YAML output", err)
	}
	data, err := yaml.Marshal(generic)
	if err != nil {
		return nil, awtrix.NewSerializationError("failed to encode YAML output", err)
	}
	return data, nil
}

// Render writes v in the requested format. text produces the human form.
func (p *Printer) Render(format Format, v any, text func() string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = MarshalJSON(v)
	case FormatYAML:
		data, err = MarshalYAML(v)
	default:
		p.Print(text())
		return nil
	}
	if err != nil {
		return err
	}
	_, err = p.out.Write(data)
	return err
}
