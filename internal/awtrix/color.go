package awtrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Color is an RGB triple. It is sent to the device as [r,g,b] and accepted
// back either as that array or as a hex string.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// RGB returns a Color from its three channels
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
}

// FromHex parses "#RRGGBB" or "RRGGBB"
func FromHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, NewInvalidColorError(s)
	}

	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, NewInvalidColorError(s)
		}
		channels[i] = uint8(v)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Hex returns the canonical "#RRGGBB" form
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer
func (c Color) String() string {
	return c.Hex()
}

// NamedColor looks up a color by name, ignoring case
func NamedColor(name string) (Color, error) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, NewUnknownColorError(name)
	}
	return c, nil
}

// ColorNames lists the named colors in alphabetical order
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseColor parses user input in one of three forms, tried in order:
// hex ("#FF0000" or "FF0000"), a decimal triple ("255, 0, 0"), or a color name.
func ParseColor(input string) (Color, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Color{}, NewInvalidColorError(input)
	}

	if strings.HasPrefix(s, "#") || isHexDigits(s) {
		return FromHex(s)
	}

	if strings.Contains(s, ",") {
		return parseTriple(s)
	}

	return NamedColor(s)
}

func isHexDigits(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func parseTriple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, NewInvalidColorError(s)
	}

	var channels [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return Color{}, NewInvalidColorError(s)
		}
		channels[i] = uint8(v)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// MarshalJSON encodes the color as [r,g,b]
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d]", c.R, c.G, c.B)), nil
}

// UnmarshalJSON accepts [r,g,b] first, then a hex string
func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var channels []int
	if err := json.Unmarshal(data, &channels); err == nil {
		if len(channels) != 3 {
			return fmt.Errorf("color array must have 3 elements, got %d", len(channels))
		}
		for _, v := range channels {
			if v < 0 || v > 255 {
				return fmt.Errorf("color channel %d out of range 0-255", v)
			}
		}
		*c = Color{R: uint8(channels[0]), G: uint8(channels[1]), B: uint8(channels[2])}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be [r,g,b] or a hex string, got %s", data)
	}
	parsed, err := FromHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
