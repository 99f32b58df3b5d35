package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/muurk/awtrix/internal/awtrix"
	"github.com/muurk/awtrix/internal/urls"
)

// messageBuilder is the builder surface shared by notifications and custom apps
type messageBuilder[B any] interface {
	Text(string) B
	Icon(uint32) B
	Color(awtrix.Color) B
	Duration(uint32) B
	Progress(int) B
	ProgressColor(awtrix.Color) B
	ProgressBackground(awtrix.Color) B
	Rainbow(bool) B
	NoScroll(bool) B
	Effect(string) B
}

// messageFlags are the content flags of "notify send" and "custom create"
type messageFlags struct {
	text          string
	icon          string
	color         string
	duration      uint32
	progress      int
	progressColor string
	progressBg    string
	rainbow       bool
	noScroll      bool
	effect        string
	file          string
}

func (m *messageFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&m.text, "text", "t", "", "Text to display")
	fs.StringVarP(&m.icon, "icon", "i", "", "Icon ID from "+urls.Icons)
	fs.StringVarP(&m.color, "color", "c", "", "Text color (#RRGGBB, r,g,b or a color name)")
	fs.Uint32Var(&m.duration, "duration", 0, "Display duration in seconds")
	fs.IntVarP(&m.progress, "progress", "p", 0, "Progress bar value (0-100)")
	fs.StringVar(&m.progressColor, "progress-color", "", "Progress bar color")
	fs.StringVar(&m.progressBg, "progress-bg", "", "Progress bar background color")
	fs.BoolVar(&m.rainbow, "rainbow", false, "Rainbow text")
	fs.BoolVar(&m.noScroll, "no-scroll", false, "Disable text scrolling")
	fs.StringVar(&m.effect, "effect", "", "Background effect (see 'awtrix info effects' or "+urls.Effects+")")
	fs.StringVarP(&m.file, "file", "f", "", "Read the message from a JSON file ('-' for stdin)")
}

// applyMessage copies the set flags onto b
func applyMessage[B messageBuilder[B]](b B, m *messageFlags, fs *pflag.FlagSet) error {
	if m.text != "" {
		b.Text(m.text)
	}
	if m.icon != "" {
		icon, err := awtrix.ParseIcon(m.icon)
		if err != nil {
			return err
		}
		b.Icon(icon)
	}
	if err := withColor(m.color, func(c awtrix.Color) { b.Color(c) }); err != nil {
		return err
	}
	if fs.Changed("duration") {
		b.Duration(m.duration)
	}
	if fs.Changed("progress") {
		b.Progress(m.progress)
	}
	if err := withColor(m.progressColor, func(c awtrix.Color) { b.ProgressColor(c) }); err != nil {
		return err
	}
	if err := withColor(m.progressBg, func(c awtrix.Color) { b.ProgressBackground(c) }); err != nil {
		return err
	}
	if m.rainbow {
		b.Rainbow(true)
	}
	if m.noScroll {
		b.NoScroll(true)
	}
	if m.effect != "" {
		b.Effect(m.effect)
	}
	return nil
}

// withColor parses s and passes the color to set, doing nothing for ""
func withColor(s string, set func(awtrix.Color)) error {
	if s == "" {
		return nil
	}
	c, err := awtrix.ParseColor(s)
	if err != nil {
		return err
	}
	set(c)
	return nil
}

// readJSONFile decodes the JSON document at path, or stdin for "-"
func readJSONFile[T any](path string, stdin io.Reader) (T, error) {
	var out T

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return out, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, awtrix.NewSerializationError(fmt.Sprintf("invalid JSON in %s", path), err)
	}
	return out, nil
}
