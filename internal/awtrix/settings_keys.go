package awtrix

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxTimeFormat is the highest clock format index the firmware knows
const MaxTimeFormat = 5

// SettingKey documents one addressable settings field
type SettingKey struct {
	Key         string
	Type        string
	Description string
}

type settingField struct {
	SettingKey
	get func(s *Settings) (string, bool)
	set func(s *Settings, value string) error
}

func (s *Settings) timeApp() *TimeAppSettings {
	if s.TimeApp == nil {
		s.TimeApp = &TimeAppSettings{}
	}
	return s.TimeApp
}

func (s *Settings) dateApp() *DateAppSettings {
	if s.DateApp == nil {
		s.DateApp = &DateAppSettings{}
	}
	return s.DateApp
}

// settingFields is the closed set of keys accepted by SettingValue and SetSetting.
// Order matches the output of 'settings list'.
var settingFields = []settingField{
	{
		SettingKey: SettingKey{"brightness", "0-255", "Matrix brightness"},
		get:        func(s *Settings) (string, bool) { return showUint(s.Brightness) },
		set: func(s *Settings, v string) error {
			return parseUintInto(&s.Brightness, "brightness", v)
		},
	},
	{
		SettingKey: SettingKey{"auto_brightness", "bool", "Adjust brightness from the light sensor"},
		get:        func(s *Settings) (string, bool) { return showBool(s.AutoBrightness) },
		set: func(s *Settings, v string) error {
			return parseBoolInto(&s.AutoBrightness, "auto_brightness", v)
		},
	},
	{
		SettingKey: SettingKey{"auto_transition", "bool", "Rotate through the app loop automatically"},
		get:        func(s *Settings) (string, bool) { return showBool(s.AutoTransition) },
		set: func(s *Settings, v string) error {
			return parseBoolInto(&s.AutoTransition, "auto_transition", v)
		},
	},
	{
		SettingKey: SettingKey{"app_time", "seconds", "Time each app stays on screen"},
		get:        func(s *Settings) (string, bool) { return showUint(s.AppTime) },
		set: func(s *Settings, v string) error {
			return parseUintInto(&s.AppTime, "app_time", v)
		},
	},
	{
		SettingKey: SettingKey{"transition", "string", "Transition effect between apps"},
		get:        func(s *Settings) (string, bool) { return showString(s.Transition) },
		set: func(s *Settings, v string) error {
			s.Transition = Ptr(v)
			return nil
		},
	},
	{
		SettingKey: SettingKey{"transition_time", "milliseconds", "Duration of the transition effect"},
		get:        func(s *Settings) (string, bool) { return showUint(s.TransitionTime) },
		set: func(s *Settings, v string) error {
			return parseUintInto(&s.TransitionTime, "transition_time", v)
		},
	},
	{
		SettingKey: SettingKey{"text_color", "color", "Default text color"},
		get:        func(s *Settings) (string, bool) { return showColor(s.TextColor) },
		set: func(s *Settings, v string) error {
			return parseColorInto(&s.TextColor, v)
		},
	},
	{
		SettingKey: SettingKey{"temp_unit", "string", "Temperature unit (C or F)"},
		get:        func(s *Settings) (string, bool) { return showString(s.TempUnit) },
		set: func(s *Settings, v string) error {
			s.TempUnit = Ptr(v)
			return nil
		},
	},
	{
		SettingKey: SettingKey{"scroll_speed", "percent", "Text scroll speed"},
		get:        func(s *Settings) (string, bool) { return showUint(s.ScrollSpeed) },
		set: func(s *Settings, v string) error {
			return parseUintInto(&s.ScrollSpeed, "scroll_speed", v)
		},
	},
	{
		SettingKey: SettingKey{"time_app.format", "0-5", "Clock format index"},
		get: func(s *Settings) (string, bool) {
			if s.TimeApp == nil {
				return "", false
			}
			return showUint(s.TimeApp.Format)
		},
		set: func(s *Settings, v string) error {
			var format *uint8
			if err := parseUintInto(&format, "time_app.format", v); err != nil {
				return err
			}
			if err := validateTimeFormat(*format); err != nil {
				return err
			}
			s.timeApp().Format = format
			return nil
		},
	},
	{
		SettingKey: SettingKey{"time_app.show_weekday", "bool", "Show the weekday bar under the clock"},
		get: func(s *Settings) (string, bool) {
			if s.TimeApp == nil {
				return "", false
			}
			return showBool(s.TimeApp.ShowWeekday)
		},
		set: func(s *Settings, v string) error {
			var b *bool
			if err := parseBoolInto(&b, "time_app.show_weekday", v); err != nil {
				return err
			}
			s.timeApp().ShowWeekday = b
			return nil
		},
	},
	{
		SettingKey: SettingKey{"time_app.cal_header_color", "color", "Calendar header color"},
		get: func(s *Settings) (string, bool) {
			if s.TimeApp == nil {
				return "", false
			}
			return showColor(s.TimeApp.CalHeaderColor)
		},
		set: func(s *Settings, v string) error {
			var c *Color
			if err := parseColorInto(&c, v); err != nil {
				return err
			}
			s.timeApp().CalHeaderColor = c
			return nil
		},
	},
	{
		SettingKey: SettingKey{"time_app.cal_body_color", "color", "Calendar body color"},
		get: func(s *Settings) (string, bool) {
			if s.TimeApp == nil {
				return "", false
			}
			return showColor(s.TimeApp.CalBodyColor)
		},
		set: func(s *Settings, v string) error {
			var c *Color
			if err := parseColorInto(&c, v); err != nil {
				return err
			}
			s.timeApp().CalBodyColor = c
			return nil
		},
	},
	{
		SettingKey: SettingKey{"time_app.cal_text_color", "color", "Calendar text color"},
		get: func(s *Settings) (string, bool) {
			if s.TimeApp == nil {
				return "", false
			}
			return showColor(s.TimeApp.CalTextColor)
		},
		set: func(s *Settings, v string) error {
			var c *Color
			if err := parseColorInto(&c, v); err != nil {
				return err
			}
			s.timeApp().CalTextColor = c
			return nil
		},
	},
	{
		SettingKey: SettingKey{"date_app.enabled", "bool", "Include the date app in the loop"},
		get: func(s *Settings) (string, bool) {
			if s.DateApp == nil {
				return "", false
			}
			return showBool(s.DateApp.Enabled)
		},
		set: func(s *Settings, v string) error {
			var b *bool
			if err := parseBoolInto(&b, "date_app.enabled", v); err != nil {
				return err
			}
			s.dateApp().Enabled = b
			return nil
		},
	},
	{
		SettingKey: SettingKey{"date_app.format", "string", "Date format string"},
		get: func(s *Settings) (string, bool) {
			if s.DateApp == nil {
				return "", false
			}
			return showString(s.DateApp.Format)
		},
		set: func(s *Settings, v string) error {
			s.dateApp().Format = Ptr(v)
			return nil
		},
	},
}

var settingIndex = func() map[string]*settingField {
	idx := make(map[string]*settingField, len(settingFields))
	for i := range settingFields {
		idx[settingFields[i].Key] = &settingFields[i]
	}
	return idx
}()

// SettingKeys lists every key accepted by SettingValue and SetSetting
func SettingKeys() []SettingKey {
	keys := make([]SettingKey, len(settingFields))
	for i, f := range settingFields {
		keys[i] = f.SettingKey
	}
	return keys
}

func lookupSetting(key string) (*settingField, error) {
	f, ok := settingIndex[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, NewUnknownSettingError(key)
	}
	return f, nil
}

// SettingValue renders the value stored under key. ok is false when the
// field is not set.
func SettingValue(s *Settings, key string) (value string, ok bool, err error) {
	f, err := lookupSetting(key)
	if err != nil {
		return "", false, err
	}
	if s == nil {
		return "", false, nil
	}
	value, ok = f.get(s)
	return value, ok, nil
}

// SetSetting parses value for key and stores it in s. Writing a time_app or
// date_app key creates that group if it is missing. On error s is unchanged.
func SetSetting(s *Settings, key, value string) error {
	f, err := lookupSetting(key)
	if err != nil {
		return err
	}
	return f.set(s, strings.TrimSpace(value))
}

// ApplySetting returns a copy of s with key set to value. s is never modified.
func ApplySetting(s Settings, key, value string) (Settings, error) {
	out := s.Clone()
	if err := SetSetting(&out, key, value); err != nil {
		return s, err
	}
	return out, nil
}

func showUint[T uint8 | uint32](p *T) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatUint(uint64(*p), 10), true
}

func showBool(p *bool) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatBool(*p), true
}

func showString(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func showColor(p *Color) (string, bool) {
	if p == nil {
		return "", false
	}
	return p.Hex(), true
}

func parseUintInto[T uint8 | uint32](dst **T, key, v string) error {
	bits := 32
	var zero T
	if _, ok := any(zero).(uint8); ok {
		bits = 8
	}
	n, err := strconv.ParseUint(v, 10, bits)
	if err != nil {
		return NewValidationError(fmt.Sprintf("%s expects an unsigned integer (max %d bits), got %q", key, bits, v))
	}
	val := T(n)
	*dst = &val
	return nil
}

func parseBoolInto(dst **bool, key, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return NewValidationError(fmt.Sprintf("%s expects true or false, got %q", key, v))
	}
	*dst = &b
	return nil
}

func parseColorInto(dst **Color, v string) error {
	c, err := ParseColor(v)
	if err != nil {
		return err
	}
	*dst = &c
	return nil
}
