package awtrix

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinKelvin and MaxKelvin bound the mood light color temperature
	MinKelvin = 2000
	MaxKelvin = 6500

	// IndicatorCount is the number of corner indicators on the matrix
	IndicatorCount = 3
)

// ValidateIndicator validates an indicator number.
// The matrix has three indicators, numbered 1-3.
func ValidateIndicator(n int) error {
	if n < 1 || n > IndicatorCount {
		return NewValidationError(fmt.Sprintf("indicator must be 1-%d, got %d", IndicatorCount, n))
	}
	return nil
}

// ParseIndicators turns "1", "2", "3" or "all" into indicator numbers
func ParseIndicators(arg string) ([]int, error) {
	if strings.EqualFold(arg, "all") {
		return []int{1, 2, 3}, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("indicator must be 1-%d or 'all', got %q", IndicatorCount, arg))
	}
	if err := ValidateIndicator(n); err != nil {
		return nil, err
	}
	return []int{n}, nil
}

// ValidateKelvin validates a mood light color temperature
func ValidateKelvin(k int) error {
	if k < MinKelvin || k > MaxKelvin {
		return NewValidationError(fmt.Sprintf("kelvin must be between %d and %d, got %d", MinKelvin, MaxKelvin, k))
	}
	return nil
}

// ValidateSleepDuration validates a sleep duration in seconds
func ValidateSleepDuration(seconds int) error {
	if seconds <= 0 {
		return NewValidationError(fmt.Sprintf("sleep duration must be greater than 0, got %d", seconds))
	}
	return nil
}

// ValidateRTTTL does a shallow check of an RTTTL string.
// RTTTL is "name:defaults:notes", so a valid melody always contains ':'.
func ValidateRTTTL(rtttl string) error {
	if !strings.Contains(rtttl, ":") {
		return NewValidationError("invalid RTTTL format: expected name:settings:notes")
	}
	return nil
}

// ParseIcon parses an icon id as entered on the command line
func ParseIcon(s string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, NewInvalidIconError(fmt.Sprintf("icon must be a numeric id, got %q", s))
	}
	return uint32(id), nil
}

// ValidateAppName validates a custom app name
func ValidateAppName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("app name cannot be empty")
	}
	if strings.ContainsAny(name, "/#+") {
		return NewValidationError(fmt.Sprintf("app name %q cannot contain '/', '#' or '+'", name))
	}
	return nil
}

func validateTimeFormat(format uint8) error {
	if format > MaxTimeFormat {
		return NewValidationError(fmt.Sprintf("time_app.format must be between 0 and %d, got %d", MaxTimeFormat, format))
	}
	return nil
}

// Validate checks the ranges the type system does not enforce, for settings
// that did not come through SetSetting (an imported file, for example)
func (s Settings) Validate() error {
	if s.TimeApp != nil && s.TimeApp.Format != nil {
		return validateTimeFormat(*s.TimeApp.Format)
	}
	return nil
}
