package awtrix

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/muurk/awtrix/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeTransport indicates a network-level failure talking to the device
	ErrTypeTransport ErrorType = iota
	// ErrTypeTimeout indicates the request did not complete in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the device refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the device hostname could not be resolved
	ErrTypeDNS
	// ErrTypeAPI indicates the device answered with a non-success status
	ErrTypeAPI
	// ErrTypeInvalidColor indicates a malformed hex or decimal color
	ErrTypeInvalidColor
	// ErrTypeUnknownColor indicates a color name outside the named table
	ErrTypeUnknownColor
	// ErrTypeInvalidIcon indicates an icon id that fails validation
	ErrTypeInvalidIcon
	// ErrTypeValidation indicates an out-of-range or unparseable input value
	ErrTypeValidation
	// ErrTypeUnknownSetting indicates a settings key outside the known set
	ErrTypeUnknownSetting
	// ErrTypeConfig indicates malformed local configuration
	ErrTypeConfig
	// ErrTypeSerialization indicates malformed JSON in either direction
	ErrTypeSerialization
	// ErrTypeURL indicates a malformed host or endpoint
	ErrTypeURL
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTransport:
		return "Transport error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection refused"
	case ErrTypeDNS:
		return "DNS error"
	case ErrTypeAPI:
		return "API error"
	case ErrTypeInvalidColor:
		return "Invalid color"
	case ErrTypeUnknownColor:
		return "Unknown color"
	case ErrTypeInvalidIcon:
		return "Invalid icon"
	case ErrTypeValidation:
		return "Invalid value"
	case ErrTypeUnknownSetting:
		return "Unknown setting"
	case ErrTypeConfig:
		return "Configuration error"
	case ErrTypeSerialization:
		return "Serialization error"
	case ErrTypeURL:
		return "URL error"
	case ErrTypeUnknown:
		return "Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError is the single error type returned by this package
type DeviceError struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (API errors only)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Host           string              // Device host (for hints)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	switch {
	case e.Type == ErrTypeAPI:
		return fmt.Sprintf("%s: %s (code: %d)", e.Type, e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport failure and returns a more specific error type
func ClassifyNetworkError(err error, host string) *DeviceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeviceError{
			Type:           ErrTypeTimeout,
			Message:        "request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Host:           host,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Host:           host,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &DeviceError{
				Type:           ErrTypeConnectionRefused,
				Message:        "device refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Host:           host,
			}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &DeviceError{
				Type:           ErrTypeTransport,
				Message:        "host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Host:           host,
			}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &DeviceError{
				Type:           ErrTypeTransport,
				Message:        "network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Host:           host,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err, host)
	}

	return &DeviceError{
		Type:           ErrTypeTransport,
		Message:        "network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Host:           host,
	}
}

// NewTransportError creates a transport error with automatic classification
func NewTransportError(message string, err error, host string) *DeviceError {
	classified := ClassifyNetworkError(err, host)
	if classified == nil {
		return &DeviceError{Type: ErrTypeTransport, Message: message, Host: host}
	}
	classified.Message = message
	return classified
}

// NewAPIError creates an error for a non-success device response
func NewAPIError(statusCode int, message string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeAPI,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewInvalidColorError reports a color string that could not be parsed
func NewInvalidColorError(input string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeInvalidColor,
		Message: fmt.Sprintf("invalid color: %q", input),
	}
}

// NewUnknownColorError reports a color name missing from the named table
func NewUnknownColorError(name string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeUnknownColor,
		Message: fmt.Sprintf("unknown color: %q", name),
	}
}

// NewInvalidIconError reports an icon id that fails validation
func NewInvalidIconError(message string) *DeviceError {
	return &DeviceError{Type: ErrTypeInvalidIcon, Message: message}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *DeviceError {
	return &DeviceError{Type: ErrTypeValidation, Message: message}
}

// NewUnknownSettingError reports a settings key outside the known set
func NewUnknownSettingError(key string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeUnknownSetting,
		Message: fmt.Sprintf("unknown setting key %q (run 'awtrix settings list' for available keys)", key),
	}
}

// NewConfigError creates a local configuration error
func NewConfigError(message string, err error) *DeviceError {
	return &DeviceError{Type: ErrTypeConfig, Message: message, Err: err}
}

// NewSerializationError creates a JSON encode/decode error
func NewSerializationError(message string, err error) *DeviceError {
	return &DeviceError{Type: ErrTypeSerialization, Message: message, Err: err}
}

// NewURLError creates a malformed URL error
func NewURLError(message string, err error) *DeviceError {
	return &DeviceError{Type: ErrTypeURL, Message: message, Err: err}
}

func errorType(err error) (ErrorType, bool) {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type, true
	}
	return ErrTypeUnknown, false
}

func isType(err error, types ...ErrorType) bool {
	t, ok := errorType(err)
	if !ok {
		return false
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

// IsTransportError checks if an error is a transport error (including timeout, connection refused and DNS)
func IsTransportError(err error) bool {
	return isType(err, ErrTypeTransport, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS)
}

// IsTimeoutError checks if an error is a request timeout
func IsTimeoutError(err error) bool {
	return isType(err, ErrTypeTimeout)
}

// IsAPIError checks if an error is a non-success device response
func IsAPIError(err error) bool {
	return isType(err, ErrTypeAPI)
}

// IsInvalidColorError checks if an error is a malformed color
func IsInvalidColorError(err error) bool {
	return isType(err, ErrTypeInvalidColor)
}

// IsUnknownColorError checks if an error is an unknown color name
func IsUnknownColorError(err error) bool {
	return isType(err, ErrTypeUnknownColor)
}

// IsUnknownSettingError checks if an error is an unknown settings key
func IsUnknownSettingError(err error) bool {
	return isType(err, ErrTypeUnknownSetting)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrTypeValidation, ErrTypeInvalidIcon)
}

// IsSerializationError checks if an error is a serialization error
func IsSerializationError(err error) bool {
	return isType(err, ErrTypeSerialization)
}

// IsURLError checks if an error is a malformed URL
func IsURLError(err error) bool {
	return isType(err, ErrTypeURL)
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return ""
	}

	switch devErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The device did not respond in time.",
			"Troubleshooting:",
			"  • Check that the clock is powered on and joined to WiFi",
			"  • Increase the timeout with --timeout",
			"  • Move the device closer to the access point",
			"See " + urls.Troubleshooting,
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The device refused the connection.",
			"Troubleshooting:",
			"  • The web server may still be starting after a reboot",
			"  • Verify the port if the host includes one",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the device hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of the hostname",
			"  • Run 'awtrix device discover' to find devices on the network",
		}, "\n")

	case ErrTypeTransport:
		hint := []string{"Network communication failed."}
		switch devErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			hint = append(hint,
				"Troubleshooting:",
				"  • Verify the device address is correct",
				"  • Check that you're on the same network as the device",
				"  • Try pinging the device: ping "+devErr.Host)
		case NetworkErrorNetworkUnreachable:
			hint = append(hint,
				"Troubleshooting:",
				"  • Check your network adapter settings",
				"  • Verify WiFi is enabled on your computer")
		default:
			hint = append(hint,
				"Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the device is powered on")
		}
		return strings.Join(hint, "\n")

	case ErrTypeAPI:
		if devErr.StatusCode == 404 {
			return "The device does not support this endpoint. Check the firmware version with 'awtrix info version'.\n" +
				"Endpoints by firmware release: " + urls.APIReference
		}
		if devErr.StatusCode >= 500 {
			return "The device reported an internal error. Try rebooting it with 'awtrix system reboot'."
		}
		return fmt.Sprintf("The device rejected the request (HTTP %d). Check the request parameters.", devErr.StatusCode)

	case ErrTypeUnknownSetting:
		return "Run 'awtrix settings list' to see the available keys.\nValue ranges: " + urls.Settings

	case ErrTypeInvalidColor, ErrTypeUnknownColor:
		return "Colors can be given as #RRGGBB, RRGGBB, r,g,b or one of: " + strings.Join(ColorNames(), ", ")

	default:
		return ""
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeTimeout:
		return "Device not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Device refused connection"
	case ErrTypeDNS:
		return "Cannot resolve device hostname"
	case ErrTypeTransport:
		switch devErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Device unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check WiFi connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeAPI:
		return fmt.Sprintf("Device error (HTTP %d): %s", devErr.StatusCode, devErr.Message)
	default:
		return devErr.Message
	}
}
