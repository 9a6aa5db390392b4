package ecp

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a transport-level error (connection refused, unreachable, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeRequest indicates a non-2xx HTTP response from the device
	ErrTypeRequest
	// ErrTypeProtocol indicates a response that violates the ECP wire contract
	// (for example an active-app document with more than one app element)
	ErrTypeProtocol
	// ErrTypeValidation indicates a caller-supplied argument was invalid
	ErrTypeValidation
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeRequest:
		return "Request Failed"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred while talking to a Roku device
type DeviceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (ErrTypeRequest only)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a transport-level error, classifying timeouts separately
func NewNetworkError(message string, err error) *DeviceError {
	if os.IsTimeout(err) {
		return &DeviceError{Type: ErrTypeTimeout, Message: message, Err: err}
	}

	// url.Error wraps the interesting error; look through it
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &DeviceError{Type: ErrTypeTimeout, Message: message, Err: err}
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &DeviceError{Type: ErrTypeNetwork, Message: "device refused connection", Err: err}
	}

	return &DeviceError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// NewRequestError creates an error for a non-2xx HTTP response
func NewRequestError(statusCode int, message string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeRequest,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewProtocolError creates an error for a response that violates the wire contract
func NewProtocolError(message string) *DeviceError {
	return &DeviceError{Type: ErrTypeProtocol, Message: message}
}

// NewParseError creates a protocol error wrapping an XML decode failure
func NewParseError(message string, err error) *DeviceError {
	return &DeviceError{Type: ErrTypeProtocol, Message: message, Err: err}
}

// NewValidationError creates an error for an invalid caller-supplied argument
func NewValidationError(message string) *DeviceError {
	return &DeviceError{Type: ErrTypeValidation, Message: message}
}

// IsRequestFailed checks if an error is a non-2xx HTTP response error
func IsRequestFailed(err error) bool {
	return hasType(err, ErrTypeRequest)
}

// IsProtocolError checks if an error is a wire-contract violation
func IsProtocolError(err error) bool {
	return hasType(err, ErrTypeProtocol)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrTypeValidation)
}

// IsNetworkError checks if an error is a transport error (including timeouts)
func IsNetworkError(err error) bool {
	return hasType(err, ErrTypeNetwork) || hasType(err, ErrTypeTimeout)
}

func hasType(err error, et ErrorType) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == et
	}
	return false
}
