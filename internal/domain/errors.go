package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed Hamiltonian terms or angle sets.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupportedTerm signals a Pauli term the pipeline cannot handle.
	ErrUnsupportedTerm = errors.New("unsupported pauli term")
	// ErrAuthentication signals a failed provider credential check.
	ErrAuthentication = errors.New("provider authentication failed")
	// ErrDeviceResolution signals an unknown or unreachable target device.
	ErrDeviceResolution = errors.New("device resolution failed")
	// ErrExecution signals a circuit execution failure after adapter construction.
	ErrExecution = errors.New("circuit execution failed")
)

// User-facing connectivity messages. The exact text is part of the backend
// adapter contract; callers tell the failed stage apart by it.
const (
	MsgAuthenticationFailure   = "Error connecting to provider."
	MsgDeviceResolutionFailure = "Connection to provider made. Error connecting to the specified device."
)

// AuthenticationError wraps ErrAuthentication with its fixed user-facing message.
type AuthenticationError struct {
	Cause error
}

func (e *AuthenticationError) Error() string { return MsgAuthenticationFailure }

func (e *AuthenticationError) Unwrap() error { return ErrAuthentication }

// NewAuthenticationFailure creates an authentication failure with the given cause.
func NewAuthenticationFailure(cause error) error {
	return &AuthenticationError{Cause: cause}
}

// DeviceResolutionError wraps ErrDeviceResolution with its fixed user-facing message.
type DeviceResolutionError struct {
	Device string
	Cause  error
}

func (e *DeviceResolutionError) Error() string { return MsgDeviceResolutionFailure }

func (e *DeviceResolutionError) Unwrap() error { return ErrDeviceResolution }

// NewDeviceResolutionFailure creates a device resolution failure for the named device.
func NewDeviceResolutionFailure(device string, cause error) error {
	return &DeviceResolutionError{Device: device, Cause: cause}
}

// NewValidationError creates a validation error with a formatted reason.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
