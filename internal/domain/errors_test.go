package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthenticationFailure_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("401 unauthorized")
	err := NewAuthenticationFailure(cause)

	if err.Error() != "Error connecting to provider." {
		t.Errorf("message = %q, want the fixed provider text", err.Error())
	}
	if !errors.Is(err, ErrAuthentication) {
		t.Error("expected errors.Is(err, ErrAuthentication)")
	}

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatal("expected *AuthenticationError")
	}
	if authErr.Cause != cause {
		t.Errorf("Cause = %v, want original cause", authErr.Cause)
	}
}

func TestDeviceResolutionFailure_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("404 not found")
	err := NewDeviceResolutionFailure("qpu-west-7", cause)

	if err.Error() != "Connection to provider made. Error connecting to the specified device." {
		t.Errorf("message = %q, want the fixed provider text", err.Error())
	}
	if !errors.Is(err, ErrDeviceResolution) {
		t.Error("expected errors.Is(err, ErrDeviceResolution)")
	}

	var devErr *DeviceResolutionError
	if !errors.As(err, &devErr) {
		t.Fatal("expected *DeviceResolutionError")
	}
	if devErr.Device != "qpu-west-7" {
		t.Errorf("Device = %q, want qpu-west-7", devErr.Device)
	}
}

func TestValidationError_Wraps(t *testing.T) {
	err := NewValidationError("depth must be non-negative, got %d", -2)
	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}

	wrapped := fmt.Errorf("compile circuit: %w", err)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("validation sentinel must survive wrapping")
	}
}

func TestCounts_TotalShots(t *testing.T) {
	counts := Counts{"00": 3, "01": 5, "11": 2}
	if counts.TotalShots() != 10 {
		t.Errorf("TotalShots() = %d, want 10", counts.TotalShots())
	}
	if (Counts{}).TotalShots() != 0 {
		t.Error("empty counts must total 0")
	}
}
