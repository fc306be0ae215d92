package security

import "context"

// Authenticator is the device biometric facility. The production value is
// platform-specific; tests inject fakes.
type Authenticator interface {
	// Available reports whether biometric hardware exists on this device.
	Available(ctx context.Context) bool

	// Enrolled reports whether at least one biometric credential is
	// enrolled.
	Enrolled(ctx context.Context) bool

	// Challenge runs a live authentication prompt. It returns nil on
	// success, common.ErrChallengeDeclined when the user fails or cancels,
	// and common.ErrHardwareUnavailable when the facility cannot run.
	Challenge(ctx context.Context) error
}

// NoBiometrics is an Authenticator for hosts without biometric hardware.
type NoBiometrics struct{}

func (NoBiometrics) Available(ctx context.Context) bool  { return false }
func (NoBiometrics) Enrolled(ctx context.Context) bool   { return false }
func (NoBiometrics) Challenge(ctx context.Context) error { return errHardware() }
