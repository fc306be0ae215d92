// Package common defines shared constants and sentinel errors used across
// the Spectra client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Security errors.
	ErrPinMismatch         = errors.New("pin mismatch")
	ErrPinFormat           = errors.New("pin must be 4 digits")
	ErrHardwareUnavailable = errors.New("biometric hardware unavailable")
	ErrNotEnrolled         = errors.New("no biometrics enrolled")
	ErrChallengeDeclined   = errors.New("biometric challenge declined")
	ErrLocked              = errors.New("app is locked")

	// Messaging validation errors.
	ErrEmptyMessage   = errors.New("empty message")
	ErrMessageTooLong = errors.New("message too long")
	ErrSelfChat       = errors.New("cannot start a chat with yourself")
)
