// Package common contains shared constants and sentinel errors used across
// Spectra components.
package common

// MaxMessageLen is the maximum accepted message length in characters.
const MaxMessageLen = 1000

// PinLength is the required number of digits in an unlock PIN.
const PinLength = 4
