// Package security implements the local authentication state machine:
// PIN and biometric gating with persisted enablement flags.
//
// The machine starts in StateLoading, settles into a locked variant or
// StateUnlocked once persisted flags are read, and then cycles between
// unlocked and locked for the life of the process.
package security

// State is the lock state of the app.
type State int

const (
	StateLoading State = iota
	StateUnlocked
	StateLockedPinOnly
	StateLockedBiometricOnly
	StateLockedBoth
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnlocked:
		return "unlocked"
	case StateLockedPinOnly:
		return "locked-pin"
	case StateLockedBiometricOnly:
		return "locked-biometric"
	case StateLockedBoth:
		return "locked-both"
	}
	return "unknown"
}

// Locked reports whether content is gated behind an unlock.
func (s State) Locked() bool {
	switch s {
	case StateLockedPinOnly, StateLockedBiometricOnly, StateLockedBoth:
		return true
	}
	return false
}
