package cli

import (
	"context"
	"errors"
	"time"

	"github.com/HASANPOWER/Spectra-App/internal/client/security"
	"github.com/HASANPOWER/Spectra-App/internal/common"
)

// getPin is a test seam for interactive PIN entry.
var getPin = GetPin

// sleepFn is a test seam so the mismatch delay does not slow tests down.
var sleepFn = time.Sleep

// unlock walks the lock gate. Biometric unlock is attempted first when it
// is the enabled protection, mirroring the automatic prompt on app launch;
// PIN entry loops until it matches or input ends. Returns false when the
// user gave up, which ends the program without exposing any data.
func (a *App) unlock(ctx context.Context) bool {
	state := a.security.State()
	if !state.Locked() {
		return true
	}

	printlnFn("Spectra is locked (" + state.String() + ")")

	if state == security.StateLockedBiometricOnly || state == security.StateLockedBoth {
		if err := a.security.AuthenticateBiometric(ctx); err == nil {
			return true
		} else if state == security.StateLockedBiometricOnly {
			printlnFn("Biometric unlock failed:", err.Error())
			return false
		}
	}

	for a.security.State().Locked() {
		pin, err := getPin("Enter PIN", stdout())
		if err != nil {
			return false
		}
		if pin == "" {
			return false
		}

		err = a.security.VerifyPin(ctx, pin)
		if err == nil {
			return true
		}
		if errors.Is(err, common.ErrPinMismatch) {
			printlnFn("Wrong PIN, try again.")
			// Matches the lock screen behavior: the mismatch indicator
			// stays visible briefly before input clears.
			sleepFn(security.PinClearDelay)
			continue
		}
		printlnFn("PIN check failed:", err.Error())
		return false
	}
	return true
}
