// Package securestore keeps the unlock PIN out of the plain settings
// table. The primary implementation uses the OS keychain; an encrypted
// SQLite-backed fallback covers platforms without one.
package securestore

import "context"

// SecretStore stores small secrets under string keys.
//
// Contract: Get returns ("", nil) for a missing key; Delete of a missing
// key is a no-op.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KeyPinCode is the protected-storage key holding the 4-digit unlock PIN.
const KeyPinCode = "spectra_pin_code"
