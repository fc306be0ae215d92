// Package settings persists device-local key/value settings: UI locale,
// theme flag, the active spectra ID, security enablement flags, the
// generated identifier triple, and the remote-registration guard.
//
// A missing key is not an error: Get returns (nil, nil) and GetString
// returns ("", nil). Writes are upserts.
package settings

import "context"

// Keys persisted in the settings store.
const (
	KeyLanguage          = "language"
	KeyDarkMode          = "dark_mode"
	KeySpectraID         = "spectra_id"
	KeyPinEnabled        = "pin_enabled"
	KeyBiometricEnabled  = "biometric_enabled"
	KeySpectraIDs        = "spectra_ids"
	KeyUserRegistered    = "user_registered"
	KeyPinCipher         = "pin_cipher"
	KeyPinCipherNonce    = "pin_cipher_nonce"
	KeyDeviceSecret      = "device_secret"
	KeyDeviceSecretSalt  = "device_secret_salt"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// GetString reads a key as a string. Missing keys read as "".
func GetString(ctx context.Context, r Repository, key string) (string, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetString writes a string value under key.
func SetString(ctx context.Context, r Repository, key, value string) error {
	return r.Set(ctx, key, []byte(value))
}

// GetBool reads a key as a bool. Only the literal "true" counts as true, so
// missing or malformed values degrade to false.
func GetBool(ctx context.Context, r Repository, key string) (bool, error) {
	v, err := GetString(ctx, r, key)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// SetBool writes "true"/"false" under key.
func SetBool(ctx context.Context, r Repository, key string, value bool) error {
	s := "false"
	if value {
		s = "true"
	}
	return SetString(ctx, r, key, s)
}
