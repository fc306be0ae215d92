package securestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// service is the keychain service name Spectra secrets are filed under.
const service = "spectra"

// KeyringStore stores secrets in the operating system keychain.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Get(ctx context.Context, key string) (string, error) {
	v, err := keyring.Get(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keychain secret %s: %w", key, err)
	}
	return v, nil
}

func (s *KeyringStore) Set(ctx context.Context, key, value string) error {
	if err := keyring.Set(service, key, value); err != nil {
		return fmt.Errorf("failed to store keychain secret %s: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) Delete(ctx context.Context, key string) error {
	err := keyring.Delete(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete keychain secret %s: %w", key, err)
	}
	return nil
}

// Available probes whether the platform keychain is usable.
func (s *KeyringStore) Available(ctx context.Context) bool {
	_, err := keyring.Get(service, "probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
