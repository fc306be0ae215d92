package securestore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/HASANPOWER/Spectra-App/internal/client/repositories/settings"
)

// EncryptedStore is the fallback SecretStore for platforms without a
// keychain. Secrets are sealed with AES-GCM under a key derived (argon2id)
// from a random per-installation device secret. This keeps the PIN out of
// the plain settings rows but is only as strong as the device secret
// stored alongside it; the keychain store is preferred wherever it works.
type EncryptedStore struct {
	settings settings.Repository
}

func NewEncryptedStore(repo settings.Repository) *EncryptedStore {
	return &EncryptedStore{settings: repo}
}

// deviceKey loads or creates the per-installation secret and salt, and
// derives the AES key from them.
func (s *EncryptedStore) deviceKey(ctx context.Context) ([]byte, error) {
	secret, err := s.settings.Get(ctx, settings.KeyDeviceSecret)
	if err != nil {
		return nil, err
	}
	salt, err := s.settings.Get(ctx, settings.KeyDeviceSecretSalt)
	if err != nil {
		return nil, err
	}

	if secret == nil || salt == nil {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate device secret: %w", err)
		}
		salt = make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		if err := s.settings.Set(ctx, settings.KeyDeviceSecret, secret); err != nil {
			return nil, err
		}
		if err := s.settings.Set(ctx, settings.KeyDeviceSecretSalt, salt); err != nil {
			return nil, err
		}
	}

	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32), nil
}

func (s *EncryptedStore) aead(ctx context.Context) (cipher.AEAD, error) {
	key, err := s.deviceKey(ctx)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *EncryptedStore) Get(ctx context.Context, key string) (string, error) {
	ciphertext, err := s.settings.Get(ctx, settings.KeyPinCipher+":"+key)
	if err != nil {
		return "", err
	}
	if ciphertext == nil {
		return "", nil
	}
	nonce, err := s.settings.Get(ctx, settings.KeyPinCipherNonce+":"+key)
	if err != nil {
		return "", err
	}

	aead, err := s.aead(ctx)
	if err != nil {
		return "", err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to unseal secret %s: %w", key, err)
	}
	return string(plaintext), nil
}

func (s *EncryptedStore) Set(ctx context.Context, key, value string) error {
	aead, err := s.aead(ctx)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext := aead.Seal(nil, nonce, []byte(value), nil)

	if err := s.settings.Set(ctx, settings.KeyPinCipher+":"+key, ciphertext); err != nil {
		return err
	}
	return s.settings.Set(ctx, settings.KeyPinCipherNonce+":"+key, nonce)
}

func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	if err := s.settings.Delete(ctx, settings.KeyPinCipher+":"+key); err != nil {
		return err
	}
	return s.settings.Delete(ctx, settings.KeyPinCipherNonce+":"+key)
}
