package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/HASANPOWER/Spectra-App/internal/client/repositories/settings"
	"github.com/HASANPOWER/Spectra-App/internal/client/securestore"
	"github.com/HASANPOWER/Spectra-App/internal/common"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

// PinClearDelay is how long a mismatch indicator stays up before the caller
// clears the entered PIN and the error flag.
const PinClearDelay = 500 * time.Millisecond

var pinShape = regexp.MustCompile(`^[0-9]{4}$`)

func errHardware() error { return common.ErrHardwareUnavailable }

// Manager is the security state machine. All methods are safe for
// concurrent use; the machine is single-writer in practice (UI events),
// but timers and snapshot callbacks may read state concurrently.
type Manager struct {
	settings settings.Repository
	secrets  securestore.SecretStore
	auth     Authenticator
	log      logging.Logger

	mu               sync.Mutex
	state            State
	pinEnabled       bool
	biometricEnabled bool
	storedPin        string
	attempts         int
	loaded           bool
}

func NewManager(repo settings.Repository, secrets securestore.SecretStore, auth Authenticator, log logging.Logger) *Manager {
	return &Manager{
		settings: repo,
		secrets:  secrets,
		auth:     auth,
		log:      log,
		state:    StateLoading,
	}
}

// Load reads the persisted flags and PIN and settles the machine into its
// initial state: locked whenever either protection is enabled. Local read
// failures degrade to defaults so the app still starts; they are logged,
// not propagated.
func (m *Manager) Load(ctx context.Context) {
	pinEnabled, err := settings.GetBool(ctx, m.settings, settings.KeyPinEnabled)
	if err != nil {
		m.log.Error(ctx, "failed to read pin flag", "error", err)
	}
	biometricEnabled, err := settings.GetBool(ctx, m.settings, settings.KeyBiometricEnabled)
	if err != nil {
		m.log.Error(ctx, "failed to read biometric flag", "error", err)
	}

	pin, err := m.secrets.Get(ctx, securestore.KeyPinCode)
	if err != nil {
		m.log.Error(ctx, "failed to read pin from protected storage", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinEnabled = pinEnabled
	m.biometricEnabled = biometricEnabled
	m.storedPin = pin
	m.state = m.lockedState()
	m.loaded = true
	m.log.Info(ctx, "security state loaded", "state", m.state.String())
}

// lockedState computes the lock variant from the current flags. Callers
// hold m.mu.
func (m *Manager) lockedState() State {
	switch {
	case m.pinEnabled && m.biometricEnabled:
		return StateLockedBoth
	case m.pinEnabled:
		return StateLockedPinOnly
	case m.biometricEnabled:
		return StateLockedBiometricOnly
	}
	return StateUnlocked
}

// State returns the current lock state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loaded reports whether Load has completed. The first render is gated on
// this so a protected app never flashes content before the lock screen.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Attempts returns the failed-PIN counter. Display only: there is no
// lockout, but a max-attempts policy can be layered on this counter
// without restructuring the machine.
func (m *Manager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// VerifyPin compares the candidate against the stored PIN. A match
// unlocks; a mismatch keeps the machine locked, bumps the attempt counter
// and returns common.ErrPinMismatch. The caller should clear its input
// after PinClearDelay.
func (m *Manager) VerifyPin(ctx context.Context, candidate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.Locked() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(m.storedPin)) == 1 && m.storedPin != "" {
		m.state = StateUnlocked
		m.attempts = 0
		m.log.Info(ctx, "unlocked with pin")
		return nil
	}

	m.attempts++
	m.log.Warn(ctx, "pin mismatch", "attempts", m.attempts)
	return common.ErrPinMismatch
}

// AuthenticateBiometric runs a live biometric challenge. Success unlocks.
// Decline or hardware failure leaves the state unchanged and returns the
// typed error for the caller to surface.
func (m *Manager) AuthenticateBiometric(ctx context.Context) error {
	m.mu.Lock()
	enabled := m.biometricEnabled
	locked := m.state.Locked()
	m.mu.Unlock()

	if !locked {
		return nil
	}
	if !enabled {
		return common.ErrHardwareUnavailable
	}

	if err := m.auth.Challenge(ctx); err != nil {
		m.log.Warn(ctx, "biometric challenge failed", "error", err)
		return err
	}

	m.mu.Lock()
	m.state = StateUnlocked
	m.attempts = 0
	m.mu.Unlock()
	m.log.Info(ctx, "unlocked with biometrics")
	return nil
}

// Lock re-arms the gate, e.g. on resume from background. A no-op when
// neither protection is enabled.
func (m *Manager) Lock(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.lockedState()
}

// EnablePin sets the unlock PIN and turns PIN protection on. The two-step
// confirmation happens here: pin and confirm must match exactly, and the
// caller re-collects only the confirmation on mismatch.
func (m *Manager) EnablePin(ctx context.Context, pin, confirm string) error {
	if !pinShape.MatchString(pin) {
		return common.ErrPinFormat
	}
	if pin != confirm {
		return common.ErrPinMismatch
	}

	// Persist before mutating in-memory state so a storage failure leaves
	// the machine consistent with disk.
	if err := m.secrets.Set(ctx, securestore.KeyPinCode, pin); err != nil {
		return fmt.Errorf("failed to store pin: %w", err)
	}
	if err := settings.SetBool(ctx, m.settings, settings.KeyPinEnabled, true); err != nil {
		return fmt.Errorf("failed to persist pin flag: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.storedPin = pin
	m.pinEnabled = true
	return nil
}

// ChangePin replaces the stored PIN. Same contract as EnablePin; only
// meaningful while PIN protection is already on.
func (m *Manager) ChangePin(ctx context.Context, pin, confirm string) error {
	return m.EnablePin(ctx, pin, confirm)
}

// DisablePin turns PIN protection off. Deliberately unconditional, no
// re-authentication required (see DESIGN.md).
func (m *Manager) DisablePin(ctx context.Context) error {
	if err := settings.SetBool(ctx, m.settings, settings.KeyPinEnabled, false); err != nil {
		return fmt.Errorf("failed to persist pin flag: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinEnabled = false
	return nil
}

// EnableBiometric turns biometric protection on after the full gate
// sequence: hardware present, credentials enrolled, live challenge
// passed. The flag flips only after all three succeed.
func (m *Manager) EnableBiometric(ctx context.Context) error {
	if !m.auth.Available(ctx) {
		return common.ErrHardwareUnavailable
	}
	if !m.auth.Enrolled(ctx) {
		return common.ErrNotEnrolled
	}
	if err := m.auth.Challenge(ctx); err != nil {
		return err
	}

	if err := settings.SetBool(ctx, m.settings, settings.KeyBiometricEnabled, true); err != nil {
		return fmt.Errorf("failed to persist biometric flag: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.biometricEnabled = true
	return nil
}

// DisableBiometric turns biometric protection off, unconditionally.
func (m *Manager) DisableBiometric(ctx context.Context) error {
	if err := settings.SetBool(ctx, m.settings, settings.KeyBiometricEnabled, false); err != nil {
		return fmt.Errorf("failed to persist biometric flag: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.biometricEnabled = false
	return nil
}

// PinEnabled reports the persisted PIN flag.
func (m *Manager) PinEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pinEnabled
}

// BiometricEnabled reports the persisted biometric flag.
func (m *Manager) BiometricEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.biometricEnabled
}
