// Package app holds the client's UI-facing state: locale, theme flag and
// the active persona. Every mutation persists to the settings store before
// touching memory, so a crash never leaves the two disagreeing.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/client/repositories/settings"
	"github.com/HASANPOWER/Spectra-App/internal/client/theme"
	"github.com/HASANPOWER/Spectra-App/internal/logging"
)

const defaultLanguage = "en"

// State is the mutable application state. Safe for concurrent use.
type State struct {
	settings settings.Repository
	log      logging.Logger

	mu       sync.Mutex
	language string
	darkMode bool
	persona  models.Persona
	ids      models.SpectraIDs
}

func NewState(repo settings.Repository, log logging.Logger) *State {
	return &State{
		settings: repo,
		log:      log,
		language: defaultLanguage,
		persona:  models.PersonaFamily,
	}
}

// Load restores persisted state. ids is the identifier triple already
// loaded by the identity service; the persisted active ID selects the
// persona, falling back to family when nothing matches.
func (s *State) Load(ctx context.Context, ids models.SpectraIDs) error {
	lang, err := settings.GetString(ctx, s.settings, settings.KeyLanguage)
	if err != nil {
		return fmt.Errorf("failed to load language: %w", err)
	}
	dark, err := settings.GetBool(ctx, s.settings, settings.KeyDarkMode)
	if err != nil {
		return fmt.Errorf("failed to load dark mode: %w", err)
	}
	activeID, err := settings.GetString(ctx, s.settings, settings.KeySpectraID)
	if err != nil {
		return fmt.Errorf("failed to load active id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if lang != "" {
		s.language = lang
	}
	s.darkMode = dark
	s.ids = ids
	s.persona = models.PersonaFamily
	for p, id := range ids.All() {
		if id != "" && id == activeID {
			s.persona = p
			break
		}
	}
	return nil
}

func (s *State) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage persists and applies a new UI language.
func (s *State) SetLanguage(ctx context.Context, lang string) error {
	if lang == "" {
		lang = defaultLanguage
	}
	if err := settings.SetString(ctx, s.settings, settings.KeyLanguage, lang); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return nil
}

func (s *State) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// SetDarkMode persists and applies the theme flag.
func (s *State) SetDarkMode(ctx context.Context, dark bool) error {
	if err := settings.SetBool(ctx, s.settings, settings.KeyDarkMode, dark); err != nil {
		return fmt.Errorf("failed to save dark mode: %w", err)
	}
	s.mu.Lock()
	s.darkMode = dark
	s.mu.Unlock()
	return nil
}

func (s *State) Persona() models.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persona
}

// ActiveID returns the spectra ID of the active persona.
func (s *State) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.For(s.persona)
}

// IDs returns the full identifier triple.
func (s *State) IDs() models.SpectraIDs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids
}

// SwitchPersona makes p the active identity and persists the choice. The
// caller is responsible for closing any open inbox or session first; each
// persona sees only its own conversations.
func (s *State) SwitchPersona(ctx context.Context, p models.Persona) error {
	s.mu.Lock()
	id := s.ids.For(p)
	s.mu.Unlock()
	if id == "" {
		return fmt.Errorf("no spectra id for persona %q", p)
	}

	if err := settings.SetString(ctx, s.settings, settings.KeySpectraID, id); err != nil {
		return fmt.Errorf("failed to save active id: %w", err)
	}

	s.mu.Lock()
	s.persona = p
	s.mu.Unlock()
	s.log.Info(ctx, "persona switched", "persona", string(p))
	return nil
}

// Theme returns the color palette for the active persona and theme flag.
func (s *State) Theme() theme.Colors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return theme.For(s.persona, s.darkMode)
}
