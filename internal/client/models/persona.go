// Package models defines client-side data models used by the Spectra app.
package models

import "fmt"

// Persona is one of the mutually exclusive identities the local user can
// act as. Neutral is the pre-selection state and has no spectra ID.
type Persona string

const (
	PersonaFamily  Persona = "family"
	PersonaWork    Persona = "work"
	PersonaGhost   Persona = "ghost"
	PersonaNeutral Persona = "neutral"
)

// ParsePersona validates a raw persona string.
func ParsePersona(s string) (Persona, error) {
	switch Persona(s) {
	case PersonaFamily, PersonaWork, PersonaGhost, PersonaNeutral:
		return Persona(s), nil
	}
	return "", fmt.Errorf("unknown persona %q", s)
}

// SpectraIDs is the identifier triple generated once per installation.
// The three identifiers are pairwise distinct.
type SpectraIDs struct {
	Family string `json:"family"`
	Work   string `json:"work"`
	Ghost  string `json:"ghost"`
}

// For returns the identifier belonging to the given persona, or "" for
// neutral (which is not addressable).
func (s SpectraIDs) For(p Persona) string {
	switch p {
	case PersonaFamily:
		return s.Family
	case PersonaWork:
		return s.Work
	case PersonaGhost:
		return s.Ghost
	}
	return ""
}

// All returns the persona→identifier pairs in a stable order.
func (s SpectraIDs) All() map[Persona]string {
	return map[Persona]string{
		PersonaFamily: s.Family,
		PersonaWork:   s.Work,
		PersonaGhost:  s.Ghost,
	}
}
