// Package theme maps (persona, light/dark) to a fixed color record. The
// mapping is a total function over closed enums, so an unhandled persona
// value cannot slip through at runtime.
package theme

import "github.com/HASANPOWER/Spectra-App/internal/client/models"

// Colors is one persona palette. Values are hex color strings.
type Colors struct {
	Primary       string
	PrimaryDark   string
	Background    string
	Surface       string
	TextPrimary   string
	TextSecondary string
	Accent        string
}

// For returns the palette for the given persona and mode. Unknown personas
// fall back to the neutral palette.
func For(p models.Persona, dark bool) Colors {
	if dark {
		return darkColors(p)
	}
	return lightColors(p)
}

func darkColors(p models.Persona) Colors {
	switch p {
	case models.PersonaFamily:
		return Colors{
			Primary:       "#FF8C42",
			PrimaryDark:   "#D97232",
			Background:    "#1A1412",
			Surface:       "#2D1F1A",
			TextPrimary:   "#FFFFFF",
			TextSecondary: "#FFD4B8",
			Accent:        "#FFAB73",
		}
	case models.PersonaWork:
		return Colors{
			Primary:       "#3B82F6",
			PrimaryDark:   "#1E3A8A",
			Background:    "#0A0E1A",
			Surface:       "#151B2E",
			TextPrimary:   "#FFFFFF",
			TextSecondary: "#93A3D1",
			Accent:        "#60A5FA",
		}
	case models.PersonaGhost:
		return Colors{
			Primary:       "#00FF41",
			PrimaryDark:   "#00CC34",
			Background:    "#000000",
			Surface:       "#1A1A1A",
			TextPrimary:   "#FFFFFF",
			TextSecondary: "#7FFF9F",
			Accent:        "#39FF14",
		}
	default:
		return Colors{
			Primary:       "#FFFFFF",
			PrimaryDark:   "#CCCCCC",
			Background:    "#0A0A0A",
			Surface:       "#1A1A1A",
			TextPrimary:   "#FFFFFF",
			TextSecondary: "#888888",
			Accent:        "#666666",
		}
	}
}

func lightColors(p models.Persona) Colors {
	switch p {
	case models.PersonaFamily:
		return Colors{
			Primary:       "#FF8C42",
			PrimaryDark:   "#D97232",
			Background:    "#FFF8F3",
			Surface:       "#FFF0E6",
			TextPrimary:   "#1A1412",
			TextSecondary: "#8B5A3C",
			Accent:        "#FFAB73",
		}
	case models.PersonaWork:
		return Colors{
			Primary:       "#3B82F6",
			PrimaryDark:   "#1E3A8A",
			Background:    "#F0F6FF",
			Surface:       "#E0EDFF",
			TextPrimary:   "#0A0E1A",
			TextSecondary: "#3D5A80",
			Accent:        "#60A5FA",
		}
	case models.PersonaGhost:
		return Colors{
			Primary:       "#00CC34",
			PrimaryDark:   "#00AA2A",
			Background:    "#F0FFF4",
			Surface:       "#E0FFE8",
			TextPrimary:   "#0A1A0E",
			TextSecondary: "#2D5A3A",
			Accent:        "#39FF14",
		}
	default:
		return Colors{
			Primary:       "#333333",
			PrimaryDark:   "#111111",
			Background:    "#FFFFFF",
			Surface:       "#F5F5F5",
			TextPrimary:   "#111111",
			TextSecondary: "#666666",
			Accent:        "#888888",
		}
	}
}
