package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
)

func TestFor_TotalOverPersonas(t *testing.T) {
	personas := []models.Persona{
		models.PersonaFamily,
		models.PersonaWork,
		models.PersonaGhost,
		models.PersonaNeutral,
	}
	for _, p := range personas {
		for _, dark := range []bool{true, false} {
			c := For(p, dark)
			assert.NotEmpty(t, c.Primary, "%s dark=%v", p, dark)
			assert.NotEmpty(t, c.Background, "%s dark=%v", p, dark)
			assert.NotEmpty(t, c.TextPrimary, "%s dark=%v", p, dark)
		}
	}
}

func TestFor_UnknownPersonaFallsBackToNeutral(t *testing.T) {
	assert.Equal(t, For(models.PersonaNeutral, true), For(models.Persona("bogus"), true))
}

func TestFor_KnownValues(t *testing.T) {
	assert.Equal(t, "#00FF41", For(models.PersonaGhost, true).Primary)
	assert.Equal(t, "#00CC34", For(models.PersonaGhost, false).Primary)
	assert.Equal(t, "#FF8C42", For(models.PersonaFamily, true).Primary)
	assert.Equal(t, "#3B82F6", For(models.PersonaWork, false).Primary)
}
