package app

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
	"github.com/HASANPOWER/Spectra-App/internal/client/repositories/settings"
	"github.com/HASANPOWER/Spectra-App/internal/logging"

	_ "modernc.org/sqlite"
)

var testIDs = models.SpectraIDs{
	Family: "@FAM-111",
	Work:   "@WRK-222",
	Ghost:  "@GHO-333",
}

func setupState(t *testing.T) (*State, settings.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	repo := settings.NewSQLiteRepository(db)
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewState(repo, log), repo
}

func TestState_Defaults(t *testing.T) {
	st, _ := setupState(t)
	require.NoError(t, st.Load(context.Background(), testIDs))

	assert.Equal(t, "en", st.Language())
	assert.False(t, st.DarkMode())
	assert.Equal(t, models.PersonaFamily, st.Persona())
	assert.Equal(t, "@FAM-111", st.ActiveID())
}

func TestState_SwitchPersona_PersistsAcrossLoad(t *testing.T) {
	st, repo := setupState(t)
	ctx := context.Background()
	require.NoError(t, st.Load(ctx, testIDs))

	require.NoError(t, st.SwitchPersona(ctx, models.PersonaGhost))
	assert.Equal(t, "@GHO-333", st.ActiveID())

	// A fresh state restores the same persona from the stored ID.
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	st2 := NewState(repo, log)
	require.NoError(t, st2.Load(ctx, testIDs))
	assert.Equal(t, models.PersonaGhost, st2.Persona())
	assert.Equal(t, "@GHO-333", st2.ActiveID())
}

func TestState_SwitchPersona_UnknownID(t *testing.T) {
	st, _ := setupState(t)
	ctx := context.Background()
	require.NoError(t, st.Load(ctx, models.SpectraIDs{Family: "@FAM-111"}))

	err := st.SwitchPersona(ctx, models.PersonaWork)
	require.Error(t, err)
	assert.Equal(t, models.PersonaFamily, st.Persona())
}

func TestState_LanguageAndDarkMode_Persist(t *testing.T) {
	st, repo := setupState(t)
	ctx := context.Background()
	require.NoError(t, st.Load(ctx, testIDs))

	require.NoError(t, st.SetLanguage(ctx, "es"))
	require.NoError(t, st.SetDarkMode(ctx, true))

	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	st2 := NewState(repo, log)
	require.NoError(t, st2.Load(ctx, testIDs))
	assert.Equal(t, "es", st2.Language())
	assert.True(t, st2.DarkMode())
}

func TestState_Theme_FollowsPersonaAndMode(t *testing.T) {
	st, _ := setupState(t)
	ctx := context.Background()
	require.NoError(t, st.Load(ctx, testIDs))

	light := st.Theme()
	require.NoError(t, st.SetDarkMode(ctx, true))
	dark := st.Theme()
	assert.NotEqual(t, light.Background, dark.Background)

	require.NoError(t, st.SwitchPersona(ctx, models.PersonaGhost))
	ghost := st.Theme()
	assert.NotEqual(t, dark.Primary, ghost.Primary)
}
