package state_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/state"
)

func openTestDB(t *testing.T) *state.DB {
	t.Helper()
	db, err := state.OpenPath(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetSetting("missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, db.SetSetting(state.KeyLastView, "kanban"))
	require.NoError(t, db.SetSetting(state.KeyLastView, "calendar")) // upsert

	got, err = db.GetSetting(state.KeyLastView)
	require.NoError(t, err)
	assert.Equal(t, "calendar", got)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)

	assert.Empty(t, db.Token())
	assert.Nil(t, db.User())

	user := models.User{
		ID:        "u1",
		Email:     "a@b.c",
		Name:      "Ada",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.SaveSession("tok123", user))

	assert.Equal(t, "tok123", db.Token())
	stored := db.User()
	require.NotNil(t, stored)
	assert.Equal(t, user, *stored)

	require.NoError(t, db.ClearSession())
	assert.Empty(t, db.Token())
	assert.Nil(t, db.User())
}
