package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/iplan/internal/model"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "iplan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLoadStateEmptyReturnsDefaults(t *testing.T) {
	c := openTemp(t)
	st := c.LoadState()
	assert.Equal(t, "Guest User", st.User.Name)
	assert.Equal(t, model.LanguageEnglish, st.Language)
	assert.Empty(t, st.Tasks)
	assert.Zero(t, st.XP)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := openTemp(t)

	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	st := model.DefaultState()
	st.Version = 7
	st.XP = 135
	st.Theme = model.ThemeDark
	st.Subjects = []model.Subject{{ID: "s1", Name: "Math", Color: "#4ECDC4"}}
	st.Tasks = []model.Task{{
		ID: "t1", Title: "homework", SubjectID: "s1",
		DueType: model.DueSpecific, DueDate: "2026-08-29",
		Status: model.StatusPending, Priority: model.PriorityHigh,
		CreatedAt: now,
	}}
	st.Badges = []model.Badge{{ID: model.BadgeFirstTask, UnlockedAt: now}}

	require.NoError(t, c.SaveState(st))
	loaded := c.LoadState()

	if diff := cmp.Diff(st, loaded); diff != "" {
		t.Fatalf("state changed across save/load (-want +got):\n%s", diff)
	}
}

func TestSaveOverwritesSingleKey(t *testing.T) {
	c := openTemp(t)

	first := model.DefaultState()
	first.XP = 10
	require.NoError(t, c.SaveState(first))

	second := model.DefaultState()
	second.XP = 20
	require.NoError(t, c.SaveState(second))

	assert.Equal(t, 20, c.LoadState().XP)
}

func TestLoadStateCorruptFallsBackToDefaults(t *testing.T) {
	c := openTemp(t)
	_, err := c.db.Exec(`INSERT INTO app_state (key, value) VALUES ('app_state', '{not json')`)
	require.NoError(t, err)

	st := c.LoadState()
	assert.Equal(t, "Guest User", st.User.Name)
	assert.Zero(t, st.XP)
}

func TestLoadStateMergesOverDefaults(t *testing.T) {
	c := openTemp(t)

	// A snapshot written by an older version that predates the language
	// field still loads with the default language filled in.
	_, err := c.db.Exec(`INSERT INTO app_state (key, value) VALUES ('app_state', ?)`,
		`{"xp": 55, "theme": "dark"}`)
	require.NoError(t, err)

	st := c.LoadState()
	assert.Equal(t, 55, st.XP)
	assert.Equal(t, model.ThemeDark, st.Theme)
	assert.Equal(t, model.LanguageEnglish, st.Language)
	assert.Equal(t, "Guest User", st.User.Name)
}
