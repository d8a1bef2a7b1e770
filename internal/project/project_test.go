package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	m := &Marker{
		GameID:    "g-123",
		BuildPath: "./build",
		Platform:  "webgl",
	}
	require.NoError(t, Save(dir, m))
	assert.False(t, m.CreatedAt.IsZero(), "Save should stamp CreatedAt")

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "g-123", loaded.GameID)
	assert.Equal(t, "./build", loaded.BuildPath)
	assert.Equal(t, "webgl", loaded.Platform)
	assert.WithinDuration(t, time.Now(), loaded.CreatedAt, time.Minute)
}

func TestLoadUnlinkedDir(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotLinked)
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Save(dir, &Marker{GameID: "g-1", Platform: "ios"}))
	require.NoError(t, Save(dir, &Marker{GameID: "g-2", Platform: "android"}))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "g-2", loaded.GameID)
	assert.Equal(t, "android", loaded.Platform)
}

func TestLoadRejectsMissingGameID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MarkerFile), []byte(`{"platform":"webgl"}`), 0o644))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "missing gameId")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))

	require.NoError(t, Save(dir, &Marker{GameID: "g-1"}))
	assert.True(t, Exists(dir))
}
