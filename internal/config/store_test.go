package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".gamebuild", "config.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s
}

func TestSetGetDeleteRoundTrip(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("a.b.c", "5"))

	val, err := s.Get("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, float64(5), val)

	require.NoError(t, s.Delete("a.b.c"))

	_, err = s.Get("a.b.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValueCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"bool", "true", true},
		{"number", "42", float64(42)},
		{"object", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"array", `[1,2]`, []any{float64(1), float64(2)}},
		{"string", "hello", "hello"},
		{"quoted string stays string", `"42"`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)
			require.NoError(t, s.Set("x", tt.raw))
			val, err := s.Get("x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, val)
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("auth.token", "tok_abcdefgh12345678"))
	require.NoError(t, s.Set("project.defaultPlatform", "webgl"))
	require.NoError(t, s.Save())

	// File must be valid indented JSON with mode 0600.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	reloaded, err := Open(path)
	require.NoError(t, err)

	val, err := reloaded.Get("auth.token")
	require.NoError(t, err)
	assert.Equal(t, "tok_abcdefgh12345678", val)

	val, err = reloaded.Get("project.defaultPlatform")
	require.NoError(t, err)
	assert.Equal(t, "webgl", val)
}

func TestDeleteMissingPath(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Set("a.b", "1"))

	assert.ErrorIs(t, s.Delete("a.missing"), ErrNotFound)
	assert.ErrorIs(t, s.Delete("nope"), ErrNotFound)
}

func TestBracketIndexPaths(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("project.tags[0]", `"alpha"`))
	require.NoError(t, s.Set("project.tags[1]", `"beta"`))

	val, err := s.Get("project.tags[1]")
	require.NoError(t, err)
	assert.Equal(t, "beta", val)

	require.NoError(t, s.Delete("project.tags[0]"))
	val, err = s.Get("project.tags[0]")
	require.NoError(t, err)
	assert.Equal(t, "beta", val)
}

func TestFlatten(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Set("auth.token", "tok_secretsecret"))
	require.NoError(t, s.Set("auth.baseUrl", `"https://api.example.com"`))
	require.NoError(t, s.Set("project.gameId", "g-123"))

	entries := s.Flatten()
	require.Len(t, entries, 3)
	assert.Equal(t, "auth.baseUrl", entries[0].Key)
	assert.Equal(t, "auth.token", entries[1].Key)
	assert.Equal(t, "project.gameId", entries[2].Key)
}

func TestSensitiveMasking(t *testing.T) {
	assert.True(t, IsSensitive("auth.token"))
	assert.True(t, IsSensitive("webhookSecret"))
	assert.True(t, IsSensitive("db.PASSWORD"))
	assert.True(t, IsSensitive("apiKey"))
	assert.False(t, IsSensitive("project.gameId"))

	masked := MaskValue("tok_abcdefgh12345678")
	assert.Equal(t, "tok_...5678", masked)
	assert.NotContains(t, masked, "abcdefgh")

	assert.Equal(t, "***", MaskValue("short"))
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, s.Flatten())
}

func TestOpenRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}
