// Package project manages the marker file linking a working directory to a
// remote game.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MarkerFile is the name of the per-directory link file.
const MarkerFile = "gamebuild.json"

// ErrNotLinked is returned when the directory has no marker file.
var ErrNotLinked = errors.New("no linked project")

// Marker links a working directory to a remote game.
type Marker struct {
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
	BuildPath string    `json:"buildPath"`
	Platform  string    `json:"platform"`
}

// Load reads the marker file from dir.
func Load(dir string) (*Marker, error) {
	raw, err := os.ReadFile(filepath.Join(dir, MarkerFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLinked
		}
		return nil, err
	}
	var m Marker
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", MarkerFile, err)
	}
	if m.GameID == "" {
		return nil, fmt.Errorf("invalid %s: missing gameId", MarkerFile)
	}
	return &m, nil
}

// Save writes the marker file into dir, replacing any existing one.
func Save(dir string, m *Marker) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MarkerFile), data, 0o644)
}

// Exists reports whether dir has a marker file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil
}
