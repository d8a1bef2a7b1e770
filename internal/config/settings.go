// Package config owns the CLI's local state: environment-derived settings and
// the JSON config file at ~/.gamebuild/config.json.
package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds CLI settings resolved from the environment. Flags may
// override individual fields after Load.
type Settings struct {
	APIURL     string `envconfig:"GAMEBUILD_API_URL" default:"https://api.gamebuild.io"`
	Token      string `envconfig:"GAMEBUILD_TOKEN"`
	ConfigFile string `envconfig:"GAMEBUILD_CONFIG"`
	Output     string `envconfig:"GAMEBUILD_OUTPUT" default:"text"`
	Verbose    bool   `envconfig:"GAMEBUILD_VERBOSE"`
}

// LoadSettings resolves settings from the environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}
	if s.ConfigFile == "" {
		s.ConfigFile = DefaultPath()
	}
	return &s, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gamebuild", "config.json")
	}
	return filepath.Join(home, ".gamebuild", "config.json")
}
