// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Race    RaceConfig    `toml:"race"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// RaceConfig maps race-related settings.
type RaceConfig struct {
	Seed         *string `toml:"seed"`
	Passages     *int    `toml:"passages"`
	PassagesFile *string `toml:"passages-file"`
	WordList     *string `toml:"wordlist"`
	Words        *int    `toml:"words"`
	Ghost        *bool   `toml:"ghost"`
	Sampling     *string `toml:"sampling"`
}

// StorageConfig selects where replays and race history live.
type StorageConfig struct {
	Backend *string `toml:"backend"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if b := cfg.Storage.Backend; b != nil && *b != BackendSQLite && *b != BackendFile {
		return FileConfig{}, fmt.Errorf("unknown storage backend %q", *b)
	}
	return cfg, nil
}

// String returns the value or def when unset.
func String(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
