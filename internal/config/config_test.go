package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Race.Seed != nil || cfg.Storage.Backend != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := writeConfig(t, `
[race]
seed = "monday"
passages = 3
ghost = true
sampling = "drain"

[storage]
backend = "file"

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if String(cfg.Race.Seed, "") != "monday" || *cfg.Race.Passages != 3 || !*cfg.Race.Ghost {
		t.Fatalf("unexpected race section %+v", cfg.Race)
	}
	if String(cfg.Race.Sampling, "last") != "drain" || String(cfg.Storage.Backend, "") != BackendFile {
		t.Fatalf("unexpected values %+v", cfg)
	}
	if String(cfg.Log.Level, "info") != "debug" {
		t.Fatalf("unexpected log level")
	}
	if cfg.Race.Words != nil {
		t.Fatalf("unset keys must stay nil")
	}
}

func TestLoadConfigRejectsUnknown(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "[race]\nspeed = 3\n")); err == nil || !strings.Contains(err.Error(), "race.speed") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	if _, err := LoadConfig(writeConfig(t, "[storage]\nbackend = \"redis\"\n")); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestDataDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	if got := DefaultDBPath(); got != filepath.Join(dir, "tuiracer.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultReplayDir(); got != filepath.Join(dir, "replays") {
		t.Fatalf("unexpected replay dir %q", got)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := DefaultLogPath(); got != filepath.Join("/data", "tuiracer", "tuiracer.log") {
		t.Fatalf("unexpected log path %q", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuiracer", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
}
