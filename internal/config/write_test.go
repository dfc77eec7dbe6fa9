package config

import (
	"path/filepath"
	"testing"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault() over existing file error = nil")
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
	if len(cfg.Programs) != 3 {
		t.Errorf("Programs = %d, want 3", len(cfg.Programs))
	}
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SetValue(path, "player.volume", "40"); err != nil {
		t.Fatalf("SetValue(volume) error = %v", err)
	}
	if err := SetValue(path, "tui.theme", "light"); err != nil {
		t.Fatalf("SetValue(theme) error = %v", err)
	}
	if err := SetValue(path, "log.compress", "true"); err != nil {
		t.Fatalf("SetValue(compress) error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Player.Volume != 40 {
		t.Errorf("Player.Volume = %d, want 40", cfg.Player.Volume)
	}
	if cfg.TUI.Theme != "light" {
		t.Errorf("TUI.Theme = %q, want light", cfg.TUI.Theme)
	}
	if !cfg.Log.Compress {
		t.Error("Log.Compress = false, want true")
	}
}

func TestSetValueErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	tests := []struct {
		key, value string
	}{
		{"station", "x"},
		{"spotify.client_id", "abc"},
		{"player.volume", "loud"},
		{"log.compress", "maybe"},
	}
	for _, tt := range tests {
		if err := SetValue(path, tt.key, tt.value); err == nil {
			t.Errorf("SetValue(%q, %q) error = nil", tt.key, tt.value)
		}
	}
}
