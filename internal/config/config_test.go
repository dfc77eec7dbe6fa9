package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[station]
name = "Rádio Teste"

[player]
volume = 35
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Station.Name != "Rádio Teste" {
		t.Errorf("Station.Name = %q, want %q", cfg.Station.Name, "Rádio Teste")
	}
	if cfg.Player.Volume != 35 {
		t.Errorf("Player.Volume = %d, want 35", cfg.Player.Volume)
	}
	if cfg.Station.StreamURL == "" {
		t.Error("Station.StreamURL should default")
	}
	if cfg.Messages.Limit != 50 {
		t.Errorf("Messages.Limit = %d, want 50", cfg.Messages.Limit)
	}
	if len(cfg.Programs) != 3 {
		t.Errorf("len(Programs) = %d, want 3", len(cfg.Programs))
	}
	if len(cfg.Metadata.Playlist) != 15 {
		t.Errorf("len(Playlist) = %d, want 15", len(cfg.Metadata.Playlist))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadFromRestoresEmptyPassphrase(t *testing.T) {
	path := writeConfig(t, `
[moderator]
passphrase = ""
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Moderator.Passphrase != "mod123" {
		t.Errorf("Passphrase = %q, want %q", cfg.Moderator.Passphrase, "mod123")
	}
}

func TestLoadFromPrograms(t *testing.T) {
	path := writeConfig(t, `
[[programs]]
id = 1
start_hour = 6
name = "Manhã"
announcer = "Ana"

[[programs]]
id = 2
start_hour = 18
name = "Noite"
announcer = "Rui"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if len(cfg.Programs) != 2 {
		t.Fatalf("len(Programs) = %d, want 2", len(cfg.Programs))
	}
	if cfg.Programs[1].StartHour != 18 || cfg.Programs[1].Announcer != "Rui" {
		t.Errorf("Programs[1] = %+v", cfg.Programs[1])
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ONAIR_MODERATOR_PASSPHRASE", "s3cret")
	t.Setenv("ONAIR_VOLUME", "42")
	t.Setenv("ONAIR_MESSAGES_BACKEND", "sqlite")

	cfg, err := LoadFrom(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Moderator.Passphrase != "s3cret" {
		t.Errorf("Passphrase = %q, want %q", cfg.Moderator.Passphrase, "s3cret")
	}
	if cfg.Player.Volume != 42 {
		t.Errorf("Volume = %d, want 42", cfg.Player.Volume)
	}
	if cfg.Messages.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Messages.Backend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"volume too high", func(c *Config) { c.Player.Volume = 150 }, "volume"},
		{"bad stream scheme", func(c *Config) { c.Station.StreamURL = "ftp://x" }, "stream_url"},
		{"bad backend", func(c *Config) { c.Messages.Backend = "redis" }, "invalid backend"},
		{"fade longer than rotation", func(c *Config) { c.Messages.FadeDuration = 9000 }, "fade_duration"},
		{"no programs", func(c *Config) { c.Programs = nil }, "at least one program"},
		{"hour out of range", func(c *Config) { c.Programs[0].StartHour = 24 }, "start_hour"},
		{"unordered programs", func(c *Config) { c.Programs[2].StartHour = 4 }, "ordered"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log level"},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, "theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestMessagesPath(t *testing.T) {
	cfg := Default()
	cfg.Messages.Path = "/tmp/custom.json"
	got, err := cfg.MessagesPath()
	if err != nil || got != "/tmp/custom.json" {
		t.Errorf("MessagesPath() = %q, %v", got, err)
	}

	cfg.Messages.Path = ""
	cfg.Messages.Backend = "sqlite"
	got, err = cfg.MessagesPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(got) != "messages.db" {
		t.Errorf("MessagesPath() = %q, want messages.db", got)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if got := cfg.Messages.RotateEvery().Seconds(); got != 8 {
		t.Errorf("RotateEvery() = %vs, want 8s", got)
	}
	if got := cfg.Metadata.Slot().Minutes(); got != 3 {
		t.Errorf("Slot() = %vm, want 3m", got)
	}
	if got := cfg.Player.VolumeLevel(); got != 0.8 {
		t.Errorf("VolumeLevel() = %v, want 0.8", got)
	}
}
