package config

import (
	"time"

	"github.com/tessro/onair/internal/core"
)

// Config is the root configuration structure.
type Config struct {
	Station   StationConfig   `toml:"station"`
	Metadata  MetadataConfig  `toml:"metadata"`
	Player    PlayerConfig    `toml:"player"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Messages  MessagesConfig  `toml:"messages"`
	Moderator ModeratorConfig `toml:"moderator"`
	TUI       TUIConfig       `toml:"tui"`
	Log       LogConfig       `toml:"log"`
	Programs  []core.Program  `toml:"programs"`
}

// StationConfig holds station branding and the audio stream source.
type StationConfig struct {
	Name             string `toml:"name"`
	Slogan           string `toml:"slogan"`
	StreamURL        string `toml:"stream_url"`
	DefaultTitle     string `toml:"default_title"`
	PlaceholderPhoto string `toml:"placeholder_photo"`
}

// MetadataConfig holds now-playing feed settings.
type MetadataConfig struct {
	URL              string   `toml:"url"`
	Playlist         []string `toml:"playlist"`
	FallbackInterval int      `toml:"fallback_interval"` // milliseconds
	SlotDuration     int      `toml:"slot_duration"`     // milliseconds
}

// PlayerConfig holds playback settings.
type PlayerConfig struct {
	Volume int `toml:"volume"`
}

// ScheduleConfig holds program schedule settings.
type ScheduleConfig struct {
	ClockInterval int `toml:"clock_interval"` // milliseconds
}

// MessagesConfig holds listener message storage and feed settings.
type MessagesConfig struct {
	Backend        string `toml:"backend"`
	Path           string `toml:"path"`
	Limit          int    `toml:"limit"`
	RotateInterval int    `toml:"rotate_interval"` // milliseconds
	FadeDuration   int    `toml:"fade_duration"`   // milliseconds
}

// ModeratorConfig holds the moderator passphrase.
type ModeratorConfig struct {
	Passphrase string `toml:"passphrase"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"` // megabytes
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"` // days
	Compress   bool   `toml:"compress"`
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// FallbackEvery returns the simulated metadata refresh interval.
func (c *MetadataConfig) FallbackEvery() time.Duration { return millis(c.FallbackInterval) }

// Slot returns the length of one simulated track.
func (c *MetadataConfig) Slot() time.Duration { return millis(c.SlotDuration) }

// Every returns the schedule re-evaluation interval.
func (c *ScheduleConfig) Every() time.Duration { return millis(c.ClockInterval) }

// RotateEvery returns the message rotation interval.
func (c *MessagesConfig) RotateEvery() time.Duration { return millis(c.RotateInterval) }

// Fade returns the message fade-out duration.
func (c *MessagesConfig) Fade() time.Duration { return millis(c.FadeDuration) }

// VolumeLevel returns the configured volume as a 0.0-1.0 level.
func (c *PlayerConfig) VolumeLevel() float64 {
	return float64(c.Volume) / 100
}
