package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Station.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("station: %w", err))
	}
	if err := c.Metadata.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("metadata: %w", err))
	}
	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Schedule.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := c.validatePrograms(); err != nil {
		errs = append(errs, fmt.Errorf("programs: %w", err))
	}
	if err := c.Messages.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("messages: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", field)
	}
	return nil
}

// Validate checks StationConfig for errors.
func (c *StationConfig) Validate() error {
	if c.StreamURL != "" {
		return validateURL("stream_url", c.StreamURL)
	}
	return nil
}

// Validate checks MetadataConfig for errors.
func (c *MetadataConfig) Validate() error {
	if c.URL != "" {
		if err := validateURL("url", c.URL); err != nil {
			return err
		}
	}
	if c.FallbackInterval < 0 {
		return errors.New("fallback_interval must be non-negative")
	}
	if c.SlotDuration < 0 {
		return errors.New("slot_duration must be non-negative")
	}
	return nil
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	if c.Volume < 0 || c.Volume > 100 {
		return errors.New("volume must be between 0 and 100")
	}
	return nil
}

// Validate checks ScheduleConfig for errors.
func (c *ScheduleConfig) Validate() error {
	if c.ClockInterval < 0 {
		return errors.New("clock_interval must be non-negative")
	}
	return nil
}

// validatePrograms checks that the schedule is non-empty, in range and
// ordered by start hour.
func (c *Config) validatePrograms() error {
	if len(c.Programs) == 0 {
		return errors.New("at least one program is required")
	}
	prev := -1
	for i, p := range c.Programs {
		if p.StartHour < 0 || p.StartHour > 23 {
			return fmt.Errorf("program %d (%s): start_hour must be between 0 and 23", i, p.Name)
		}
		if p.StartHour < prev {
			return fmt.Errorf("program %d (%s): programs must be ordered by start_hour", i, p.Name)
		}
		prev = p.StartHour
	}
	return nil
}

// Validate checks MessagesConfig for errors.
func (c *MessagesConfig) Validate() error {
	switch c.Backend {
	case "", "json", "sqlite", "memory":
		// valid
	default:
		return fmt.Errorf("invalid backend: %s (must be json, sqlite, or memory)", c.Backend)
	}
	if c.Limit < 0 {
		return errors.New("limit must be non-negative")
	}
	if c.RotateInterval < 0 || c.FadeDuration < 0 {
		return errors.New("rotate_interval and fade_duration must be non-negative")
	}
	if c.FadeDuration > 0 && c.RotateInterval > 0 && c.FadeDuration >= c.RotateInterval {
		return errors.New("fade_duration must be shorter than rotate_interval")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.MaxSize < 0 || c.MaxBackups < 0 || c.MaxAge < 0 {
		return errors.New("max_size, max_backups and max_age must be non-negative")
	}
	return nil
}
