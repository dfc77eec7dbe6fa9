package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

// settable lists the keys accepted by SetValue.
var settable = map[string]valueKind{
	"station.name":               kindString,
	"station.slogan":             kindString,
	"station.stream_url":         kindString,
	"station.default_title":      kindString,
	"station.placeholder_photo":  kindString,
	"metadata.url":               kindString,
	"metadata.fallback_interval": kindInt,
	"metadata.slot_duration":     kindInt,
	"player.volume":              kindInt,
	"schedule.clock_interval":    kindInt,
	"messages.backend":           kindString,
	"messages.path":              kindString,
	"messages.limit":             kindInt,
	"messages.rotate_interval":   kindInt,
	"messages.fade_duration":     kindInt,
	"moderator.passphrase":       kindString,
	"tui.theme":                  kindString,
	"log.level":                  kindString,
	"log.file":                   kindString,
	"log.max_size":               kindInt,
	"log.max_backups":            kindInt,
	"log.max_age":                kindInt,
	"log.compress":               kindBool,
}

// SettableKeys returns the keys SetValue accepts.
func SettableKeys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	return keys
}

func writeHeader(w io.Writer) {
	_, _ = fmt.Fprintln(w, "# onair configuration")
	_, _ = fmt.Fprintln(w, "")
}

// WriteDefault creates a config file at path holding the default values.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	writeHeader(f)
	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetValue updates one "section.key" in the config file at path, creating
// the file if needed. Other keys are preserved.
func SetValue(path, key, value string) error {
	kind, ok := settable[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	section, field, _ := strings.Cut(key, ".")

	var typed any
	switch kind {
	case kindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typed = i
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value must be true or false for %s", key)
		}
		typed = b
	default:
		typed = value
	}

	raw := make(map[string]any)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) > 0 {
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}
	sectionMap[field] = typed

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	writeHeader(f)
	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(raw); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
