package config

import "github.com/tessro/onair/internal/core"

// DefaultPlaylist is the rotation used for simulated now-playing titles.
var DefaultPlaylist = []string{
	"Dua Lipa - Houdini",
	"The Weeknd - Blinding Lights",
	"Miley Cyrus - Flowers",
	"Harry Styles - As It Was",
	"Taylor Swift - Cruel Summer",
	"Bruno Mars - Locked Out of Heaven",
	"Coldplay - Viva La Vida",
	"Imagine Dragons - Believer",
	"Ed Sheeran - Shape of You",
	"Calvin Harris - Summer",
	"Rihanna - Diamonds",
	"Katy Perry - Firework",
	"Lady Gaga - Bad Romance",
	"Mix 98 - A Melhor Música",
	"Mix 98 - Promoção Exclusiva",
}

// DefaultPrograms is the daily schedule.
var DefaultPrograms = []core.Program{
	{ID: 1, StartHour: 0, Name: "Madrugada com Zara", Announcer: "Zara", ImageRef: "https://www.dropbox.com/scl/fi/piczrd9z2vnlveho8vxht/Design-sem-nome-5.png?dl=1"},
	{ID: 2, StartHour: 8, Name: "Dia com Kira", Announcer: "Kira", ImageRef: "https://www.dropbox.com/scl/fi/kz3lxe7lfgidx0bqow1kk/Image_fx-2.jpg?dl=1"},
	{ID: 3, StartHour: 16, Name: "Noite com Khaled", Announcer: "Khaled", ImageRef: "https://www.dropbox.com/scl/fi/fzrccm8iwgeka5n5lxmio/Image_fx-57.jpg?dl=1"},
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Station: StationConfig{
			Name:             "Mix 98",
			Slogan:           "A Rádio Pop",
			StreamURL:        "https://stream.zeno.fm/l6kbfxwquuktv",
			DefaultTitle:     "Mix 98 - A Melhor Música",
			PlaceholderPhoto: "https://via.placeholder.com/60?text=Foto",
		},
		Metadata: MetadataConfig{
			URL:              "https://api.zeno.fm/mounts/metadata/subscribe/l6kbfxwquuktv",
			Playlist:         append([]string(nil), DefaultPlaylist...),
			FallbackInterval: 10000,
			SlotDuration:     180000,
		},
		Player: PlayerConfig{
			Volume: 80,
		},
		Schedule: ScheduleConfig{
			ClockInterval: 60000,
		},
		Messages: MessagesConfig{
			Backend:        "json",
			Limit:          50,
			RotateInterval: 8000,
			FadeDuration:   500,
		},
		Moderator: ModeratorConfig{
			Passphrase: "mod123",
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Programs: append([]core.Program(nil), DefaultPrograms...),
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Station
	if c.Station.Name == "" {
		c.Station.Name = d.Station.Name
	}
	if c.Station.Slogan == "" {
		c.Station.Slogan = d.Station.Slogan
	}
	if c.Station.StreamURL == "" {
		c.Station.StreamURL = d.Station.StreamURL
	}
	if c.Station.DefaultTitle == "" {
		c.Station.DefaultTitle = d.Station.DefaultTitle
	}
	if c.Station.PlaceholderPhoto == "" {
		c.Station.PlaceholderPhoto = d.Station.PlaceholderPhoto
	}

	// Metadata
	if c.Metadata.URL == "" {
		c.Metadata.URL = d.Metadata.URL
	}
	if len(c.Metadata.Playlist) == 0 {
		c.Metadata.Playlist = d.Metadata.Playlist
	}
	if c.Metadata.FallbackInterval == 0 {
		c.Metadata.FallbackInterval = d.Metadata.FallbackInterval
	}
	if c.Metadata.SlotDuration == 0 {
		c.Metadata.SlotDuration = d.Metadata.SlotDuration
	}

	// Player
	if c.Player.Volume == 0 {
		c.Player.Volume = d.Player.Volume
	}

	// Schedule
	if c.Schedule.ClockInterval == 0 {
		c.Schedule.ClockInterval = d.Schedule.ClockInterval
	}
	if len(c.Programs) == 0 {
		c.Programs = d.Programs
	}

	// Messages
	if c.Messages.Backend == "" {
		c.Messages.Backend = d.Messages.Backend
	}
	if c.Messages.Limit == 0 {
		c.Messages.Limit = d.Messages.Limit
	}
	if c.Messages.RotateInterval == 0 {
		c.Messages.RotateInterval = d.Messages.RotateInterval
	}
	if c.Messages.FadeDuration == 0 {
		c.Messages.FadeDuration = d.Messages.FadeDuration
	}

	// Moderator
	if c.Moderator.Passphrase == "" {
		c.Moderator.Passphrase = d.Moderator.Passphrase
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = d.Log.MaxSize
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = d.Log.MaxAge
	}
}
