package core

import "fmt"

// Program is a scheduled daily slot with an assigned announcer.
type Program struct {
	ID        int    `json:"id" toml:"id"`
	StartHour int    `json:"start_hour" toml:"start_hour"`
	Name      string `json:"name" toml:"name"`
	Announcer string `json:"announcer" toml:"announcer"`
	ImageRef  string `json:"image" toml:"image"`
}

// Slot returns the program's start time as "HH:00".
func (p Program) Slot() string {
	return fmt.Sprintf("%02d:00", p.StartHour)
}

// String returns "Name (Announcer)".
func (p Program) String() string {
	if p.Announcer == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Announcer)
}
