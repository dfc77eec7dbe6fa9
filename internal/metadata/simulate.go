package metadata

import "time"

// DefaultSlot is the length of one simulated track.
const DefaultSlot = 3 * time.Minute

// SimulatedTitle picks a title from playlist by dividing time since the
// epoch into fixed slots. Every viewer computing it at the same instant gets
// the same answer.
func SimulatedTitle(playlist []string, slot time.Duration, t time.Time) string {
	if len(playlist) == 0 {
		return ""
	}
	if slot <= 0 {
		slot = DefaultSlot
	}
	ms := t.UnixMilli()
	slotMs := slot.Milliseconds()
	index := (ms / slotMs) % int64(len(playlist))
	if index < 0 {
		index += int64(len(playlist))
	}
	return playlist[index]
}
