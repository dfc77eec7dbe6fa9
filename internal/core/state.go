package core

// PlayState is the playback controller's state.
type PlayState int

const (
	StateIdle PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlaybackState is the transient, per-session view of the player.
type PlaybackState struct {
	State          PlayState `json:"state"`
	Volume         float64   `json:"volume"`
	NowPlaying     string    `json:"now_playing"`
	CurrentProgram *Program  `json:"current_program,omitempty"`
}

// IsPlaying returns true if audio is currently playing.
func (s *PlaybackState) IsPlaying() bool {
	return s != nil && s.State == StatePlaying
}

// VolumePercent returns the volume as a whole percentage (0-100).
func (s *PlaybackState) VolumePercent() int {
	if s == nil {
		return 0
	}
	return int(s.Volume*100 + 0.5)
}
