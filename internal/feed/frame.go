package feed

import "github.com/tessro/onair/internal/core"

// Phase is the display phase of the rotating message.
type Phase int

const (
	// PhaseEmpty means there is nothing to show.
	PhaseEmpty Phase = iota
	// PhaseVisible means the message is fully shown.
	PhaseVisible
	// PhaseFading means the message is fading out before the next one.
	PhaseFading
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseVisible:
		return "visible"
	case PhaseFading:
		return "fading"
	default:
		return "unknown"
	}
}

// Frame is what the feed shows at one moment.
type Frame struct {
	Phase   Phase
	Message core.Message
	Index   int
	Count   int
}

// Empty reports whether there is no message to show.
func (f Frame) Empty() bool {
	return f.Phase == PhaseEmpty
}
