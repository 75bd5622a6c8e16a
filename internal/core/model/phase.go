package model

// Phase is the part of the work/break cycle the timer is in.
type Phase uint8

const (
	PhaseWork Phase = iota
	PhaseBreak
)

// Next returns the phase that follows phase.
func (phase Phase) Next() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

func (phase Phase) String() string {
	switch phase {
	case PhaseWork:
		return "work"
	case PhaseBreak:
		return "break"
	default:
		return "unknown"
	}
}
