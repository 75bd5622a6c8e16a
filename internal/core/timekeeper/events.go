package timekeeper

import (
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timevalue"
)

// State is the whole aggregate owned by the state machine.
type State struct {
	Phase   model.Phase
	Elapsed uint16
	Paused  bool
	Modal   WindowHandle
	Config  model.PhaseConfig
	Stats   stats.Log

	nextHandle WindowHandle
}

// NewState returns a running work phase with the given config and history.
func NewState(config model.PhaseConfig, log stats.Log) State {
	return State{
		Phase:  model.PhaseWork,
		Config: config.Normalized(),
		Stats:  log,
	}
}

// Length returns the configured length of the current phase.
func (state State) Length() uint16 {
	return state.Config.Length(state.Phase)
}

// Remaining returns the time left in the current phase.
func (state State) Remaining() timevalue.Duration {
	length := state.Length()
	if state.Elapsed >= length {
		return timevalue.FromTotalSeconds(0)
	}
	return timevalue.FromTotalSeconds(length - state.Elapsed)
}

// Progress returns the completed fraction of the current phase.
func (state State) Progress() float64 {
	length := state.Length()
	if length == 0 {
		return 1
	}
	progress := float64(state.Elapsed) / float64(length)
	if progress > 1 {
		return 1
	}
	return progress
}

// ModalOpen reports whether a break window is currently requested.
func (state State) ModalOpen() bool {
	return state.Modal != 0
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventProgress     EventType = "progress"
	EventConfigChange EventType = "config_change"
	EventStatsChange  EventType = "stats_change"
	EventExported     EventType = "exported"
	EventError        EventType = "error"
)

// Event is published to observers after a command was processed.
type Event struct {
	Type    EventType
	State   State
	Message string
	At      time.Time
}
