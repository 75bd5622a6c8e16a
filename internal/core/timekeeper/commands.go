package timekeeper

import (
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timevalue"
)

// Command is an input to the state machine.
type Command interface {
	command()
}

// WindowHandle identifies a modal break window. Zero means no window.
type WindowHandle uint64

// PersistTarget names what a persistence effect wrote.
type PersistTarget string

const (
	TargetConfig PersistTarget = "config"
	TargetStats  PersistTarget = "stats"
	TargetCSV    PersistTarget = "csv"
)

type (
	// Tick advances the running phase by one second.
	Tick struct{ At time.Time }
	// TogglePause starts or pauses the timer.
	TogglePause struct{}
	// Stop discards the running phase and pauses on a fresh work phase.
	Stop struct{}
	// SaveSettings stores the edited phase lengths and persists the config.
	SaveSettings struct {
		Work  timevalue.Duration
		Break timevalue.Duration
	}
	// SetNotifications switches between desktop notifications and the modal break window.
	SetNotifications struct{ Enabled bool }
	// ApplyConfig replaces the config without persisting it.
	ApplyConfig struct{ Config model.PhaseConfig }
	// WindowOpened acknowledges an OpenModal effect.
	WindowOpened struct{ Handle WindowHandle }
	// WindowClosed reports that a modal window went away.
	WindowClosed struct{ Handle WindowHandle }
	// ClearStats drops the statistics log.
	ClearStats struct{}
	// RemoveStat deletes one entry, 0 being the oldest. When Entry is set it
	// names the entry the user saw; Index is then only a hint, since ticks can
	// evict the oldest entry and shift the rest.
	RemoveStat struct {
		Index int
		Entry stats.Entry
	}
	// ExportStats writes the log as CSV.
	ExportStats struct{}
	// PersistStats saves the log.
	PersistStats struct{}
	// PersistResult reports the completion of a persistence effect.
	PersistResult struct {
		Target PersistTarget
		Path   string
		Err    error
	}
)

func (Tick) command()             {}
func (TogglePause) command()      {}
func (Stop) command()             {}
func (SaveSettings) command()     {}
func (SetNotifications) command() {}
func (ApplyConfig) command()      {}
func (WindowOpened) command()     {}
func (WindowClosed) command()     {}
func (ClearStats) command()       {}
func (RemoveStat) command()       {}
func (ExportStats) command()      {}
func (PersistStats) command()     {}
func (PersistResult) command()    {}
