package timekeeper

import (
	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
)

// Effect is a side effect requested by the reducer and executed by the host.
type Effect interface {
	effect()
}

type (
	// Notify asks for a desktop notification about a completed phase.
	Notify struct{ Completed model.Phase }
	// OpenModal asks for a centered, always-on-top break window.
	OpenModal struct{ Handle WindowHandle }
	// CloseModal asks to close a break window.
	CloseModal struct{ Handle WindowHandle }
	// Maximize asks to expand an opened break window.
	Maximize struct{ Handle WindowHandle }
	// SaveConfig asks to persist the config.
	SaveConfig struct{ Config model.PhaseConfig }
	// SaveStats asks to persist the statistics log.
	SaveStats struct{ Stats stats.Log }
	// ExportCSV asks to write the statistics log as CSV.
	ExportCSV struct{ Stats stats.Log }
	// ReportError surfaces a non-fatal error to observers.
	ReportError struct{ Err error }
)

func (Notify) effect()      {}
func (OpenModal) effect()   {}
func (CloseModal) effect()  {}
func (Maximize) effect()    {}
func (SaveConfig) effect()  {}
func (SaveStats) effect()   {}
func (ExportCSV) effect()   {}
func (ReportError) effect() {}
