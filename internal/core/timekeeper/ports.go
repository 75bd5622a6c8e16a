package timekeeper

import (
	"time"

	"github.com/ncruces/go-strftime"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
)

// Store persists the config and the statistics log.
type Store interface {
	LoadConfig() (model.PhaseConfig, error)
	SaveConfig(config model.PhaseConfig) error
	LoadStats() (stats.Log, error)
	SaveStats(log stats.Log) error
	ExportCSV(content string) (string, error)
}

// Notifier sends a desktop notification about a completed phase.
type Notifier interface {
	Notify(completed model.Phase) error
}

// Windows opens and closes the modal break window. Implementations must not
// block and report back with WindowOpened and WindowClosed commands.
type Windows interface {
	OpenModal(handle WindowHandle)
	CloseModal(handle WindowHandle)
	Maximize(handle WindowHandle)
}

// DateFormatter renders statistics timestamps.
type DateFormatter func(time.Time) string

// DateLayout is the strftime layout of statistics dates.
const DateLayout = "%d.%m %H:%M"

// DefaultDateFormat renders t in local time using DateLayout.
func DefaultDateFormat(t time.Time) string {
	return strftime.Format(DateLayout, t.Local())
}

// Ports groups the collaborators used to execute effects. Nil ports are skipped.
type Ports struct {
	Store      Store
	Notifier   Notifier
	Windows    Windows
	FormatDate DateFormatter
}
