// Package uitext renders state for people, in the current UI language.
package uitext

import (
	"time"

	"fyne.io/fyne/v2/lang"
	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/core/timevalue"
)

// Phase returns the display name of phase.
func Phase(phase model.Phase) string {
	if phase == model.PhaseBreak {
		return lang.X("phase.break", "Break")
	}
	return lang.X("phase.work", "Work")
}

// Timer renders the main timer line, e.g. "Work | 0:59:59".
func Timer(state timekeeper.State) string {
	return Phase(state.Phase) + " | " + state.Remaining().Format()
}

// TrayStatus renders the one-line status shown in the tray menu.
func TrayStatus(state timekeeper.State) string {
	data := map[string]any{
		"Phase":     Phase(state.Phase),
		"Remaining": state.Remaining().Format(),
	}
	if state.Paused {
		return lang.X("tray.status.paused", "{{.Phase}}: paused", data)
	}
	return lang.X("tray.status", "{{.Phase}}: {{.Remaining}} left", data)
}

// StartLabel names the start/pause button for the paused flag.
func StartLabel(paused bool) string {
	if paused {
		return lang.X("main.start", "Start")
	}
	return lang.X("main.pause", "Pause")
}

// Notification returns the title and body announcing that completed ended.
func Notification(completed model.Phase) (string, string) {
	if completed == model.PhaseWork {
		return "TimeKeeper", lang.X("notify.break", "Time to take a break!")
	}
	return "TimeKeeper", lang.X("notify.work", "The break is over, back to work!")
}

// StatRow is a statistics entry prepared for display.
type StatRow struct {
	// Index addresses the entry in the log, 0 being the oldest.
	Index    int
	Entry    stats.Entry
	Date     string
	Relative string
	Phase    string
	Duration string
}

// StatRows lists the log newest first.
func StatRows(log stats.Log, now time.Time) []StatRow {
	newest := log.Newest()
	rows := make([]StatRow, 0, len(newest))
	for position, entry := range newest {
		at := entry.Time()
		rows = append(rows, StatRow{
			Index:    len(newest) - 1 - position,
			Entry:    entry,
			Date:     strftime.Format(timekeeper.DateLayout, at.Local()),
			Relative: humanize.RelTime(at, now, "ago", "from now"),
			Phase:    Phase(entry.Phase),
			Duration: timevalue.FromTotalSeconds(entry.Duration).Format(),
		})
	}
	return rows
}
