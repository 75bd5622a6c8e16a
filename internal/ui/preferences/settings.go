package preferences

import (
	"timekeeper/internal/core/model"
	"timekeeper/internal/core/timevalue"
)

// Settings defines editable user preferences.
type Settings struct {
	Work          timevalue.Duration
	Break         timevalue.Duration
	Notifications bool
	Autostart     bool
}

// FromConfig builds the settings shown for config.
func FromConfig(config model.PhaseConfig, autostart bool) Settings {
	return Settings{
		Work:          timevalue.FromTotalSeconds(config.WorkSeconds),
		Break:         timevalue.FromTotalSeconds(config.BreakSeconds),
		Notifications: config.NotificationsEnabled,
		Autostart:     autostart,
	}
}

// sliderRange bounds a duration slider, in seconds.
type sliderRange struct {
	Min  float64
	Max  float64
	Step float64
}

var (
	workRange  = sliderRange{Min: 30 * 60, Max: 3 * 60 * 60, Step: 10 * 60}
	breakRange = sliderRange{Min: 60, Max: 30 * 60, Step: 60}
)

// widen stretches the range so that value fits, keeping stored values that
// were set outside the usual bounds editable.
func (bounds sliderRange) widen(value float64) sliderRange {
	if value < bounds.Min {
		bounds.Min = value
	}
	if value > bounds.Max {
		bounds.Max = value
	}
	return bounds
}

// durationFromSlider converts a slider value to a duration.
func durationFromSlider(value float64) timevalue.Duration {
	if value < 0 {
		value = 0
	}
	if value > float64(timevalue.MaxTotalSeconds) {
		value = float64(timevalue.MaxTotalSeconds)
	}
	return timevalue.FromTotalSeconds(uint16(value + 0.5))
}
