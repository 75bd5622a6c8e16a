package model

import (
	"errors"
	"fmt"
)

const (
	// DefaultWorkSeconds is one hour of work.
	DefaultWorkSeconds uint16 = 3600
	// DefaultBreakSeconds is a 15 minute break.
	DefaultBreakSeconds uint16 = 900
)

// ErrInvalidConfig indicates a phase length outside 1..65535 seconds.
var ErrInvalidConfig = errors.New("invalid phase config")

// PhaseConfig contains the runtime settings of the interval state machine.
type PhaseConfig struct {
	WorkSeconds          uint16
	BreakSeconds         uint16
	NotificationsEnabled bool
}

// DefaultPhaseConfig returns the settings used when nothing was persisted yet.
func DefaultPhaseConfig() PhaseConfig {
	return PhaseConfig{
		WorkSeconds:          DefaultWorkSeconds,
		BreakSeconds:         DefaultBreakSeconds,
		NotificationsEnabled: true,
	}
}

// Length returns the configured length of phase in seconds.
func (config PhaseConfig) Length(phase Phase) uint16 {
	if phase == PhaseBreak {
		return config.BreakSeconds
	}
	return config.WorkSeconds
}

// Validate reports whether both phase lengths are at least one second.
func (config PhaseConfig) Validate() error {
	if config.WorkSeconds == 0 {
		return fmt.Errorf("%w: work length must be at least 1s", ErrInvalidConfig)
	}
	if config.BreakSeconds == 0 {
		return fmt.Errorf("%w: break length must be at least 1s", ErrInvalidConfig)
	}
	return nil
}

// Normalized returns a copy with zero lengths raised to one second.
func (config PhaseConfig) Normalized() PhaseConfig {
	if config.WorkSeconds == 0 {
		config.WorkSeconds = 1
	}
	if config.BreakSeconds == 0 {
		config.BreakSeconds = 1
	}
	return config
}
