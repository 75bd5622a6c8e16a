package timekeeper

import (
	"fmt"
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
)

// Reduce applies command to state and returns the new state with the side
// effects the host must perform, in order. Reduce never fails and never
// performs side effects itself.
func Reduce(state State, command Command) (State, []Effect) {
	var effects []Effect

	switch command := command.(type) {
	case Tick:
		if state.Paused {
			return state, nil
		}
		effects = state.tick(command.At, effects)
		effects = state.applyModalPolicy(effects)

	case TogglePause:
		state.Paused = !state.Paused

	case Stop:
		state.Elapsed = 0
		state.Phase = model.PhaseWork
		state.Paused = true
		effects = state.applyModalPolicy(effects)

	case SaveSettings:
		state.Config.WorkSeconds = command.Work.TotalSeconds()
		state.Config.BreakSeconds = command.Break.TotalSeconds()
		state.Config = state.Config.Normalized()
		effects = append(effects, SaveConfig{Config: state.Config})

	case SetNotifications:
		state.Config.NotificationsEnabled = command.Enabled
		effects = state.applyModalPolicy(effects)

	case ApplyConfig:
		state.Config = command.Config.Normalized()
		effects = state.applyModalPolicy(effects)

	case WindowOpened:
		if command.Handle != 0 && command.Handle == state.Modal {
			effects = append(effects, Maximize{Handle: command.Handle})
		}

	case WindowClosed:
		if command.Handle == state.Modal {
			state.Modal = 0
		}

	case ClearStats:
		state.Stats.Clear()
		effects = append(effects, SaveStats{Stats: state.Stats})

	case RemoveStat:
		index := command.Index
		if command.Entry != (stats.Entry{}) {
			index = state.Stats.Find(command.Entry, command.Index)
			if index < 0 {
				// already evicted
				break
			}
		}
		if err := state.Stats.Remove(index); err != nil {
			effects = append(effects, ReportError{Err: err})
			break
		}
		effects = append(effects, SaveStats{Stats: state.Stats})

	case ExportStats:
		effects = append(effects, ExportCSV{Stats: state.Stats})

	case PersistStats:
		effects = append(effects, SaveStats{Stats: state.Stats})

	case PersistResult:
		if command.Err != nil {
			effects = append(effects, ReportError{Err: fmt.Errorf("save %s: %w", command.Target, command.Err)})
		}
	}

	return state, effects
}

func (state *State) tick(at time.Time, effects []Effect) []Effect {
	state.Elapsed++
	if state.Elapsed < state.Length() {
		return effects
	}

	completed := state.Phase
	state.Stats.Append(stats.Entry{
		Timestamp: unixSeconds(at),
		Phase:     completed,
		Duration:  state.Elapsed,
	})
	if state.Config.NotificationsEnabled {
		effects = append(effects, Notify{Completed: completed})
	}
	state.Phase = completed.Next()
	state.Elapsed = 0
	return effects
}

// applyModalPolicy keeps the break window in line with the phase and the
// notification setting. A window is only opened while the timer runs.
func (state *State) applyModalPolicy(effects []Effect) []Effect {
	if state.Config.NotificationsEnabled || state.Phase != model.PhaseBreak {
		if state.Modal != 0 {
			effects = append(effects, CloseModal{Handle: state.Modal})
			state.Modal = 0
		}
		return effects
	}
	if state.Modal == 0 && !state.Paused {
		state.nextHandle++
		state.Modal = state.nextHandle
		effects = append(effects, OpenModal{Handle: state.Modal})
	}
	return effects
}

func unixSeconds(at time.Time) uint64 {
	seconds := at.Unix()
	if seconds < 0 {
		return 0
	}
	return uint64(seconds)
}
