package timekeeper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timevalue"
)

var tickAt = time.Unix(1_700_000_000, 0)

func testState(work, rest uint16, notifications bool) State {
	return NewState(model.PhaseConfig{
		WorkSeconds:          work,
		BreakSeconds:         rest,
		NotificationsEnabled: notifications,
	}, stats.Log{})
}

func tickN(state State, count int) (State, []Effect) {
	var all []Effect
	for index := 0; index < count; index++ {
		var effects []Effect
		state, effects = Reduce(state, Tick{At: tickAt.Add(time.Duration(index) * time.Second)})
		all = append(all, effects...)
	}
	return state, all
}

func TestReduce_TickCompletesWorkPhaseOnLastSecond(t *testing.T) {
	state := testState(5, 3, true)

	state, effects := tickN(state, 4)
	assert.Empty(t, effects)
	assert.Equal(t, model.PhaseWork, state.Phase)
	assert.Equal(t, uint16(4), state.Elapsed)
	assert.True(t, state.Stats.IsEmpty())

	state, effects = Reduce(state, Tick{At: tickAt})
	assert.Equal(t, []Effect{Notify{Completed: model.PhaseWork}}, effects)
	assert.Equal(t, model.PhaseBreak, state.Phase)
	assert.Equal(t, uint16(0), state.Elapsed)
	require.Equal(t, 1, state.Stats.Len())

	recorded, ok := state.Stats.At(0)
	require.True(t, ok)
	assert.Equal(t, stats.Entry{
		Timestamp: uint64(tickAt.Unix()),
		Phase:     model.PhaseWork,
		Duration:  5,
	}, recorded)
}

func TestReduce_ElapsedStaysBelowLength(t *testing.T) {
	state := testState(3, 2, true)
	for index := 0; index < 50; index++ {
		state, _ = Reduce(state, Tick{At: tickAt})
		assert.Less(t, state.Elapsed, state.Length())
	}
	assert.Equal(t, stats.Capacity, state.Stats.Len())
}

func TestReduce_PhasesAlternate(t *testing.T) {
	state := testState(2, 1, true)

	state, _ = tickN(state, 2+1+2+1)
	phases := make([]model.Phase, 0, state.Stats.Len())
	for _, recorded := range state.Stats.Entries() {
		phases = append(phases, recorded.Phase)
	}
	assert.Equal(t, []model.Phase{model.PhaseWork, model.PhaseBreak, model.PhaseWork, model.PhaseBreak}, phases)
	assert.Equal(t, model.PhaseWork, state.Phase)
}

func TestReduce_ShortenedConfigCompletesOnNextTick(t *testing.T) {
	state := testState(100, 10, true)
	state, _ = tickN(state, 50)

	state, effects := Reduce(state, ApplyConfig{Config: model.PhaseConfig{
		WorkSeconds:          20,
		BreakSeconds:         10,
		NotificationsEnabled: true,
	}})
	assert.Empty(t, effects)
	assert.Equal(t, uint16(50), state.Elapsed)

	state, effects = Reduce(state, Tick{At: tickAt})
	assert.Equal(t, []Effect{Notify{Completed: model.PhaseWork}}, effects)
	assert.Equal(t, model.PhaseBreak, state.Phase)
	recorded, ok := state.Stats.At(0)
	require.True(t, ok)
	assert.Equal(t, uint16(51), recorded.Duration)
}

func TestReduce_PausedTickIsNoop(t *testing.T) {
	state := testState(5, 3, false)
	state, _ = tickN(state, 2)
	state, effects := Reduce(state, TogglePause{})
	assert.Empty(t, effects)
	require.True(t, state.Paused)

	next, effects := tickN(state, 20)
	assert.Empty(t, effects)
	assert.Equal(t, state, next)
}

func TestReduce_TogglePauseTwiceRestores(t *testing.T) {
	state := testState(5, 3, true)
	state, _ = tickN(state, 3)

	paused, _ := Reduce(state, TogglePause{})
	resumed, effects := Reduce(paused, TogglePause{})
	assert.Empty(t, effects)
	assert.Equal(t, state, resumed)
}

func TestReduce_StopResetsWithoutEntry(t *testing.T) {
	state := testState(2, 10, true)
	state, _ = tickN(state, 2+3)
	require.Equal(t, model.PhaseBreak, state.Phase)
	require.Equal(t, uint16(3), state.Elapsed)
	before := state.Stats.Len()

	state, effects := Reduce(state, Stop{})
	assert.Empty(t, effects)
	assert.Equal(t, model.PhaseWork, state.Phase)
	assert.Equal(t, uint16(0), state.Elapsed)
	assert.True(t, state.Paused)
	assert.Equal(t, before, state.Stats.Len())
}

func TestReduce_StopClosesModal(t *testing.T) {
	state := testState(1, 10, false)
	state, effects := Reduce(state, Tick{At: tickAt})
	require.Equal(t, []Effect{OpenModal{Handle: 1}}, effects)

	state, effects = Reduce(state, Stop{})
	assert.Equal(t, []Effect{CloseModal{Handle: 1}}, effects)
	assert.False(t, state.ModalOpen())
}

func TestReduce_ModalLifecycleWithoutNotifications(t *testing.T) {
	state := testState(2, 2, false)

	var all []Effect
	state, effects := tickN(state, 2)
	all = append(all, effects...)
	require.True(t, state.ModalOpen())
	handle := state.Modal

	state, effects = Reduce(state, WindowOpened{Handle: handle})
	assert.Equal(t, []Effect{Maximize{Handle: handle}}, effects)

	state, effects = tickN(state, 2)
	all = append(all, effects...)
	assert.Equal(t, model.PhaseWork, state.Phase)
	assert.False(t, state.ModalOpen())

	assert.Equal(t, []Effect{OpenModal{Handle: handle}, CloseModal{Handle: handle}}, all)
}

func TestReduce_ModalPolicyFollowsNotificationSetting(t *testing.T) {
	state := testState(1, 10, false)
	state, _ = Reduce(state, Tick{At: tickAt})
	handle := state.Modal
	require.NotZero(t, handle)

	state, effects := Reduce(state, SetNotifications{Enabled: true})
	assert.Equal(t, []Effect{CloseModal{Handle: handle}}, effects)
	assert.False(t, state.ModalOpen())

	state, effects = Reduce(state, SetNotifications{Enabled: false})
	require.Len(t, effects, 1)
	reopened, ok := effects[0].(OpenModal)
	require.True(t, ok)
	assert.NotEqual(t, handle, reopened.Handle)
	assert.Equal(t, reopened.Handle, state.Modal)
}

func TestReduce_ModalNotOpenedWhilePaused(t *testing.T) {
	state := testState(1, 10, true)
	state, _ = Reduce(state, Tick{At: tickAt})
	state, _ = Reduce(state, TogglePause{})

	state, effects := Reduce(state, SetNotifications{Enabled: false})
	assert.Empty(t, effects)
	assert.False(t, state.ModalOpen())

	state, _ = Reduce(state, TogglePause{})
	state, effects = Reduce(state, Tick{At: tickAt})
	assert.Equal(t, []Effect{OpenModal{Handle: state.Modal}}, effects)
}

func TestReduce_WindowClosedReopensOnNextBreakTick(t *testing.T) {
	state := testState(1, 10, false)
	state, _ = Reduce(state, Tick{At: tickAt})
	first := state.Modal

	state, effects := Reduce(state, WindowClosed{Handle: first})
	assert.Empty(t, effects)
	assert.False(t, state.ModalOpen())

	state, effects = Reduce(state, Tick{At: tickAt})
	require.Len(t, effects, 1)
	assert.Equal(t, OpenModal{Handle: state.Modal}, effects[0])
	assert.NotEqual(t, first, state.Modal)
}

func TestReduce_StaleWindowAcknowledgementsIgnored(t *testing.T) {
	state := testState(1, 10, false)
	state, _ = Reduce(state, Tick{At: tickAt})
	current := state.Modal

	next, effects := Reduce(state, WindowOpened{Handle: current + 7})
	assert.Empty(t, effects)
	next, effects = Reduce(next, WindowClosed{Handle: current + 7})
	assert.Empty(t, effects)
	assert.Equal(t, current, next.Modal)
}

func TestReduce_SaveSettings(t *testing.T) {
	state := testState(5, 3, true)
	work, err := timevalue.FromParts(1, 30, 0)
	require.NoError(t, err)
	rest, err := timevalue.FromParts(0, 0, 0)
	require.NoError(t, err)

	state, effects := Reduce(state, SaveSettings{Work: work, Break: rest})
	want := model.PhaseConfig{WorkSeconds: 5400, BreakSeconds: 1, NotificationsEnabled: true}
	assert.Equal(t, want, state.Config)
	assert.Equal(t, []Effect{SaveConfig{Config: want}}, effects)
}

func TestReduce_StatsCommands(t *testing.T) {
	state := testState(1, 1, true)
	state, _ = tickN(state, 3)
	require.Equal(t, 3, state.Stats.Len())

	state, effects := Reduce(state, RemoveStat{Index: 1})
	assert.Equal(t, 2, state.Stats.Len())
	assert.Equal(t, []Effect{SaveStats{Stats: state.Stats}}, effects)

	_, effects = Reduce(state, RemoveStat{Index: 9})
	require.Len(t, effects, 1)
	assert.IsType(t, ReportError{}, effects[0])

	_, effects = Reduce(state, ExportStats{})
	assert.Equal(t, []Effect{ExportCSV{Stats: state.Stats}}, effects)

	_, effects = Reduce(state, PersistStats{})
	assert.Equal(t, []Effect{SaveStats{Stats: state.Stats}}, effects)

	state, effects = Reduce(state, ClearStats{})
	assert.True(t, state.Stats.IsEmpty())
	assert.Equal(t, []Effect{SaveStats{Stats: stats.Log{}}}, effects)
}

func TestReduce_RemoveStatFollowsShiftedEntry(t *testing.T) {
	state := testState(1, 1, true)
	state, _ = tickN(state, stats.Capacity)
	shown, ok := state.Stats.At(3)
	require.True(t, ok)

	state, _ = Reduce(state, Tick{At: tickAt.Add(time.Hour)})
	require.Equal(t, stats.Capacity, state.Stats.Len())
	require.Equal(t, 2, state.Stats.Find(shown, 3))
	neighbour, _ := state.Stats.At(3)

	state, effects := Reduce(state, RemoveStat{Index: 3, Entry: shown})
	require.Len(t, effects, 1)
	assert.IsType(t, SaveStats{}, effects[0])
	assert.Equal(t, -1, state.Stats.Find(shown, 0))
	assert.GreaterOrEqual(t, state.Stats.Find(neighbour, 0), 0)
	assert.Equal(t, stats.Capacity-1, state.Stats.Len())
}

func TestReduce_RemoveStatOfEvictedEntryIsNoop(t *testing.T) {
	state := testState(1, 1, true)
	state, _ = tickN(state, stats.Capacity)
	oldest, ok := state.Stats.At(0)
	require.True(t, ok)

	state, _ = Reduce(state, Tick{At: tickAt.Add(time.Hour)})
	next, effects := Reduce(state, RemoveStat{Index: 0, Entry: oldest})
	assert.Empty(t, effects)
	assert.Equal(t, state, next)
}

func TestReduce_PersistResult(t *testing.T) {
	state := testState(5, 3, true)

	next, effects := Reduce(state, PersistResult{Target: TargetConfig})
	assert.Empty(t, effects)
	assert.Equal(t, state, next)

	cause := errors.New("disk full")
	_, effects = Reduce(state, PersistResult{Target: TargetStats, Err: cause})
	require.Len(t, effects, 1)
	report, ok := effects[0].(ReportError)
	require.True(t, ok)
	assert.ErrorIs(t, report.Err, cause)
	assert.Contains(t, report.Err.Error(), "save stats")
}

func TestState_RemainingAndProgress(t *testing.T) {
	state := testState(10, 5, true)
	state, _ = tickN(state, 4)

	assert.Equal(t, uint16(6), state.Remaining().TotalSeconds())
	assert.InDelta(t, 0.4, state.Progress(), 1e-9)
}
