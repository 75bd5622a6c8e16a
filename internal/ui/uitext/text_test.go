package uitext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timekeeper"
)

func TestTimer_ShowsRemainingTime(t *testing.T) {
	state := timekeeper.NewState(model.DefaultPhaseConfig(), stats.Log{})
	state.Elapsed = 1

	assert.Equal(t, Phase(model.PhaseWork)+" | 0:59:59", Timer(state))
}

func TestTrayStatus_MentionsPause(t *testing.T) {
	state := timekeeper.NewState(model.DefaultPhaseConfig(), stats.Log{})
	assert.Contains(t, TrayStatus(state), "1:00:00")

	state.Paused = true
	assert.NotContains(t, TrayStatus(state), "1:00:00")
}

func TestStartLabel(t *testing.T) {
	assert.NotEqual(t, StartLabel(true), StartLabel(false))
}

func TestNotification_DiffersPerPhase(t *testing.T) {
	_, afterWork := Notification(model.PhaseWork)
	_, afterBreak := Notification(model.PhaseBreak)
	assert.NotEqual(t, afterWork, afterBreak)
}

func TestStatRows_NewestFirst(t *testing.T) {
	now := time.Unix(1_700_010_000, 0)
	log := stats.FromEntries([]stats.Entry{
		{Timestamp: 1_700_000_000, Phase: model.PhaseWork, Duration: 3600},
		{Timestamp: 1_700_003_600, Phase: model.PhaseBreak, Duration: 900},
	})

	rows := StatRows(log, now)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "0:15:00", rows[0].Duration)
	assert.Equal(t, Phase(model.PhaseBreak), rows[0].Phase)
	assert.Equal(t, time.Unix(1_700_003_600, 0).Format("02.01 15:04"), rows[0].Date)
	assert.Contains(t, rows[0].Relative, "ago")

	assert.Equal(t, 0, rows[1].Index)
	assert.Equal(t, "1:00:00", rows[1].Duration)
}

func TestStatRows_Empty(t *testing.T) {
	assert.Empty(t, StatRows(stats.Log{}, time.Now()))
}
