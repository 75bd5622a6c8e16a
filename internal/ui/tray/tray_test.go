package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/ui/uitext"
)

func TestManager_SetStateUpdatesLabels(t *testing.T) {
	manager := New(nil, Icons{}, Callbacks{})
	state := timekeeper.NewState(model.DefaultPhaseConfig(), stats.Log{})

	manager.SetState(state)
	assert.Equal(t, uitext.TrayStatus(state), manager.statusItem.Label)
	assert.Equal(t, uitext.StartLabel(false), manager.pauseItem.Label)

	state.Paused = true
	manager.SetState(state)
	assert.Equal(t, uitext.StartLabel(true), manager.pauseItem.Label)
}

func TestManager_MenuInvokesCallbacks(t *testing.T) {
	var calls []string
	manager := New(nil, Icons{}, Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnTogglePause: func() { calls = append(calls, "pause") },
		OnQuit:        func() { calls = append(calls, "quit") },
	})

	menu := manager.Menu()
	require.Len(t, menu.Items, 8)
	for _, item := range menu.Items {
		if item.Action != nil {
			item.Action()
		}
	}
	assert.Equal(t, []string{"show", "pause", "quit"}, calls)
}
