package preferences

import (
	"errors"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/timevalue"
)

func TestFromConfig(t *testing.T) {
	settings := FromConfig(model.PhaseConfig{WorkSeconds: 5400, BreakSeconds: 300, NotificationsEnabled: false}, true)

	assert.Equal(t, uint16(5400), settings.Work.TotalSeconds())
	assert.Equal(t, uint16(300), settings.Break.TotalSeconds())
	assert.False(t, settings.Notifications)
	assert.True(t, settings.Autostart)
}

func TestSliderRange_Widen(t *testing.T) {
	assert.Equal(t, workRange, workRange.widen(3600))
	assert.Equal(t, 5.0, workRange.widen(5).Min)
	assert.Equal(t, 20000.0, workRange.widen(20000).Max)
}

func TestDurationFromSlider_Clamps(t *testing.T) {
	assert.Equal(t, uint16(0), durationFromSlider(-3).TotalSeconds())
	assert.Equal(t, uint16(65535), durationFromSlider(1e9).TotalSeconds())
	assert.Equal(t, uint16(600), durationFromSlider(599.7).TotalSeconds())
}

func TestWindow_SaveReportsSliderValues(t *testing.T) {
	app := test.NewTempApp(t)
	var savedWork, savedBreak timevalue.Duration
	saves := 0
	prefs := New(app, FromConfig(model.DefaultPhaseConfig(), false), Callbacks{
		OnSave: func(work, rest timevalue.Duration) {
			saves++
			savedWork, savedBreak = work, rest
		},
	})

	prefs.workSlider.SetValue(7200)
	prefs.breakSlider.SetValue(600)
	prefs.handleSave()

	require.Equal(t, 1, saves)
	assert.Equal(t, uint16(7200), savedWork.TotalSeconds())
	assert.Equal(t, uint16(600), savedBreak.TotalSeconds())
	assert.True(t, strings.HasSuffix(prefs.workLabel.Text, " 2:00"), prefs.workLabel.Text)
	assert.True(t, strings.HasSuffix(prefs.breakLabel.Text, " 0:10"), prefs.breakLabel.Text)
}

func TestWindow_UpdateSettingsKeepsOutOfRangeValues(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, FromConfig(model.PhaseConfig{WorkSeconds: 5, BreakSeconds: 7200, NotificationsEnabled: true}, false), Callbacks{})

	settings := prefs.Settings()
	assert.Equal(t, uint16(5), settings.Work.TotalSeconds())
	assert.Equal(t, uint16(7200), settings.Break.TotalSeconds())
	assert.Equal(t, 5.0, prefs.workSlider.Min)
	assert.Equal(t, 7200.0, prefs.breakSlider.Max)
}

func TestWindow_UpdateSettingsDoesNotFireCallbacks(t *testing.T) {
	app := test.NewTempApp(t)
	calls := 0
	prefs := New(app, FromConfig(model.DefaultPhaseConfig(), false), Callbacks{
		OnNotifications: func(bool) { calls++ },
		OnAutostart:     func(bool) error { calls++; return nil },
	})

	prefs.UpdateSettings(FromConfig(model.PhaseConfig{WorkSeconds: 60, BreakSeconds: 60}, true))
	assert.Zero(t, calls)
	assert.True(t, prefs.autostart.Checked)
	assert.False(t, prefs.notifications.Checked)
}

func TestWindow_TogglesFireCallbacks(t *testing.T) {
	app := test.NewTempApp(t)
	var notifications []bool
	prefs := New(app, FromConfig(model.DefaultPhaseConfig(), false), Callbacks{
		OnNotifications: func(enabled bool) { notifications = append(notifications, enabled) },
	})

	prefs.notifications.SetChecked(false)
	assert.Equal(t, []bool{false}, notifications)
}

func TestWindow_AutostartFailureRevertsCheck(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, FromConfig(model.DefaultPhaseConfig(), false), Callbacks{
		OnAutostart: func(bool) error { return errors.New("permission denied") },
	})

	prefs.autostart.SetChecked(true)
	assert.False(t, prefs.autostart.Checked)
	assert.False(t, prefs.Settings().Autostart)
}
