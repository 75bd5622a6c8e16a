// Package preferences renders the settings window.
package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timekeeper/internal/core/timevalue"
)

// Callbacks defines settings window handlers.
type Callbacks struct {
	OnSave          func(work, rest timevalue.Duration)
	OnNotifications func(enabled bool)
	OnAutostart     func(enabled bool) error
}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	callbacks     Callbacks
	workLabel     *widget.Label
	breakLabel    *widget.Label
	workSlider    *widget.Slider
	breakSlider   *widget.Slider
	notifications *widget.Check
	autostart     *widget.Check
	warning       *widget.Label
	updating      bool
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow(lang.X("pref.header", "Settings"))

	prefs := &Window{
		window:      window,
		callbacks:   callbacks,
		workLabel:   widget.NewLabel(""),
		breakLabel:  widget.NewLabel(""),
		workSlider:  widget.NewSlider(workRange.Min, workRange.Max),
		breakSlider: widget.NewSlider(breakRange.Min, breakRange.Max),
		warning:     widget.NewLabel(lang.X("pref.config.invalid", "The config file could not be read, defaults are shown")),
	}
	prefs.warning.Wrapping = fyne.TextWrapWord
	prefs.warning.Importance = widget.WarningImportance
	prefs.warning.Hide()

	prefs.workSlider.OnChanged = func(float64) { prefs.refreshLabels() }
	prefs.breakSlider.OnChanged = func(float64) { prefs.refreshLabels() }

	prefs.notifications = widget.NewCheck(lang.X("pref.notifications", "Desktop notifications"), prefs.handleNotifications)
	prefs.autostart = widget.NewCheck(lang.X("pref.autostart", "Start with the system"), prefs.handleAutostart)

	hint := widget.NewLabel(lang.X("pref.notifications.hint", "When disabled, a break window is shown instead"))
	hint.Wrapping = fyne.TextWrapWord
	hint.SizeName = theme.SizeNameCaptionText

	form := container.NewVBox(
		widget.NewLabelWithStyle(lang.X("pref.header", "Settings"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.warning,
		prefs.workLabel,
		prefs.workSlider,
		prefs.breakLabel,
		prefs.breakSlider,
		widget.NewSeparator(),
		widget.NewLabelWithStyle(lang.X("pref.alerts", "Break alerts"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		hint,
		prefs.autostart,
	)

	saveButton := widget.NewButton(lang.X("pref.save", "Save"), prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	closeButton := widget.NewButton(lang.X("pref.close", "Close"), window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), closeButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 420))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide hides the preferences window.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

// ShowConfigWarning shows or hides the note about an unreadable config file.
func (prefs *Window) ShowConfigWarning(visible bool) {
	if visible {
		prefs.warning.Show()
		return
	}
	prefs.warning.Hide()
}

// UpdateSettings replaces window values without firing callbacks.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.updating = true
	defer func() { prefs.updating = false }()

	prefs.settings = settings
	setSlider(prefs.workSlider, workRange, settings.Work)
	setSlider(prefs.breakSlider, breakRange, settings.Break)
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.autostart.SetChecked(settings.Autostart)
	prefs.refreshLabels()
}

// Settings returns the values currently shown.
func (prefs *Window) Settings() Settings {
	settings := prefs.settings
	settings.Work = durationFromSlider(prefs.workSlider.Value)
	settings.Break = durationFromSlider(prefs.breakSlider.Value)
	settings.Notifications = prefs.notifications.Checked
	settings.Autostart = prefs.autostart.Checked
	return settings
}

func (prefs *Window) handleSave() {
	settings := prefs.Settings()
	prefs.settings = settings
	prefs.ShowConfigWarning(false)
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings.Work, settings.Break)
	}
}

func (prefs *Window) handleNotifications(enabled bool) {
	if prefs.updating {
		return
	}
	prefs.settings.Notifications = enabled
	if prefs.callbacks.OnNotifications != nil {
		prefs.callbacks.OnNotifications(enabled)
	}
}

func (prefs *Window) handleAutostart(enabled bool) {
	if prefs.updating || prefs.callbacks.OnAutostart == nil {
		return
	}
	if err := prefs.callbacks.OnAutostart(enabled); err != nil {
		prefs.updating = true
		prefs.autostart.SetChecked(!enabled)
		prefs.updating = false
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.settings.Autostart = enabled
}

func (prefs *Window) refreshLabels() {
	work := durationFromSlider(prefs.workSlider.Value)
	rest := durationFromSlider(prefs.breakSlider.Value)
	prefs.workLabel.SetText(lang.X("pref.work", "Work time: {{.Value}}", map[string]any{"Value": work.FormatWithoutSeconds()}))
	prefs.breakLabel.SetText(lang.X("pref.break", "Break time: {{.Value}}", map[string]any{"Value": rest.FormatWithoutSeconds()}))
}

func setSlider(slider *widget.Slider, bounds sliderRange, value timevalue.Duration) {
	seconds := float64(value.TotalSeconds())
	bounds = bounds.widen(seconds)
	slider.Min = bounds.Min
	slider.Max = bounds.Max
	slider.Step = bounds.Step
	slider.Value = seconds
	slider.Refresh()
}
