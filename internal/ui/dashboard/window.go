// Package dashboard renders the main window: the timer, its controls and the
// statistics panel.
package dashboard

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/ui/overlay"
	"timekeeper/internal/ui/uitext"
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnTogglePause func()
	OnStop        func()
	OnSettings    func()
	OnExport      func()
	OnClear       func()
	OnRemove      func(index int, entry stats.Entry)
	OnClose       func()
}

// Window is the main application window.
type Window struct {
	window      fyne.Window
	callbacks   Callbacks
	version     string
	now         func() time.Time
	background  *canvas.Rectangle
	timerLabel  *canvas.Text
	progress    *widget.ProgressBar
	startButton *widget.Button
	stopButton  *widget.Button
	settingsBtn *widget.Button
	aboutBtn    *widget.Button
	statsBtn    *widget.Button
	statsList   *fyne.Container
	statsPanel  fyne.CanvasObject
	showStats   bool
	state       timekeeper.State
}

// New creates the main window.
func New(app fyne.App, version string, callbacks Callbacks) *Window {
	window := app.NewWindow("TimeKeeper")

	view := &Window{
		window:     window,
		callbacks:  callbacks,
		version:    version,
		now:        time.Now,
		background: canvas.NewRectangle(color.Transparent),
		statsList:  container.NewVBox(),
	}

	view.timerLabel = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	view.timerLabel.Alignment = fyne.TextAlignCenter
	view.timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timerLabel.TextSize = 28
	view.progress = widget.NewProgressBar()
	view.progress.TextFormatter = func() string { return "" }

	view.startButton = widget.NewButton(uitext.StartLabel(false), view.invoke(callbacks.OnTogglePause))
	view.stopButton = widget.NewButton(lang.X("main.stop", "Stop"), view.invoke(callbacks.OnStop))
	view.settingsBtn = widget.NewButton(lang.X("main.settings", "Settings"), view.invoke(callbacks.OnSettings))
	view.settingsBtn.Importance = widget.LowImportance
	view.aboutBtn = widget.NewButton(lang.X("main.about", "About"), view.ShowAbout)
	view.aboutBtn.Importance = widget.LowImportance
	view.statsBtn = widget.NewButton(lang.X("main.stats.show", "Show statistics"), view.ToggleStats)
	view.statsBtn.Importance = widget.LowImportance

	timer := container.NewVBox(
		view.timerLabel,
		view.progress,
		container.NewCenter(container.NewHBox(view.startButton, view.stopButton)),
	)

	exportButton := widget.NewButtonWithIcon(lang.X("stats.export", "Export CSV"), theme.DocumentSaveIcon(), view.invoke(callbacks.OnExport))
	clearButton := widget.NewButtonWithIcon(lang.X("stats.clear", "Clear"), theme.DeleteIcon(), view.confirmClear)
	statsScroll := container.NewVScroll(view.statsList)
	statsScroll.SetMinSize(fyne.NewSize(320, 150))
	view.statsPanel = container.NewBorder(
		nil,
		container.NewHBox(exportButton, clearButton),
		nil, nil,
		statsScroll,
	)
	view.statsPanel.Hide()

	footer := container.NewHBox(view.settingsBtn, view.aboutBtn, layout.NewSpacer(), view.statsBtn)
	body := container.NewBorder(nil, footer, nil, nil,
		container.NewVBox(container.NewCenter(timer), view.statsPanel),
	)
	window.SetContent(container.NewStack(view.background, container.NewPadded(body)))
	window.Canvas().SetOnTypedKey(view.handleKey)
	window.SetCloseIntercept(func() {
		if callbacks.OnClose != nil {
			callbacks.OnClose()
			return
		}
		window.Hide()
	})
	window.Resize(fyne.NewSize(380, 160))

	view.apply(timekeeper.State{})
	return view
}

// Show displays and focuses the main window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the main window.
func (view *Window) Hide() {
	view.window.Hide()
}

// Update renders state on the Fyne thread.
func (view *Window) Update(state timekeeper.State) {
	fyne.Do(func() {
		view.apply(state)
	})
}

// ShowError displays err in a dialog.
func (view *Window) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, view.window)
	})
}

// ShowInfo displays message in a dialog.
func (view *Window) ShowInfo(message string) {
	fyne.Do(func() {
		dialog.ShowInformation("TimeKeeper", message, view.window)
	})
}

// ShowAbout displays the about dialog.
func (view *Window) ShowAbout() {
	dialog.ShowCustom(lang.X("main.about", "About"), "OK", aboutContent(view.window, view.version), view.window)
}

// ToggleStats shows or hides the statistics panel.
func (view *Window) ToggleStats() {
	view.showStats = !view.showStats
	if view.showStats {
		view.statsBtn.SetText(lang.X("main.stats.hide", "Hide statistics"))
		view.renderStats(view.state.Stats)
		view.statsPanel.Show()
	} else {
		view.statsBtn.SetText(lang.X("main.stats.show", "Show statistics"))
		view.statsPanel.Hide()
		view.window.Resize(view.window.Content().MinSize())
	}
}

func (view *Window) apply(state timekeeper.State) {
	statsChanged := view.state.Stats != state.Stats
	view.state = state

	view.timerLabel.Text = uitext.Timer(state)
	view.timerLabel.Refresh()
	view.progress.SetValue(state.Progress())
	view.startButton.SetText(uitext.StartLabel(state.Paused))

	if state.Phase == model.PhaseBreak {
		view.background.FillColor = overlay.BreakColor
	} else {
		view.background.FillColor = color.Transparent
	}
	view.background.Refresh()

	// While a break window covers the screen only the statistics stay reachable.
	if state.Phase == model.PhaseBreak && !state.Config.NotificationsEnabled {
		view.settingsBtn.Hide()
		view.aboutBtn.Hide()
	} else {
		view.settingsBtn.Show()
		view.aboutBtn.Show()
	}

	if view.showStats && statsChanged {
		view.renderStats(state.Stats)
	}
}

func (view *Window) renderStats(log stats.Log) {
	view.statsList.RemoveAll()

	rows := uitext.StatRows(log, view.now())
	if len(rows) == 0 {
		empty := widget.NewLabelWithStyle(lang.X("stats.empty", "Statistics is empty..."), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
		view.statsList.Add(empty)
		view.statsList.Refresh()
		return
	}

	for _, row := range rows {
		view.statsList.Add(view.statRow(row))
		view.statsList.Add(widget.NewSeparator())
	}
	footer := widget.NewLabel(lang.X("stats.footer", "Showing the last {{.Count}} cycles", map[string]any{"Count": stats.Capacity}))
	footer.SizeName = theme.SizeNameCaptionText
	view.statsList.Add(footer)
	view.statsList.Refresh()
}

func (view *Window) statRow(row uitext.StatRow) fyne.CanvasObject {
	headers := container.NewVBox(
		widget.NewLabelWithStyle(lang.X("stats.date", "Date:"), fyne.TextAlignTrailing, fyne.TextStyle{}),
		widget.NewLabelWithStyle(lang.X("stats.type", "Type:"), fyne.TextAlignTrailing, fyne.TextStyle{}),
		widget.NewLabelWithStyle(lang.X("stats.duration", "Duration:"), fyne.TextAlignTrailing, fyne.TextStyle{}),
	)
	for _, object := range headers.Objects {
		object.(*widget.Label).Importance = widget.LowImportance
	}

	values := container.NewVBox(
		widget.NewLabel(row.Date+" ("+row.Relative+")"),
		widget.NewLabel(row.Phase),
		widget.NewLabel(row.Duration),
	)

	index, entry := row.Index, row.Entry
	remove := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		if view.callbacks.OnRemove != nil {
			view.callbacks.OnRemove(index, entry)
		}
	})
	remove.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, nil, container.NewCenter(remove), container.NewHBox(headers, values))
}

func (view *Window) confirmClear() {
	dialog.ShowConfirm(lang.X("stats.clear", "Clear"), lang.X("stats.clear.confirm", "Delete all statistics?"), func(confirmed bool) {
		if confirmed && view.callbacks.OnClear != nil {
			view.callbacks.OnClear()
		}
	}, view.window)
}

func (view *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyF1:
		view.ShowAbout()
	case fyne.KeyF2:
		if view.settingsBtn.Visible() {
			view.invoke(view.callbacks.OnSettings)()
		}
	case fyne.KeyF3:
		view.ToggleStats()
	case fyne.KeyF5:
		view.invoke(view.callbacks.OnTogglePause)()
	case fyne.KeyF6:
		view.invoke(view.callbacks.OnStop)()
	}
}

func (view *Window) invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
