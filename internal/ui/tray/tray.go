// Package tray manages the system tray menu.
package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/lang"

	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/ui/uitext"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnStop        func()
	OnSettings    func()
	OnQuit        func()
}

// Icons are the tray icons for the running and paused timer.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	icons      Icons
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	paused     bool
	started    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
	}

	manager.statusItem = fyne.NewMenuItem("TimeKeeper", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem(uitext.StartLabel(false), manager.call(manager.callbacks.OnTogglePause))

	manager.refreshMenu()
	manager.setIcon(false)
	return manager
}

// SetState updates the status line, the pause item and the icon.
func (manager *Manager) SetState(state timekeeper.State) {
	statusChanged := manager.statusItem.Label != uitext.TrayStatus(state)
	pauseChanged := !manager.started || manager.paused != state.Paused
	manager.started = true
	manager.paused = state.Paused

	if !statusChanged && !pauseChanged {
		return
	}
	manager.statusItem.Label = uitext.TrayStatus(state)
	manager.pauseItem.Label = uitext.StartLabel(state.Paused)
	if pauseChanged {
		manager.setIcon(state.Paused)
	}
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("TimeKeeper",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(lang.X("tray.show", "Show TimeKeeper"), manager.call(manager.callbacks.OnShow)),
		manager.pauseItem,
		fyne.NewMenuItem(lang.X("main.stop", "Stop"), manager.call(manager.callbacks.OnStop)),
		fyne.NewMenuItem(lang.X("main.settings", "Settings"), manager.call(manager.callbacks.OnSettings)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(lang.X("tray.quit", "Quit"), manager.call(manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) call(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}

func (manager *Manager) setIcon(paused bool) {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Active
	if paused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
