// Package overlay shows the break window used when desktop notifications are
// turned off.
package overlay

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"github.com/rs/zerolog/log"

	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/core/timevalue"
)

// BreakColor is the background of break screens.
var BreakColor = color.NRGBA{R: 0xd7, G: 0x99, B: 0x21, A: 0xff}

const (
	overlayWidthFraction  = float32(0.4)
	overlayHeightFraction = float32(0.4)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
	// Opacity is applied where the platform supports translucent windows.
	Opacity = uint8(235)
)

// Callbacks report window lifecycle back to the timer.
type Callbacks struct {
	OnOpened func(timekeeper.WindowHandle)
	OnClosed func(timekeeper.WindowHandle)
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Manager owns the break windows. It implements timekeeper.Windows; every
// method returns immediately and does the UI work on the Fyne thread.
type Manager struct {
	app       fyne.App
	callbacks Callbacks

	mu        sync.Mutex
	windows   map[timekeeper.WindowHandle]*breakWindow
	remaining timevalue.Duration
}

type breakWindow struct {
	handle     timekeeper.WindowHandle
	window     fyne.Window
	timerLabel *canvas.Text
	closing    bool
}

// New creates a Manager.
func New(app fyne.App, callbacks Callbacks) *Manager {
	return &Manager{
		app:       app,
		callbacks: callbacks,
		windows:   make(map[timekeeper.WindowHandle]*breakWindow),
	}
}

// OpenModal shows a centered break window for handle.
func (manager *Manager) OpenModal(handle timekeeper.WindowHandle) {
	fyne.Do(func() {
		manager.open(handle)
	})
}

// CloseModal closes the window for handle, if any.
func (manager *Manager) CloseModal(handle timekeeper.WindowHandle) {
	fyne.Do(func() {
		manager.close(handle)
	})
}

// Maximize expands the window for handle to the whole screen.
func (manager *Manager) Maximize(handle timekeeper.WindowHandle) {
	fyne.Do(func() {
		manager.mu.Lock()
		overlay := manager.windows[handle]
		manager.mu.Unlock()
		if overlay == nil {
			return
		}
		overlay.window.SetFullScreen(true)
		overlay.window.RequestFocus()
	})
}

// SetRemaining updates the countdown of every open window.
func (manager *Manager) SetRemaining(remaining timevalue.Duration) {
	fyne.Do(func() {
		manager.setRemaining(remaining)
	})
}

// OpenCount returns the number of open break windows.
func (manager *Manager) OpenCount() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return len(manager.windows)
}

func (manager *Manager) open(handle timekeeper.WindowHandle) {
	manager.mu.Lock()
	if _, exists := manager.windows[handle]; exists {
		manager.mu.Unlock()
		return
	}
	remaining := manager.remaining
	manager.mu.Unlock()

	window := manager.app.NewWindow("TimeKeeper")
	if driver, ok := manager.app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if manager.app.Icon() != nil {
		window.SetIcon(manager.app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(BreakColor)

	titleLabel := canvas.NewText(lang.X("phase.break", "Break"), color.White)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 32

	messageLabel := canvas.NewText(lang.X("modal.message", "Time to rest. Step away from the screen."), color.White)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextSize = 18

	timerLabel := canvas.NewText(remainingText(remaining), color.White)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 24

	content := container.NewVBox(
		layout.NewSpacer(),
		titleLabel,
		messageLabel,
		timerLabel,
		layout.NewSpacer(),
	)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))

	overlay := &breakWindow{handle: handle, window: window, timerLabel: timerLabel}
	window.SetCloseIntercept(overlay.holdOpen)

	manager.mu.Lock()
	manager.windows[handle] = overlay
	manager.mu.Unlock()

	resizeToScreenFraction(window)
	window.Show()
	applyNativeOpacity(window, Opacity)
	window.RequestFocus()
	log.Debug().Uint64("handle", uint64(handle)).Msg("break window opened")

	if manager.callbacks.OnOpened != nil {
		manager.callbacks.OnOpened(handle)
	}
}

func (manager *Manager) close(handle timekeeper.WindowHandle) {
	manager.mu.Lock()
	overlay := manager.windows[handle]
	if overlay == nil || overlay.closing {
		manager.mu.Unlock()
		return
	}
	overlay.closing = true
	delete(manager.windows, handle)
	manager.mu.Unlock()

	overlay.window.SetFullScreen(false)
	overlay.window.Close()
	log.Debug().Uint64("handle", uint64(handle)).Msg("break window closed")

	if manager.callbacks.OnClosed != nil {
		manager.callbacks.OnClosed(handle)
	}
}

// holdOpen refuses a close request from the user. Only CloseModal ends a break window.
func (overlay *breakWindow) holdOpen() {
	log.Debug().Uint64("handle", uint64(overlay.handle)).Msg("break window close request ignored")
	overlay.window.RequestFocus()
}

func (manager *Manager) setRemaining(remaining timevalue.Duration) {
	manager.mu.Lock()
	manager.remaining = remaining
	windows := make([]*breakWindow, 0, len(manager.windows))
	for _, overlay := range manager.windows {
		windows = append(windows, overlay)
	}
	manager.mu.Unlock()

	text := remainingText(remaining)
	for _, overlay := range windows {
		overlay.timerLabel.Text = text
		overlay.timerLabel.Refresh()
	}
}

func resizeToScreenFraction(window fyne.Window) {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	window.Resize(fyne.NewSize(width, height))
	window.CenterOnScreen()
}

func remainingText(remaining timevalue.Duration) string {
	return lang.X("modal.remaining", "Back to work in {{.Remaining}}", map[string]any{
		"Remaining": remaining.Format(),
	})
}

var _ timekeeper.Windows = (*Manager)(nil)
