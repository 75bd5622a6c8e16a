package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/lang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/platform"
	"timekeeper/internal/storage"
	"timekeeper/internal/ui/dashboard"
	"timekeeper/internal/ui/notify"
	"timekeeper/internal/ui/overlay"
	"timekeeper/internal/ui/preferences"
	"timekeeper/internal/ui/tray"
	"timekeeper/resources"
)

const (
	appName   = "TimeKeeper"
	appID     = "io.github.timekeeper"
	configEnv = "TIMEKEEPER_CONFIG"
	debugEnv  = "TIMEKEEPER_DEBUG"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", os.Getenv(configEnv), "Config file (.toml, .yaml or .yml)")
	debug := flag.Bool("debug", os.Getenv(debugEnv) != "", "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	lock, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Info().Err(err).Msg("TimeKeeper is already running, activating it")
		if err := platform.ActivateRunningInstance(appName); err != nil {
			log.Warn().Err(err).Msg("failed to activate running instance")
		}
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	service := platform.NewService()
	store, err := newStore(service, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve data directories")
	}

	config, err := store.LoadConfig()
	configInvalid := err != nil
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("path", store.Paths().Config).Msg("no config yet, using defaults")
		} else {
			log.Warn().Err(err).Msg("failed to load config, using defaults")
		}
	}

	history, err := store.LoadStats()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load statistics, starting empty")
	}

	if err := resources.LoadTranslations(); err != nil {
		log.Warn().Err(err).Msg("failed to load translations")
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.LogoFile))

	var keeper *timekeeper.TimeKeeper
	breakWindows := overlay.New(fyneApp, overlay.Callbacks{
		OnOpened: func(handle timekeeper.WindowHandle) { keeper.WindowOpened(handle) },
		OnClosed: func(handle timekeeper.WindowHandle) { keeper.WindowClosed(handle) },
	})
	keeper = timekeeper.New(timekeeper.NewState(config, history), timekeeper.Ports{
		Store:    store,
		Notifier: notify.New(fyneApp),
		Windows:  breakWindows,
	}, timekeeper.Config{TickInterval: time.Second})

	autostart, err := service.IsAutostartEnabled(appName)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read autostart state")
	}
	prefsWindow := preferences.New(fyneApp, preferences.FromConfig(config, autostart), preferences.Callbacks{
		OnSave:          keeper.SaveSettings,
		OnNotifications: keeper.SetNotifications,
		OnAutostart: func(enabled bool) error {
			return platform.SetAutostart(service, appName, enabled)
		},
	})
	prefsWindow.ShowConfigWarning(configInvalid)

	watcher, err := storage.NewConfigWatcher(store.Paths().Config, func() {
		reloaded, err := store.LoadConfig()
		if err != nil {
			log.Warn().Err(err).Msg("ignoring unreadable config change")
			return
		}
		if reloaded != keeper.Snapshot().Config {
			log.Info().Str("path", store.Paths().Config).Msg("config changed on disk, applying")
			keeper.ApplyConfig(reloaded)
		}
	})
	if err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
	}

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			keeper.PersistStats()
			keeper.Close()
			if watcher != nil {
				_ = watcher.Stop()
			}
		})
	}
	quit := func() {
		shutdown()
		fyneApp.Quit()
	}

	desktopApp, hasTray := fyneApp.(desktop.App)
	var mainWindow *dashboard.Window
	mainWindow = dashboard.New(fyneApp, Version, dashboard.Callbacks{
		OnTogglePause: keeper.TogglePause,
		OnStop:        keeper.Stop,
		OnSettings:    prefsWindow.Show,
		OnExport:      keeper.ExportStats,
		OnClear:       keeper.ClearStats,
		OnRemove:      keeper.RemoveStat,
		OnClose: func() {
			if hasTray {
				mainWindow.Hide()
				return
			}
			quit()
		},
	})

	var trayManager *tray.Manager
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo(resources.LogoFile),
			Paused: resources.MustLogo(resources.PausedLogoFile),
		}, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnTogglePause: keeper.TogglePause,
			OnStop:        keeper.Stop,
			OnSettings:    prefsWindow.Show,
			OnQuit:        quit,
		})
	}

	events := keeper.Subscribe(64)
	go func() {
		for event := range events {
			handleEvent(event, mainWindow, prefsWindow, breakWindows, trayManager)
		}
	}()

	go lock.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	keeper.Start(context.Background())
	if watcher != nil {
		if err := watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	mainWindow.Show()
	if configInvalid {
		prefsWindow.Show()
	}
	fyneApp.Run()
	shutdown()
}

func newStore(service platform.Service, configPath string) (*storage.Store, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return nil, err
	}
	homeDir, err := service.GetHomeDir()
	if err != nil {
		return nil, err
	}

	paths := storage.DefaultPaths(configDir, homeDir)
	if configPath != "" {
		paths.Config = configPath
	}
	return storage.NewStore(paths), nil
}

func handleEvent(event timekeeper.Event, mainWindow *dashboard.Window, prefsWindow *preferences.Window, breakWindows *overlay.Manager, trayManager *tray.Manager) {
	state := event.State
	mainWindow.Update(state)
	if state.ModalOpen() {
		breakWindows.SetRemaining(state.Remaining())
	}
	if trayManager != nil {
		fyne.Do(func() {
			trayManager.SetState(state)
		})
	}

	switch event.Type {
	case timekeeper.EventConfigChange:
		fyne.Do(func() {
			autostart := prefsWindow.Settings().Autostart
			prefsWindow.UpdateSettings(preferences.FromConfig(state.Config, autostart))
		})
	case timekeeper.EventExported:
		mainWindow.ShowInfo(lang.X("stats.exported", "Statistics saved to {{.Path}}", map[string]any{"Path": event.Message}))
	case timekeeper.EventError:
		mainWindow.ShowError(errors.New(event.Message))
	}
}
