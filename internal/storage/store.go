// Package storage persists the TimeKeeper config and statistics to disk.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
)

const (
	AppDirName     = "TimeKeeper"
	ConfigFileName = "TimeKeeper.toml"
	StatsFileName  = "stat.toml"
	ExportFileName = "TimeKeeper-statistics.csv"
)

// Paths locates the files managed by Store.
type Paths struct {
	Config string
	Stats  string
	Export string
}

// DefaultPaths places config and statistics under configDir/TimeKeeper and the
// CSV export in homeDir.
func DefaultPaths(configDir, homeDir string) Paths {
	dir := filepath.Join(configDir, AppDirName)
	return Paths{
		Config: filepath.Join(dir, ConfigFileName),
		Stats:  filepath.Join(dir, StatsFileName),
		Export: filepath.Join(homeDir, ExportFileName),
	}
}

type configFile struct {
	WorkTime             uint16 `toml:"work_time" yaml:"work_time"`
	FreeTime             uint16 `toml:"free_time" yaml:"free_time"`
	DesktopNotifications bool   `toml:"desktop_notifications" yaml:"desktop_notifications"`
}

type statsFile struct {
	Stats []statEntry `toml:"stats" yaml:"stats"`
}

type statEntry struct {
	Date       int64  `toml:"date" yaml:"date"`
	IsWorkTime bool   `toml:"is_wtime" yaml:"is_wtime"`
	Time       uint16 `toml:"time" yaml:"time"`
}

// Store reads and writes the config and statistics files. The encoding of
// each file follows its extension.
type Store struct {
	paths Paths
}

// NewStore creates a Store for paths.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths}
}

// Paths returns the files managed by the store.
func (store *Store) Paths() Paths {
	return store.paths
}

// LoadConfig reads the config file. On any error the defaults are returned
// along with the error; a missing file matches fs.ErrNotExist.
func (store *Store) LoadConfig() (model.PhaseConfig, error) {
	config := model.DefaultPhaseConfig()
	path := store.paths.Config

	rawData, err := os.ReadFile(path)
	if err != nil {
		return config, &IOError{Op: "read", Path: path, Err: err}
	}

	fileData := configFile{
		WorkTime:             config.WorkSeconds,
		FreeTime:             config.BreakSeconds,
		DesktopNotifications: config.NotificationsEnabled,
	}
	if err := codecFor(path).unmarshal(rawData, &fileData); err != nil {
		return config, &ParseError{Path: path, Err: err}
	}

	loaded := model.PhaseConfig{
		WorkSeconds:          fileData.WorkTime,
		BreakSeconds:         fileData.FreeTime,
		NotificationsEnabled: fileData.DesktopNotifications,
	}
	if err := loaded.Validate(); err != nil {
		return config, &ParseError{Path: path, Err: err}
	}
	return loaded, nil
}

// SaveConfig writes config atomically.
func (store *Store) SaveConfig(config model.PhaseConfig) error {
	path := store.paths.Config
	serialized, err := codecFor(path).marshal(configFile{
		WorkTime:             config.WorkSeconds,
		FreeTime:             config.BreakSeconds,
		DesktopNotifications: config.NotificationsEnabled,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFileAtomic(path, serialized)
}

// LoadStats reads the statistics file. A missing file is an empty log.
func (store *Store) LoadStats() (stats.Log, error) {
	path := store.paths.Stats

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats.Log{}, nil
		}
		return stats.Log{}, &IOError{Op: "read", Path: path, Err: err}
	}

	var fileData statsFile
	if err := codecFor(path).unmarshal(rawData, &fileData); err != nil {
		return stats.Log{}, &ParseError{Path: path, Err: err}
	}

	entries := make([]stats.Entry, 0, len(fileData.Stats))
	for _, item := range fileData.Stats {
		entries = append(entries, item.entry())
	}
	return stats.FromEntries(entries), nil
}

// SaveStats writes log atomically, oldest entry first.
func (store *Store) SaveStats(log stats.Log) error {
	path := store.paths.Stats
	fileData := statsFile{Stats: make([]statEntry, 0, log.Len())}
	for _, item := range log.Entries() {
		fileData.Stats = append(fileData.Stats, statEntry{
			Date:       int64(item.Timestamp),
			IsWorkTime: item.Phase == model.PhaseWork,
			Time:       item.Duration,
		})
	}

	serialized, err := codecFor(path).marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	return writeFileAtomic(path, serialized)
}

// ExportCSV writes content to the export file and returns its path.
func (store *Store) ExportCSV(content string) (string, error) {
	path := store.paths.Export
	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

func (item statEntry) entry() stats.Entry {
	phase := model.PhaseBreak
	if item.IsWorkTime {
		phase = model.PhaseWork
	}
	timestamp := uint64(0)
	if item.Date > 0 {
		timestamp = uint64(item.Date)
	}
	return stats.Entry{Timestamp: timestamp, Phase: phase, Duration: item.Time}
}
