package platform

import (
	"fmt"
	"os"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetHomeDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	IsAutostartEnabled(appName string) (bool, error)
}

type platformService struct {
	configDir string
	homeDir   string
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// NewServiceWithDirs returns a Service rooted at the given directories instead
// of the user's.
func NewServiceWithDirs(configDir, homeDir string) Service {
	return &platformService{configDir: configDir, homeDir: homeDir}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	if service.configDir != "" {
		return service.configDir, nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := service.GetHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// GetHomeDir returns the user's home directory.
func (service *platformService) GetHomeDir() (string, error) {
	if service.homeDir != "" {
		return service.homeDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return homeDir, nil
}

// SetAutostart registers or unregisters the running executable.
func SetAutostart(service Service, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("enable autostart: resolve executable: %w", err)
	}
	return service.EnableAutostart(appName, execPath)
}
