package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/lang"
)

const (
	logoDir        = "logo/"
	translationDir = "translations"

	// LogoFile is the application icon.
	LogoFile = "timekeeper.png"
	// PausedLogoFile is the tray icon shown while the timer is paused.
	PausedLogoFile = "timekeeper_paused.png"
)

//go:embed logo/*.png
var logoFS embed.FS

//go:embed translations/*.json
var translationFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// LoadTranslations registers the embedded UI strings with fyne's lang package.
func LoadTranslations() error {
	if err := lang.AddTranslationsFS(translationFS, translationDir); err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	return nil
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
