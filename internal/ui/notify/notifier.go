// Package notify sends desktop notifications through Fyne.
package notify

import (
	"errors"

	"fyne.io/fyne/v2"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/timekeeper"
	"timekeeper/internal/ui/uitext"
)

// ErrNoApp is returned when the notifier has no application to send through.
var ErrNoApp = errors.New("notifier has no application")

// Notifier implements timekeeper.Notifier with app.SendNotification.
type Notifier struct {
	app fyne.App
}

// New creates a Notifier for app.
func New(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

// Notify announces that completed has ended.
func (notifier *Notifier) Notify(completed model.Phase) error {
	if notifier == nil || notifier.app == nil {
		return ErrNoApp
	}
	notification := Build(completed)
	fyne.Do(func() {
		notifier.app.SendNotification(notification)
	})
	return nil
}

// Build returns the notification sent when completed ends.
func Build(completed model.Phase) *fyne.Notification {
	title, content := uitext.Notification(completed)
	return fyne.NewNotification(title, content)
}

var _ timekeeper.Notifier = (*Notifier)(nil)
