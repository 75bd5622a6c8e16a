//go:build !windows

package overlay

import "fyne.io/fyne/v2"

// applyNativeOpacity is a no-op where fyne windows are always opaque.
func applyNativeOpacity(fyne.Window, uint8) {}
