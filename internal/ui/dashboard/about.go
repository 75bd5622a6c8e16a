package dashboard

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

// AuthorURL is the author's profile linked from the about dialog.
const AuthorURL = "https://github.com/mskrasnov"

func aboutContent(window fyne.Window, version string) fyne.CanvasObject {
	var logo fyne.CanvasObject = widget.NewLabel("")
	if icon := window.Icon(); icon != nil {
		image := canvas.NewImageFromResource(icon)
		image.FillMode = canvas.ImageFillContain
		image.SetMinSize(fyne.NewSize(64, 64))
		logo = image
	}

	header := container.NewVBox(
		widget.NewLabelWithStyle("TimeKeeper", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(lang.X("about.version", "Version {{.Version}}", map[string]any{"Version": version})),
	)

	return container.NewVBox(
		container.NewHBox(logo, header),
		widget.NewLabel(lang.X("app.description", "Work and break interval timer")),
		widget.NewSeparator(),
		widget.NewLabel(lang.X("about.author", "Idea: Mikhail Krasnov")),
		authorLink(),
	)
}

func authorLink() fyne.CanvasObject {
	link, err := url.Parse(AuthorURL)
	if err != nil {
		return widget.NewLabel(AuthorURL)
	}
	return widget.NewHyperlink(AuthorURL, link)
}
