package cli

import (
	"timepicker-cli/internal/gallery"
	"timepicker-cli/internal/timepicker"

	"github.com/spf13/cobra"
)

func newGalleryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gallery",
		Short: "Show controlled, uncontrolled, styled and disabled pickers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runGallery(app); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}

func runGallery(app *App) error {
	applyTerminalPreferences(app)
	return gallery.Run(gallery.Options{
		Mouse:       app.cfg.UI.Mouse,
		Width:       app.cfg.Picker.Width,
		PanelRows:   app.cfg.Picker.PanelRows,
		Placeholder: app.cfg.Picker.Placeholder,
		Logger:      app.log,
	})
}

func applyTerminalPreferences(app *App) {
	timepicker.ApplyColorProfile()
	if app.cfg.UI.Theme != "" && app.cfg.UI.Theme != "auto" {
		timepicker.SetTheme(app.cfg.UI.Theme)
		return
	}
	timepicker.ApplyThemePreference()
}
