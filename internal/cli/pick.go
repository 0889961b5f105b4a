package cli

import (
	"errors"
	"fmt"
	"strings"

	"timepicker-cli/internal/timepicker"

	"github.com/spf13/cobra"
)

func newPickCmd(app *App) *cobra.Command {
	var (
		value        string
		defaultValue string
		placeholder  string
		id           string
		name         string
		title        string
		disabled     bool
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a time interactively and print it",
		Example: strings.TrimSpace(`
  timepicker pick --default 14:45
  timepicker pick --value 09:30 --name start --format edn
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := pickProps(app, cmd, value, defaultValue)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("placeholder") {
				props.Placeholder = placeholder
			}
			props.ID = id
			props.Name = name
			props.Disabled = disabled

			applyTerminalPreferences(app)
			res, err := timepicker.Run(props, timepicker.RunOptions{
				Mouse:  app.cfg.UI.Mouse,
				Title:  title,
				Logger: app.log,
			})
			if errors.Is(err, timepicker.ErrCancelled) {
				return writeErr(cmd, err)
			}
			if err != nil {
				return writeErr(cmd, fmt.Errorf("run picker: %w", err))
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Run controlled, starting at this HH:MM")
	cmd.Flags().StringVar(&defaultValue, "default", "", "Initial HH:MM of an uncontrolled picker")
	cmd.Flags().StringVar(&placeholder, "placeholder", "HH:MM", "Field placeholders, split on ':'")
	cmd.Flags().StringVar(&id, "id", "", "Id of the hour field")
	cmd.Flags().StringVar(&name, "name", "", "Field name prefix ({name}-hour, {name}-minute)")
	cmd.Flags().StringVar(&title, "title", "", "Heading shown above the picker")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Show the picker read-only")
	cmd.MarkFlagsMutuallyExclusive("value", "default")

	return cmd
}

// pickProps builds picker props from config and the value flags. Values given
// on the command line are checked up front; the picker itself trusts them.
func pickProps(app *App, cmd *cobra.Command, value, defaultValue string) (timepicker.Props, error) {
	props := timepicker.Props{
		DefaultValue: app.cfg.Picker.DefaultValue,
		Placeholder:  app.cfg.Picker.Placeholder,
		Width:        app.cfg.Picker.Width,
		PanelRows:    app.cfg.Picker.PanelRows,
	}
	if cmd.Flags().Changed("value") {
		if err := timepicker.ValidateValue(value); err != nil {
			return props, errFlagValue("value", err)
		}
		props.Value = &value
	}
	if cmd.Flags().Changed("default") {
		if err := timepicker.ValidateValue(defaultValue); err != nil {
			return props, errFlagValue("default", err)
		}
		props.DefaultValue = defaultValue
	}
	return props, nil
}
