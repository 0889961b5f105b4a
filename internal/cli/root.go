package cli

import (
	"fmt"
	"os"
	"strings"

	"timepicker-cli/internal/config"
	"timepicker-cli/internal/format"
	"timepicker-cli/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Format     string
	Pretty     bool
	LogFile    string
	LogLevel   string
	NoMouse    bool

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "timepicker",
		Short:        "Terminal time picker (HH:MM)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Interactive showcase
  timepicker

  # Pick a time and print it as JSON
  timepicker pick --default 14:45 --name shift

  # Normalize values the way the picker does on blur
  timepicker normalize 7:5 23:
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		// Sync fails on some file types (e.g. /dev/stderr); nothing to do about it.
		_ = app.log.Sync()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TIMEPICKER_CONFIG", ""), "Path to config.toml")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.NoMouse, "no-mouse", false, "Disable mouse input")

	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newGalleryCmd(app))
	cmd.AddCommand(newNormalizeCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// load resolves configuration: defaults < config file < env < flags.
func (app *App) load(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = app.Format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = app.Pretty
	}
	if flags.Changed("log-file") {
		cfg.Log.File = app.LogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	if flags.Changed("no-mouse") {
		cfg.UI.Mouse = !app.NoMouse
	}
	app.cfg = cfg

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log
	app.log.Debug("config loaded", zap.String("command", cmd.CommandPath()))
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.cfg.Output.Format, app.cfg.Output.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
