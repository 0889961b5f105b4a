package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI's configuration.
type Config struct {
	Picker PickerConfig `json:"picker"`
	UI     UIConfig     `json:"ui"`
	Output OutputConfig `json:"output"`
	Log    LogConfig    `json:"log"`
}

// PickerConfig holds defaults for new pickers.
type PickerConfig struct {
	DefaultValue string `mapstructure:"default_value" json:"defaultValue"`
	Placeholder  string `mapstructure:"placeholder" json:"placeholder"`
	Width        int    `mapstructure:"width" json:"width"`
	PanelRows    int    `mapstructure:"panel_rows" json:"panelRows"`
}

// UIConfig holds terminal settings.
type UIConfig struct {
	Mouse bool   `mapstructure:"mouse" json:"mouse"`
	Theme string `mapstructure:"theme" json:"theme"`
}

// OutputConfig holds settings for scriptable output.
type OutputConfig struct {
	Format string `mapstructure:"format" json:"format"`
	Pretty bool   `mapstructure:"pretty" json:"pretty"`
}

// LogConfig holds logger settings. An empty File disables logging.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}

// DefaultPath is where Load looks for config.toml unless TIMEPICKER_CONFIG
// or an explicit path is given.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "timepicker", "config.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "timepicker", "config.toml")
}

// Load reads configuration from path (or the default location) and the
// environment. Env var overrides use prefix TIMEPICKER_. A missing config
// file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("picker.default_value", "00:00")
	v.SetDefault("picker.placeholder", "HH:MM")
	v.SetDefault("picker.width", 24)
	v.SetDefault("picker.panel_rows", 6)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.theme", "auto")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("TIMEPICKER_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("TIMEPICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit {
		// Only an explicitly requested file has to exist.
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
