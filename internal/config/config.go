package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/toastimer/internal/preset"
)

// Config holds application configuration.
type Config struct {
	Toast   ToastConfig
	Presets map[string]time.Duration
	History HistoryConfig
	Log     LogConfig
}

// ToastConfig holds countdown settings.
type ToastConfig struct {
	Preset     string
	Interval   time.Duration
	FinishHold time.Duration `mapstructure:"finish_hold"`
}

// HistoryConfig holds sqlite settings for the session log.
type HistoryConfig struct {
	Enabled bool
	Path    string
}

// LogConfig holds logging settings. An empty File disables logging.
type LogConfig struct {
	Level  string
	File   string
	Format string
}

// DefaultPath returns the config file location, honouring TOASTIMER_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("TOASTIMER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "toastimer", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix TOASTIMER_.
// A missing file is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("toast.preset", "golden")
	v.SetDefault("toast.interval", "1s")
	v.SetDefault("toast.finish_hold", "3s")
	for name, d := range preset.Defaults() {
		v.SetDefault("presets."+name, d.String())
	}
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "toastimer", "history.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "json")

	v.SetConfigType("toml")
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("TOASTIMER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Toast.Interval <= 0 {
		return Config{}, fmt.Errorf("toast.interval must be positive, got %s", c.Toast.Interval)
	}
	if c.Toast.FinishHold < 0 {
		return Config{}, fmt.Errorf("toast.finish_hold must not be negative, got %s", c.Toast.FinishHold)
	}
	return c, nil
}

// Save writes the provided config to path, creating the config directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("toast.preset", cfg.Toast.Preset)
	v.Set("toast.interval", cfg.Toast.Interval.String())
	v.Set("toast.finish_hold", cfg.Toast.FinishHold.String())
	for name, d := range cfg.Presets {
		v.Set("presets."+name, d.String())
	}
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
