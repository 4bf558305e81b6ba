// Package config handles the XDG configuration directory and the optional
// config.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskcli"

	// SettingsFile is the optional settings filename inside the config dir.
	SettingsFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. TASKCLI_API_BASE_URL.
	EnvPrefix = "TASKCLI"

	// DefaultBaseURL is the backend origin used when none is configured.
	DefaultBaseURL = "https://cave-tech-task.vercel.app"

	// DefaultTimeout is the fixed per-request timeout.
	DefaultTimeout = 10 * time.Second

	// StorageFile keeps each stored key in its own JSON file.
	StorageFile = "file"

	// StorageSQLite keeps stored keys in a SQLite database.
	StorageSQLite = "sqlite"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings holds the values read from config.yaml and the environment.
	Settings Settings
}

// Settings is the shape of config.yaml.
type Settings struct {
	API     APISettings     `mapstructure:"api"`
	Storage StorageSettings `mapstructure:"storage"`
	Session SessionSettings `mapstructure:"session"`
}

// APISettings configures the backend connection.
type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageSettings selects the local key-value store.
type StorageSettings struct {
	Kind string `mapstructure:"kind"`
}

// SessionSettings controls how the stored session reacts to the backend.
type SessionSettings struct {
	// ClearOnUnauthorized removes the stored token when the backend answers 401.
	ClearOnUnauthorized bool `mapstructure:"clear_on_unauthorized"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskcli or $HOME/.config/taskcli.
// Settings start at their defaults; call Load to read config.yaml.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		API: APISettings{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Storage: StorageSettings{Kind: StorageFile},
		Session: SessionSettings{ClearOnUnauthorized: true},
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Load reads config.yaml from the config directory, if present, and applies
// TASKCLI_* environment overrides on top of the defaults.
// Precedence (highest to lowest): environment, config.yaml, defaults.
func (c *Config) Load() error {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(c.SettingsPath())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", SettingsFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("parsing %s: %w", SettingsFile, err)
	}
	if err := s.validate(); err != nil {
		return err
	}
	c.Settings = s
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout.String())
	v.SetDefault("storage.kind", d.Storage.Kind)
	v.SetDefault("session.clear_on_unauthorized", d.Session.ClearOnUnauthorized)
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", s.API.Timeout)
	}
	switch s.Storage.Kind {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage.kind: %q (want %q or %q)", s.Storage.Kind, StorageFile, StorageSQLite)
	}
	return nil
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
