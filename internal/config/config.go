// Package config handles the XDG configuration directory, the settings file
// and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskpop"

	// SettingsFile is the TOML settings filename.
	SettingsFile = "settings.toml"

	// EnvFile holds optional TASKPOP_* overrides.
	EnvFile = ".env"

	// StorageFile is the default file-backed storage area.
	StorageFile = "storage.json"

	// DatabaseFile is the default SQLite database.
	DatabaseFile = "taskpop.db"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are the user-editable preferences.
	Settings Settings
}

// New creates a new Config with default settings in the default or
// specified config directory. It does not read any files.
// If configDir is empty, uses XDG_CONFIG_HOME/taskpop or $HOME/.config/taskpop.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load creates a Config and layers, in order: defaults, settings.toml,
// the .env file, then TASKPOP_* environment variables.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Settings.loadFile(cfg.SettingsPath()); err != nil {
		return nil, fmt.Errorf("loading settings file %s: %w", cfg.SettingsPath(), err)
	}
	if err := loadEnvFile(cfg.EnvPath()); err != nil {
		return nil, fmt.Errorf("loading env file %s: %w", cfg.EnvPath(), err)
	}
	if err := cfg.Settings.loadEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile sets variables from path without overriding ones already in
// the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
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

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnvPath returns the path to the .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// StoragePath returns the file storage path, resolving relative settings
// against the config directory.
func (c *Config) StoragePath() string {
	return c.resolve(c.Settings.FilePath, StorageFile)
}

// DatabasePath returns the SQLite path, resolving relative settings against
// the config directory.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Settings.SQLitePath, DatabaseFile)
}

func (c *Config) resolve(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) || p == ":memory:" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// SaveSettings writes the named keys, with their current values, to
// settings.toml. Every other key keeps what the file already holds, so
// --store and TASKPOP_* overrides are never written out.
func (c *Config) SaveSettings(keys ...string) error {
	file := DefaultSettings()
	if err := file.loadFile(c.SettingsPath()); err != nil {
		return fmt.Errorf("loading settings file %s: %w", c.SettingsPath(), err)
	}
	for _, key := range keys {
		v, err := c.Settings.Get(key)
		if err != nil {
			return err
		}
		if err := file.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return file.save(c.SettingsPath())
}
