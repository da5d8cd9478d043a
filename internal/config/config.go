// Package config loads the FocusTimer application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	AppName        = "FocusTimer"
	AppID          = "com.focustimer.app"
	configFileName = "config.yaml"
)

// StoreKind selects the persistence backend.
type StoreKind string

const (
	StorePreferences StoreKind = "preferences"
	StoreSQLite      StoreKind = "sqlite"
	StoreYAML        StoreKind = "yaml"
	StoreMemory      StoreKind = "memory"
)

// NotifierKind selects how notifications are delivered.
type NotifierKind string

const (
	NotifierAuto NotifierKind = "auto"
	NotifierFyne NotifierKind = "fyne"
	NotifierDBus NotifierKind = "dbus"
	NotifierNone NotifierKind = "none"
)

// Config is the application configuration.
type Config struct {
	Store        StoreKind
	SQLitePath   string
	YAMLPath     string
	TickInterval time.Duration
	LogLevel     slog.Level
	Notifier     NotifierKind
	WakeLock     bool
	Sound        bool
}

type yamlConfig struct {
	Store        string `yaml:"store"`
	SQLitePath   string `yaml:"sqlite_path"`
	YAMLPath     string `yaml:"yaml_path"`
	TickInterval string `yaml:"tick_interval"`
	LogLevel     string `yaml:"log_level"`
	Notifier     string `yaml:"notifier"`
	WakeLock     *bool  `yaml:"wake_lock"`
	Sound        *bool  `yaml:"sound"`
}

// Default returns the configuration used when no file exists. Data files
// live under dir.
func Default(dir string) Config {
	return Config{
		Store:        StorePreferences,
		SQLitePath:   filepath.Join(dir, "focustimer.db"),
		YAMLPath:     filepath.Join(dir, "state.yaml"),
		TickInterval: time.Second,
		LogLevel:     slog.LevelInfo,
		Notifier:     NotifierAuto,
		WakeLock:     true,
		Sound:        true,
	}
}

// Dir returns the per-user configuration directory of the application.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, AppName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("resolve user config dir: %w", err)
		}
		return "", fmt.Errorf("resolve user config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the configuration at path. A missing file yields the defaults
// for the directory containing path.
func Load(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := cfg.apply(fileData); err != nil {
		return Default(filepath.Dir(path)), err
	}
	return cfg, nil
}

func (cfg *Config) apply(fileData yamlConfig) error {
	if fileData.Store != "" {
		store, err := ParseStore(fileData.Store)
		if err != nil {
			return err
		}
		cfg.Store = store
	}
	if fileData.SQLitePath != "" {
		cfg.SQLitePath = fileData.SQLitePath
	}
	if fileData.YAMLPath != "" {
		cfg.YAMLPath = fileData.YAMLPath
	}
	if fileData.TickInterval != "" {
		interval, err := time.ParseDuration(fileData.TickInterval)
		if err != nil {
			return fmt.Errorf("parse tick_interval: %w", err)
		}
		if interval > 0 {
			cfg.TickInterval = interval
		}
	}
	if fileData.LogLevel != "" {
		level, err := ParseLogLevel(fileData.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if fileData.Notifier != "" {
		notifier, err := ParseNotifier(fileData.Notifier)
		if err != nil {
			return err
		}
		cfg.Notifier = notifier
	}
	if fileData.WakeLock != nil {
		cfg.WakeLock = *fileData.WakeLock
	}
	if fileData.Sound != nil {
		cfg.Sound = *fileData.Sound
	}
	return nil
}

// ParseStore validates a store name.
func ParseStore(value string) (StoreKind, error) {
	switch kind := StoreKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case StorePreferences, StoreSQLite, StoreYAML, StoreMemory:
		return kind, nil
	}
	return "", fmt.Errorf("unknown store %q", value)
}

// ParseNotifier validates a notifier name.
func ParseNotifier(value string) (NotifierKind, error) {
	switch kind := NotifierKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case NotifierAuto, NotifierFyne, NotifierDBus, NotifierNone:
		return kind, nil
	}
	return "", fmt.Errorf("unknown notifier %q", value)
}

// ParseLogLevel parses debug, info, warn or error.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log_level: %w", err)
	}
	return level, nil
}

// NewLogger builds the application logger.
func (cfg Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
