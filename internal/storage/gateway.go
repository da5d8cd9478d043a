package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"focustimer/internal/core/model"
)

// Keys used in the Store.
const (
	KeySettings        = "settings"
	KeySettingsVersion = "settings-version"
	KeyProgress        = "progress"
)

// Gateway maps timer settings and progress onto a Store.
type Gateway struct {
	store  Store
	logger *slog.Logger
}

// NewGateway creates a Gateway over store.
func NewGateway(store Store, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{store: store, logger: logger}
}

// LoadSettings returns the stored settings. Missing, malformed or
// differently versioned settings are replaced by the defaults, which are
// written back together with the current version tag.
func (gateway *Gateway) LoadSettings() (model.Settings, error) {
	settings, err := gateway.readSettings()
	if err == nil {
		return settings.Clamp(), nil
	}

	gateway.logger.Info("resetting settings to defaults", "reason", err)
	defaults := model.DefaultSettings()
	if saveErr := gateway.SaveSettings(defaults); saveErr != nil {
		return defaults, saveErr
	}
	return defaults, nil
}

// SaveSettings writes settings and the current version tag.
func (gateway *Gateway) SaveSettings(settings model.Settings) error {
	if err := gateway.writeJSON(KeySettings, settings); err != nil {
		return err
	}
	return gateway.writeJSON(KeySettingsVersion, model.SettingsVersion)
}

// LoadProgress returns the stored progress, or the zero Progress when none
// is stored or the stored value is malformed.
func (gateway *Gateway) LoadProgress() (model.Progress, error) {
	var progress model.Progress
	err := gateway.readJSON(KeyProgress, &progress)
	if errors.Is(err, ErrNotFound) {
		return model.Progress{}, nil
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		gateway.logger.Info("discarding malformed progress", "error", err)
		return model.Progress{}, nil
	}
	if err != nil {
		return model.Progress{}, err
	}
	return progress, nil
}

// SaveProgress writes progress.
func (gateway *Gateway) SaveProgress(progress model.Progress) error {
	return gateway.writeJSON(KeyProgress, progress)
}

func (gateway *Gateway) readSettings() (model.Settings, error) {
	var version string
	if err := gateway.readJSON(KeySettingsVersion, &version); err != nil {
		return model.Settings{}, fmt.Errorf("settings version: %w", err)
	}
	if version != model.SettingsVersion {
		return model.Settings{}, fmt.Errorf("settings version %q, want %q", version, model.SettingsVersion)
	}

	var settings model.Settings
	if err := gateway.readJSON(KeySettings, &settings); err != nil {
		return model.Settings{}, fmt.Errorf("settings: %w", err)
	}
	return settings, nil
}

func (gateway *Gateway) readJSON(key string, target any) error {
	raw, err := gateway.store.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (gateway *Gateway) writeJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := gateway.store.Set(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
