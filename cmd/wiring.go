package main

import (
	"errors"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"

	"focustimer/internal/config"
	"focustimer/internal/core/timekeeper"
	"focustimer/internal/notify"
	"focustimer/internal/platform"
	"focustimer/internal/storage"
)

// services are the collaborators handed to the TimeKeeper plus the
// resources that must be closed on exit.
type services struct {
	deps    timekeeper.Deps
	closers []io.Closer
}

func (svc *services) Close() error {
	var errs []error
	for i := len(svc.closers) - 1; i >= 0; i-- {
		if err := svc.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openStore selects the persistence backend. prefs is nil in headless mode,
// where the preferences backend falls back to the YAML file.
func openStore(cfg config.Config, prefs fyne.Preferences, logger *slog.Logger) (storage.Store, io.Closer, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil, nil
	case config.StoreSQLite:
		store, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.StorePreferences:
		if prefs != nil {
			return storage.NewPreferencesStore(prefs, ""), nil, nil
		}
		logger.Info("preferences store needs the desktop app, using yaml", "path", cfg.YAMLPath)
	}
	return storage.NewYAMLStore(cfg.YAMLPath, logger), nil, nil
}

// buildNotifier assembles the notification chain. app is nil in headless
// mode.
func buildNotifier(cfg config.Config, app fyne.App, logger *slog.Logger) (timekeeper.Notifier, io.Closer) {
	var (
		notifiers []notify.Notifier
		closer    io.Closer
	)

	addDBus := func() {
		dbusNotifier, err := platform.NewDBusNotifier(config.AppName)
		if err != nil {
			logger.Debug("dbus notifications unavailable", "error", err)
			return
		}
		notifiers = append(notifiers, dbusNotifier)
		closer = dbusNotifier
	}

	switch cfg.Notifier {
	case config.NotifierNone:
		return nil, nil
	case config.NotifierDBus:
		addDBus()
	case config.NotifierFyne:
		if app != nil {
			notifiers = append(notifiers, notify.NewFyneNotifier(app))
		}
	default:
		if app != nil {
			notifiers = append(notifiers, notify.NewFyneNotifier(app))
		} else {
			addDBus()
		}
	}
	notifiers = append(notifiers, notify.NewLogNotifier(logger))
	return notify.NewChain(logger, notifiers...), closer
}

// newServices wires persistence, notifications, sound and the wake lock.
func newServices(cfg config.Config, app fyne.App, logger *slog.Logger) (*services, error) {
	var prefs fyne.Preferences
	if app != nil {
		prefs = app.Preferences()
	}

	svc := &services{}
	store, storeCloser, err := openStore(cfg, prefs, logger)
	if err != nil {
		return nil, err
	}
	if storeCloser != nil {
		svc.closers = append(svc.closers, storeCloser)
	}

	notifier, notifierCloser := buildNotifier(cfg, app, logger)
	if notifierCloser != nil {
		svc.closers = append(svc.closers, notifierCloser)
	}

	svc.deps = timekeeper.Deps{
		Persistence: storage.NewGateway(store, logger),
		Clock:       timekeeper.SystemClock,
		Notifier:    notifier,
		Logger:      logger,
	}
	if cfg.Sound {
		svc.deps.Player = platform.NewSoundPlayer(platform.ExecRunner{}, logger)
	}
	if cfg.WakeLock {
		wakeLock := platform.NewWakeLock(config.AppName, logger)
		svc.deps.WakeLock = wakeLock
		svc.closers = append(svc.closers, wakeLock)
	}
	return svc, nil
}
