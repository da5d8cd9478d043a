package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/config"
	"focustimer/internal/core/model"
	"focustimer/internal/core/timekeeper"
	"focustimer/internal/notify"
	"focustimer/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseFlags(t *testing.T, args ...string) (*options, *pflag.FlagSet) {
	t.Helper()
	opts := &options{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.register(flags)
	require.NoError(t, flags.Parse(args))
	return opts, flags
}

func TestResolveAppliesExplicitFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: yaml\nlog_level: warn\n"), 0o644))

	opts, flags := parseFlags(t, "--config", path, "--store", "memory", "--headless")
	cfg, fileErr, err := opts.resolve(flags)

	require.NoError(t, err)
	assert.NoError(t, fileErr)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.True(t, opts.headless)
}

func TestResolveFallsBackOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: tape\n"), 0o644))

	opts, flags := parseFlags(t, "--config", path)
	cfg, fileErr, err := opts.resolve(flags)

	require.NoError(t, err)
	assert.Error(t, fileErr)
	assert.Equal(t, config.Default(filepath.Dir(path)), cfg)
}

func TestResolveRejectsInvalidFlag(t *testing.T) {
	opts, flags := parseFlags(t, "--config", filepath.Join(t.TempDir(), "config.yaml"), "--log-level", "chatty")
	_, _, err := opts.resolve(flags)
	assert.Error(t, err)
}

func TestOpenStoreSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	logger := discardLogger()

	cfg.Store = config.StoreMemory
	store, closer, err := openStore(cfg, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, store)
	assert.Nil(t, closer)

	cfg.Store = config.StorePreferences
	store, _, err = openStore(cfg, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.YAMLStore{}, store)

	app := test.NewApp()
	defer app.Quit()
	store, _, err = openStore(cfg, app.Preferences(), logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.PreferencesStore{}, store)

	cfg.Store = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(dir, "nested", "focustimer.db")
	store, closer, err = openStore(cfg, nil, logger)
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()
	assert.IsType(t, &storage.SQLiteStore{}, store)
}

func TestBuildNotifier(t *testing.T) {
	cfg := config.Default(t.TempDir())
	logger := discardLogger()

	cfg.Notifier = config.NotifierNone
	notifier, closer := buildNotifier(cfg, nil, logger)
	assert.Nil(t, notifier)
	assert.Nil(t, closer)

	cfg.Notifier = config.NotifierFyne
	notifier, _ = buildNotifier(cfg, nil, logger)
	require.NotNil(t, notifier)
	assert.IsType(t, &notify.Chain{}, notifier)
	assert.NoError(t, notifier.Notify("Work Time!", "Starting work session 1 of 4."))
}

func TestNewServicesHonoursToggles(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Store = config.StoreMemory
	cfg.Notifier = config.NotifierNone
	cfg.Sound = false
	cfg.WakeLock = false

	svc, err := newServices(cfg, nil, discardLogger())
	require.NoError(t, err)
	defer svc.Close()

	assert.Nil(t, svc.deps.Player)
	assert.Nil(t, svc.deps.WakeLock)
	assert.Nil(t, svc.deps.Notifier)

	settings, err := svc.deps.Persistence.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "store", "headless", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

type recordingView struct {
	snapshots []timekeeper.Snapshot
	settings  []model.Settings
}

func (view *recordingView) Update(snapshot timekeeper.Snapshot) {
	view.snapshots = append(view.snapshots, snapshot)
}

func (view *recordingView) UpdateSettings(settings model.Settings) {
	view.settings = append(view.settings, settings)
}

func TestSavedSettingsRefreshFormOnce(t *testing.T) {
	keeper := timekeeper.New(timekeeper.Deps{
		Persistence: storage.NewGateway(storage.NewMemoryStore(), discardLogger()),
		Logger:      discardLogger(),
	}, timekeeper.Config{})
	defer keeper.Close()
	events := keeper.Subscribe(4)

	form := &recordingView{}
	window := &recordingView{}
	work := 30
	saveSettings(keeper)(model.SettingsPatch{WorkDuration: &work})
	assert.Empty(t, form.settings)

	renderEvent(<-events, []snapshotView{window}, form)

	require.Len(t, form.settings, 1)
	assert.Equal(t, 30, form.settings[0].WorkDuration)
	require.Len(t, window.snapshots, 1)
	assert.Equal(t, 1800, window.snapshots[0].RemainingSeconds)
}

func TestRenderEventLeavesFormForTimerEvents(t *testing.T) {
	form := &recordingView{}
	window := &recordingView{}
	renderEvent(timekeeper.Event{Type: timekeeper.EventProgress}, []snapshotView{window}, form)

	assert.Empty(t, form.settings)
	assert.Len(t, window.snapshots, 1)
}
