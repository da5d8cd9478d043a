package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"focustimer/internal/config"
)

type options struct {
	configPath string
	store      string
	logLevel   string
	headless   bool
}

func (opts *options) register(flags *pflag.FlagSet) {
	flags.StringVar(&opts.configPath, "config", "", "path to config.yaml (default <user config dir>/FocusTimer/config.yaml)")
	flags.StringVar(&opts.store, "store", "", "persistence backend: preferences, sqlite, yaml or memory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&opts.headless, "headless", false, "run the terminal UI instead of the desktop app")
}

// resolve loads the config file and applies flags the user set explicitly.
// A broken config file is reported through fileErr and replaced by the
// defaults; invalid flag values fail.
func (opts *options) resolve(flags *pflag.FlagSet) (cfg config.Config, fileErr error, err error) {
	path := opts.configPath
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, nil, err
		}
	}

	cfg, fileErr = config.Load(path)
	if fileErr != nil {
		fileErr = fmt.Errorf("load config %s: %w", path, fileErr)
	}

	if flags.Changed("store") {
		store, err := config.ParseStore(opts.store)
		if err != nil {
			return cfg, fileErr, err
		}
		cfg.Store = store
	}
	if flags.Changed("log-level") {
		level, err := config.ParseLogLevel(opts.logLevel)
		if err != nil {
			return cfg, fileErr, err
		}
		cfg.LogLevel = level
	}
	return cfg, fileErr, nil
}
