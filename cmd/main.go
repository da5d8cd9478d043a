// Package main is the FocusTimer entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "focustimer",
		Short:         "Pomodoro work/break timer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, fileErr, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			logger := cfg.NewLogger()
			if fileErr != nil {
				logger.Warn("using default configuration", "error", fileErr)
			}
			return run(cmd.Context(), cfg, opts.headless, logger)
		},
	}
	opts.register(cmd.Flags())
	return cmd
}
