package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/spoiler/internal/app"
)

type rootOptions struct {
	configPath  string
	prefsPath   string
	pollSeconds int
	logFile     string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var o rootOptions

	cmd := &cobra.Command{
		Use:   "spoiler",
		Short: "Terminal dashboard for a Transmission daemon",
		Long: `spoiler shows the jobs of a Transmission daemon in a live terminal
dashboard. Jobs can be paused, resumed, verified, renamed, added and removed,
and each job's files can be browsed as a tree.

Settings are read from $XDG_CONFIG_HOME/spoiler/config.toml; flags override them.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{
				ConfigPath: o.configPath,
				PrefsPath:  o.prefsPath,
				LogFile:    o.logFile,
				LogLevel:   o.logLevel,
			}
			if o.pollSeconds > 0 {
				opts.PollEvery = time.Duration(o.pollSeconds) * time.Second
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/spoiler/config.toml)")
	cmd.Flags().StringVar(&o.prefsPath, "prefs", "", "preferences file (default $XDG_CONFIG_HOME/spoiler/prefs.toml)")
	cmd.Flags().IntVar(&o.pollSeconds, "poll", 0, "refresh interval in seconds (default from config, 1s)")
	cmd.Flags().StringVar(&o.logFile, "log-file", "", "log file (default $XDG_STATE_HOME/spoiler/spoiler.log)")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newLogCmd(&o))
	return cmd
}
