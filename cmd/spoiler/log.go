package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/spoiler/internal/config"
	"github.com/five82/spoiler/internal/logging"
	"github.com/five82/spoiler/internal/logtail"
)

func newLogCmd(root *rootOptions) *cobra.Command {
	var (
		lines int
		level string
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the end of spoiler's log file",
		Long: `Print the most recent entries of spoiler's own log file.

Example:
  # Last 50 entries, formatted
  spoiler log

  # Warnings and errors only, as stored
  spoiler log --level warn --raw`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path := cfg.LogFile
			if path == "" {
				path = logging.DefaultPath()
			}

			entries, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			if level != "" {
				entries = logtail.Filter(entries, logging.ParseLevel(level))
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", path)
				return nil
			}
			color := term.IsTerminal(int(os.Stdout.Fd()))
			return logtail.Render(cmd.OutOrStdout(), entries, !raw, color)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to read from the end (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "only show entries at or above this level")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored JSON lines")
	return cmd
}
