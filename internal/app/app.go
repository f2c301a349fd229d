package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/spoiler/internal/config"
	"github.com/five82/spoiler/internal/logging"
	"github.com/five82/spoiler/internal/prefs"
	"github.com/five82/spoiler/internal/state"
	"github.com/five82/spoiler/internal/transmission"
	"github.com/five82/spoiler/internal/ui"
)

// initialFetchTimeout bounds the synchronous fetch done before the UI starts.
const initialFetchTimeout = 3 * time.Second

// Options configure the spoiler application. Non-zero values override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses $XDG_CONFIG_HOME/spoiler/prefs.toml
	PollEvery  time.Duration // zero uses the config value
	LogFile    string
	LogLevel   string
}

// Run boots the spoiler TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logFile, err := logging.Setup(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", opts.PrefsPath).Msg("preferences unreadable, using defaults")
	}

	client, err := transmission.NewClient(transmission.Options{
		URL:      cfg.RPC.URL,
		Username: cfg.RPC.Username,
		Password: cfg.RPC.Password,
	})
	if err != nil {
		return fmt.Errorf("init transmission client: %w", err)
	}

	store := state.NewStore(userPrefs.Sort())

	log.Info().
		Str("rpc", cfg.RPC.URL).
		Dur("poll", cfg.PollInterval).
		Str("torrent_dir", cfg.TorrentDir).
		Msg("starting spoiler")

	// Populate the store before the first frame; failures are recorded and the
	// UI starts anyway.
	initCtx, cancel := context.WithTimeout(ctx, initialFetchTimeout)
	_ = refresh(initCtx, store, client)
	cancel()

	StartPoller(ctx, store, client, cfg.PollInterval)

	uiOpts := ui.Options{
		Context:   ctx,
		Gateway:   client,
		Store:     store,
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}
	err = ui.Run(uiOpts)
	log.Info().Err(err).Msg("spoiler exiting")
	return err
}
