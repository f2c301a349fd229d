package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/five82/spoiler/internal/state"
	"github.com/five82/spoiler/internal/transmission"
)

const defaultPollInterval = time.Second

// fetcher is the read side of transmission.Gateway the poller needs.
type fetcher interface {
	Torrents(ctx context.Context) ([]transmission.Torrent, error)
	SessionStats(ctx context.Context) (transmission.SessionStats, error)
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence until ctx is cancelled. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client fetcher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			_ = refresh(ctx, store, client)
		}
	}()
}

// refresh fetches torrents and session stats concurrently, orders the
// torrents with the store's current sort and publishes both at once. On
// failure the store keeps its last good snapshot; the next tick tries again.
func refresh(ctx context.Context, store *state.Store, client fetcher) error {
	sort := store.Sort()

	var (
		jobs  []transmission.Torrent
		stats transmission.SessionStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := client.Torrents(gctx)
		if err != nil {
			return fmt.Errorf("fetch torrents: %w", err)
		}
		jobs = t
		return nil
	})
	g.Go(func() error {
		s, err := client.SessionStats(gctx)
		if err != nil {
			return fmt.Errorf("fetch session stats: %w", err)
		}
		stats = s
		return nil
	})

	err := g.Wait()
	if err == nil {
		jobs, err = state.SortJobs(jobs, sort)
	}
	if ctx.Err() != nil {
		// Shutting down; a cancelled poll is not a daemon failure.
		return ctx.Err()
	}

	prevFailures := store.Snapshot().ConsecutiveFailures
	if err != nil {
		store.Update(nil, nil, sort, err)
		log.Warn().Err(err).Int("consecutive_failures", prevFailures+1).Msg("poll failed")
		return err
	}

	store.Update(jobs, &stats, sort, nil)
	if prevFailures > 0 {
		log.Info().Int("after_failures", prevFailures).Msg("daemon reachable again")
	}
	log.Debug().Int("torrents", len(jobs)).Stringer("sort", sort.Key).Bool("desc", sort.Desc).Msg("poll ok")
	return nil
}
