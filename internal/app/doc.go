// Package app is the composition root of spoiler.
//
// # Overview
//
// Run wires configuration, logging, preferences, the Transmission client,
// the shared state.Store, the background poller and the UI together, then
// blocks in the UI until the user quits or the context is cancelled.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config.toml, apply flag overrides
//	       ├─────> logging.Setup()        zerolog to a rotated file
//	       ├─────> prefs.Load()           Theme, sort, column layout
//	       ├─────> transmission.NewClient()
//	       ├─────> state.NewStore()       Seeded with the saved sort
//	       ├─────> refresh()              One bounded fetch before the first frame
//	       ├─────> StartPoller()          Background updates
//	       └─────> ui.Run()               TUI (blocks)
//
// A daemon that is down at startup is not fatal: the failed fetch is
// recorded in the store and the UI opens showing the connection state.
//
// # Polling
//
// StartPoller refreshes on every tick of the poll interval (1s by default).
// A refresh fetches the torrent list and the session stats concurrently,
// sorts the jobs with the sort key current at that moment, and publishes
// the result with store.Update. Failures keep the last good job list and
// bump the failure counter; after two in a row the UI shows the daemon as
// offline. Nothing is retried outside the normal cadence.
//
// The UI reads snapshots at its own tick rate, so a slow daemon never blocks
// rendering or input.
package app
