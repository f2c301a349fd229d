// Package state provides thread-safe state shared between the poller and the UI.
//
// # Overview
//
// The Store holds the latest Snapshot fetched from the Transmission daemon and
// the sort order the next refresh will apply. It is the only value touched by
// both the poller goroutine and the bubbletea event loop.
//
//	Producer (poller):              Consumer (UI):
//	┌─────────────────────┐        ┌─────────────────────┐
//	│ Torrents()          │        │                     │
//	│ SessionStats()      │        │                     │
//	│ SortJobs(store.Sort)│        │ store.SetSort()     │
//	│      ↓              │        │                     │
//	│ store.Update()      │───────→│ store.Snapshot()    │
//	│      ↓              │(mutex) │      ↓              │
//	│ repeat...           │        │ Rows() → render     │
//	└─────────────────────┘        └─────────────────────┘
//
// # Snapshots
//
// A successful Update swaps in a completely new Snapshot, so a reader sees
// either the previous poll or the new one and never a mix of the two. A failed
// Update keeps the last-known-good jobs and stats and only records LastError
// and ConsecutiveFailures. After two consecutive failures IsOffline reports
// true; the UI still renders the retained data.
//
// The lock is held for the swap or the copy only, never across RPC calls or
// sorting.
//
// # Sorting
//
// SortJobs orders a copy of the jobs by one SortKey with a stable sort, so
// jobs with equal keys keep the order the daemon returned them in. Names are
// compared byte-wise. Numbers use cmp.Compare. Descending order reverses the
// ascending result rather than inverting the comparator. A NaN in the float
// field being sorted is returned as an error, which the poller treats like a
// failed fetch.
//
// SetSort only changes what the next refresh applies. The published Snapshot
// carries the Sort it was built with and is never re-sorted in place.
//
// # Columns
//
// Columns is the ordered, per-field visibility layout of the job list. Every
// SortKey appears exactly once; Normalize repairs layouts loaded from disk.
// Rows and Headers derive the rendered cells from a snapshot at draw time.
package state
