package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/spoiler/internal/transmission"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Jobs                []transmission.Torrent
	Stats               transmission.SessionStats
	HasStats            bool
	Sort                Sort // order Jobs were published in
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the daemon has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Job returns the job with the given id.
func (s Snapshot) Job(id int64) (transmission.Torrent, bool) {
	for _, job := range s.Jobs {
		if job.ID == id {
			return job, true
		}
	}
	return transmission.Torrent{}, false
}

// Store coordinates concurrent updates to the snapshot. The poller is the only
// writer of snapshots; the UI reads snapshots and writes the sort used by the
// next refresh.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	sort     Sort
}

// NewStore returns a Store whose first refresh is ordered by sort.
func NewStore(sort Sort) *Store {
	return &Store{sort: sort, snapshot: Snapshot{Sort: sort}}
}

// Update replaces the stored snapshot with jobs already ordered by applied.
// When err is non-nil the previous data is kept but the error is recorded for
// visibility.
func (s *Store) Update(jobs []transmission.Torrent, stats *transmission.SessionStats, applied Sort, err error) {
	next := cloneJobs(jobs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	snap := Snapshot{
		Jobs:        next,
		Sort:        applied,
		LastUpdated: time.Now(),
	}
	if stats != nil {
		snap.Stats = *stats
		snap.HasStats = true
	}
	s.snapshot = snap
}

// Snapshot returns a copy of the current snapshot. Job manifests are shared
// with the store and must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Jobs = cloneJobs(s.snapshot.Jobs)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// SetSort changes the order applied by the next refresh. The published
// snapshot keeps the order it was built with.
func (s *Store) SetSort(sort Sort) {
	s.mu.Lock()
	s.sort = sort
	s.mu.Unlock()
}

// Sort returns the order the next refresh will apply.
func (s *Store) Sort() Sort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

func cloneJobs(jobs []transmission.Torrent) []transmission.Torrent {
	if len(jobs) == 0 {
		return nil
	}
	dup := make([]transmission.Torrent, len(jobs))
	copy(dup, jobs)
	return dup
}
