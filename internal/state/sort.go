package state

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/five82/spoiler/internal/transmission"
)

// SortKey names a job field usable as a sort key and as a column.
type SortKey int

const (
	SortName SortKey = iota
	SortID
	SortStatus
	SortProgress
	SortETA
	SortRateDownload
	SortRateUpload
	SortRatio
	SortSize
	SortDoneDate
	SortAddedDate

	sortKeyCount
)

var sortKeyNames = [sortKeyCount]string{
	SortName:         "name",
	SortID:           "id",
	SortStatus:       "status",
	SortProgress:     "progress",
	SortETA:          "eta",
	SortRateDownload: "download",
	SortRateUpload:   "upload",
	SortRatio:        "ratio",
	SortSize:         "size",
	SortDoneDate:     "done",
	SortAddedDate:    "added",
}

var sortKeyTitles = [sortKeyCount]string{
	SortName:         "Name",
	SortID:           "ID",
	SortStatus:       "Status",
	SortProgress:     "Done",
	SortETA:          "ETA",
	SortRateDownload: "Down",
	SortRateUpload:   "Up",
	SortRatio:        "Ratio",
	SortSize:         "Size",
	SortDoneDate:     "Finished",
	SortAddedDate:    "Added",
}

// SortKeys returns every key in declaration order.
func SortKeys() []SortKey {
	keys := make([]SortKey, 0, sortKeyCount)
	for k := SortKey(0); k < sortKeyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Valid reports whether k is one of the declared keys.
func (k SortKey) Valid() bool {
	return k >= 0 && k < sortKeyCount
}

// String returns the persisted name of the key.
func (k SortKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("sortkey(%d)", int(k))
	}
	return sortKeyNames[k]
}

// Title returns the column header for the key.
func (k SortKey) Title() string {
	if !k.Valid() {
		return "?"
	}
	return sortKeyTitles[k]
}

// ParseSortKey maps a persisted name back to its key.
func ParseSortKey(name string) (SortKey, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range sortKeyNames {
		if n == name {
			return SortKey(k), true
		}
	}
	return SortName, false
}

// Sort is a key plus direction.
type Sort struct {
	Key  SortKey
	Desc bool
}

// ErrNaN marks a float field that cannot be ordered.
var ErrNaN = errors.New("value is NaN")

// SortJobs returns a stably sorted copy of jobs. Equal keys keep their input
// order; descending reverses the ascending result. A NaN in the sorted float
// field is reported as an error instead of being ordered.
func SortJobs(jobs []transmission.Torrent, s Sort) ([]transmission.Torrent, error) {
	if !s.Key.Valid() {
		return nil, fmt.Errorf("sort: unknown key %d", int(s.Key))
	}
	if err := checkFloats(jobs, s.Key); err != nil {
		return nil, err
	}

	out := slices.Clone(jobs)
	compare := comparator(s.Key)
	slices.SortStableFunc(out, compare)
	if s.Desc {
		slices.Reverse(out)
	}
	return out, nil
}

func checkFloats(jobs []transmission.Torrent, key SortKey) error {
	var field func(transmission.Torrent) float64
	switch key {
	case SortProgress:
		field = func(t transmission.Torrent) float64 { return t.PercentDone }
	case SortRatio:
		field = func(t transmission.Torrent) float64 { return t.UploadRatio }
	default:
		return nil
	}
	for _, job := range jobs {
		if math.IsNaN(field(job)) {
			return fmt.Errorf("sort by %s: job %d: %w", key, job.ID, ErrNaN)
		}
	}
	return nil
}

func comparator(key SortKey) func(a, b transmission.Torrent) int {
	switch key {
	case SortID:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.ID, b.ID) }
	case SortStatus:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.Status, b.Status) }
	case SortProgress:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.PercentDone, b.PercentDone) }
	case SortETA:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.ETA, b.ETA) }
	case SortRateDownload:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.RateDownload, b.RateDownload) }
	case SortRateUpload:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.RateUpload, b.RateUpload) }
	case SortRatio:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.UploadRatio, b.UploadRatio) }
	case SortSize:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.TotalSize, b.TotalSize) }
	case SortDoneDate:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.DoneDate, b.DoneDate) }
	case SortAddedDate:
		return func(a, b transmission.Torrent) int { return cmp.Compare(a.AddedDate, b.AddedDate) }
	default:
		// byte-wise, no case folding
		return func(a, b transmission.Torrent) int { return strings.Compare(a.Name, b.Name) }
	}
}
