package state

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/five82/spoiler/internal/transmission"
)

func ids(jobs []transmission.Torrent) []int64 {
	out := make([]int64, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestSortJobs_StableOnEqualKeys(t *testing.T) {
	jobs := []transmission.Torrent{
		{ID: 1, Status: transmission.StatusSeed},
		{ID: 2, Status: transmission.StatusDownload},
		{ID: 3, Status: transmission.StatusSeed},
		{ID: 4, Status: transmission.StatusDownload},
		{ID: 5, Status: transmission.StatusStopped},
	}

	got, err := SortJobs(jobs, Sort{Key: SortStatus})
	if err != nil {
		t.Fatalf("SortJobs returned error: %v", err)
	}
	want := []int64{5, 2, 4, 1, 3}
	if !slices.Equal(ids(got), want) {
		t.Fatalf("ascending = %v, want %v", ids(got), want)
	}

	desc, err := SortJobs(jobs, Sort{Key: SortStatus, Desc: true})
	if err != nil {
		t.Fatalf("SortJobs returned error: %v", err)
	}
	reversed := slices.Clone(want)
	slices.Reverse(reversed)
	if !slices.Equal(ids(desc), reversed) {
		t.Fatalf("descending = %v, want exact reverse %v", ids(desc), reversed)
	}

	if !slices.Equal(ids(jobs), []int64{1, 2, 3, 4, 5}) {
		t.Fatalf("input mutated: %v", ids(jobs))
	}
}

func TestSortJobs_NamesAreByteWise(t *testing.T) {
	jobs := []transmission.Torrent{
		{ID: 1, Name: "beta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "alpha"},
		{ID: 4, Name: "Beta"},
	}
	got, err := SortJobs(jobs, Sort{Key: SortName})
	if err != nil {
		t.Fatalf("SortJobs returned error: %v", err)
	}
	if want := []int64{2, 4, 3, 1}; !slices.Equal(ids(got), want) {
		t.Fatalf("order = %v, want %v", ids(got), want)
	}
}

func TestSortJobs_EveryKey(t *testing.T) {
	jobs := []transmission.Torrent{
		{ID: 2, Name: "b", PercentDone: 0.9, ETA: 30, RateDownload: 5, RateUpload: 1, UploadRatio: 2, TotalSize: 10, DoneDate: 20, AddedDate: 5, Status: transmission.StatusSeed},
		{ID: 1, Name: "a", PercentDone: 0.1, ETA: 10, RateDownload: 1, RateUpload: 9, UploadRatio: 0.5, TotalSize: 99, DoneDate: 10, AddedDate: 50, Status: transmission.StatusStopped},
	}
	cases := map[SortKey][]int64{
		SortName:         {1, 2},
		SortID:           {1, 2},
		SortStatus:       {1, 2},
		SortProgress:     {1, 2},
		SortETA:          {1, 2},
		SortRateDownload: {1, 2},
		SortRateUpload:   {2, 1},
		SortRatio:        {1, 2},
		SortSize:         {2, 1},
		SortDoneDate:     {1, 2},
		SortAddedDate:    {2, 1},
	}
	for _, key := range SortKeys() {
		want, ok := cases[key]
		if !ok {
			t.Fatalf("no case for key %s", key)
		}
		got, err := SortJobs(jobs, Sort{Key: key})
		if err != nil {
			t.Fatalf("%s: SortJobs returned error: %v", key, err)
		}
		if !slices.Equal(ids(got), want) {
			t.Fatalf("%s: order = %v, want %v", key, ids(got), want)
		}
	}
}

func TestSortJobs_NaNIsAnError(t *testing.T) {
	jobs := []transmission.Torrent{{ID: 1, UploadRatio: 1}, {ID: 2, UploadRatio: math.NaN()}}

	if _, err := SortJobs(jobs, Sort{Key: SortRatio}); !errors.Is(err, ErrNaN) {
		t.Fatalf("ratio sort error = %v, want ErrNaN", err)
	}
	// Other keys do not inspect the ratio.
	if _, err := SortJobs(jobs, Sort{Key: SortName}); err != nil {
		t.Fatalf("name sort error = %v, want nil", err)
	}
}

func TestSortJobs_EmptyAndUnknownKey(t *testing.T) {
	got, err := SortJobs(nil, Sort{Key: SortETA, Desc: true})
	if err != nil || len(got) != 0 {
		t.Fatalf("empty sort = %v, %v", got, err)
	}
	if _, err := SortJobs(nil, Sort{Key: SortKey(99)}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseSortKey_RoundTrips(t *testing.T) {
	for _, key := range SortKeys() {
		got, ok := ParseSortKey(" " + key.String() + " ")
		if !ok || got != key {
			t.Fatalf("ParseSortKey(%q) = %v, %v", key.String(), got, ok)
		}
	}
	if _, ok := ParseSortKey("bogus"); ok {
		t.Fatal("ParseSortKey accepted unknown name")
	}
}
