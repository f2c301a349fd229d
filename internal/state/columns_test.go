package state

import (
	"slices"
	"testing"

	"github.com/five82/spoiler/internal/transmission"
)

func TestDefaultColumns_ContainEveryFieldOnce(t *testing.T) {
	cols := DefaultColumns()
	if len(cols) != len(SortKeys()) {
		t.Fatalf("default columns = %d, want %d", len(cols), len(SortKeys()))
	}
	if !slices.Equal(cols.Normalize(), cols) {
		t.Fatalf("default columns are not normalized: %#v", cols)
	}
}

func TestColumns_NormalizeRepairs(t *testing.T) {
	in := Columns{
		{Field: SortSize, Visible: true},
		{Field: SortKey(42), Visible: true},
		{Field: SortSize, Visible: false},
		{Field: SortName, Visible: true},
	}
	got := in.Normalize()
	if len(got) != len(SortKeys()) {
		t.Fatalf("normalized len = %d, want %d", len(got), len(SortKeys()))
	}
	if got[0] != (Column{Field: SortSize, Visible: true}) || got[1] != (Column{Field: SortName, Visible: true}) {
		t.Fatalf("leading columns = %#v", got[:2])
	}
	seen := map[SortKey]bool{}
	for _, c := range got {
		if seen[c.Field] {
			t.Fatalf("duplicate field %s", c.Field)
		}
		seen[c.Field] = true
	}
	if got[2].Visible {
		t.Fatalf("appended column should be hidden: %#v", got[2])
	}
}

func TestColumns_ToggleAndSwap(t *testing.T) {
	cols := DefaultColumns()

	toggled := cols.Toggle(0)
	if toggled[0].Visible == cols[0].Visible {
		t.Fatal("Toggle did not flip visibility")
	}
	if cols[0].Visible != DefaultColumns()[0].Visible {
		t.Fatal("Toggle mutated the receiver")
	}

	swapped := cols.Swap(0, 1)
	if swapped[0].Field != cols[1].Field || swapped[1].Field != cols[0].Field {
		t.Fatalf("Swap result = %#v", swapped[:2])
	}
	if !slices.Equal(cols.Swap(0, len(cols)), cols) || !slices.Equal(cols.Swap(-1, 0), cols) {
		t.Fatal("out-of-range Swap should be a no-op")
	}
	if !slices.Equal(cols.Toggle(99), cols) {
		t.Fatal("out-of-range Toggle should be a no-op")
	}
}

func TestRows_FollowVisibleColumns(t *testing.T) {
	cols := Columns{
		{Field: SortID, Visible: true},
		{Field: SortName, Visible: false},
		{Field: SortProgress, Visible: true},
	}.Normalize()
	jobs := []transmission.Torrent{{ID: 7, Name: "x", PercentDone: 0.5}}

	headers := Headers(cols)
	if !slices.Equal(headers, []string{"ID", "Done"}) {
		t.Fatalf("headers = %v", headers)
	}
	rows := Rows(jobs, cols)
	if len(rows) != 1 || rows[0].ID != 7 {
		t.Fatalf("rows = %#v", rows)
	}
	if !slices.Equal(rows[0].Cells, []string{"7", "50.0%"}) {
		t.Fatalf("cells = %v", rows[0].Cells)
	}
	if got := Rows(nil, cols); len(got) != 0 {
		t.Fatalf("rows for empty jobs = %#v", got)
	}
}

func TestFormatters(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{FormatETA(transmission.ETANotAvailable), "-"},
		{FormatETA(transmission.ETAUnknown), "?"},
		{FormatETA(42), "42s"},
		{FormatETA(125), "2m05s"},
		{FormatETA(3*3600 + 60), "3h01m"},
		{FormatETA(5 * 86400), "5d"},
		{FormatRatio(transmission.RatioInfinite), "inf"},
		{FormatRatio(transmission.RatioNotAvailable), "-"},
		{FormatRatio(1.234), "1.23"},
		{FormatRate(0), "-"},
		{FormatRate(2000), "2.0 kB/s"},
		{FormatPercent(1), "100.0%"},
		{FormatBytes(1_500_000), "1.5 MB"},
		{FormatBytes(-5), "0 B"},
		{Cell(transmission.Torrent{TotalSize: 1_500_000}, SortSize), "1.5 MB"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("got %q, want %q", tc.got, tc.want)
		}
	}
}
