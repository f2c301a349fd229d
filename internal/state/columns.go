package state

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/spoiler/internal/transmission"
)

// Column is one entry of the job list layout.
type Column struct {
	Field   SortKey
	Visible bool
}

// Columns is the ordered job list layout. A valid layout lists every SortKey
// exactly once.
type Columns []Column

// DefaultColumns is the layout used when no preference is stored.
func DefaultColumns() Columns {
	return Columns{
		{Field: SortName, Visible: true},
		{Field: SortStatus, Visible: true},
		{Field: SortProgress, Visible: true},
		{Field: SortSize, Visible: true},
		{Field: SortETA, Visible: true},
		{Field: SortRateDownload, Visible: true},
		{Field: SortRateUpload, Visible: true},
		{Field: SortRatio, Visible: true},
		{Field: SortID, Visible: false},
		{Field: SortAddedDate, Visible: false},
		{Field: SortDoneDate, Visible: false},
	}
}

// Normalize drops unknown and duplicate fields and appends missing ones as
// hidden, so a persisted layout from an older version stays usable.
func (c Columns) Normalize() Columns {
	seen := make(map[SortKey]bool, sortKeyCount)
	out := make(Columns, 0, sortKeyCount)
	for _, col := range c {
		if !col.Field.Valid() || seen[col.Field] {
			continue
		}
		seen[col.Field] = true
		out = append(out, col)
	}
	for _, key := range SortKeys() {
		if !seen[key] {
			out = append(out, Column{Field: key})
		}
	}
	return out
}

// Toggle flips the visibility of the column at i.
func (c Columns) Toggle(i int) Columns {
	if i < 0 || i >= len(c) {
		return c
	}
	out := append(Columns(nil), c...)
	out[i].Visible = !out[i].Visible
	return out
}

// Swap exchanges the columns at i and j. Out-of-range indexes are a no-op.
func (c Columns) Swap(i, j int) Columns {
	if i < 0 || j < 0 || i >= len(c) || j >= len(c) || i == j {
		return c
	}
	out := append(Columns(nil), c...)
	out[i], out[j] = out[j], out[i]
	return out
}

// Visible returns the visible fields in display order.
func (c Columns) Visible() []SortKey {
	var keys []SortKey
	for _, col := range c {
		if col.Visible {
			keys = append(keys, col.Field)
		}
	}
	return keys
}

// Row is one rendered job: its id and one cell per visible column.
type Row struct {
	ID    int64
	Cells []string
}

// Headers returns the titles of the visible columns.
func Headers(c Columns) []string {
	fields := c.Visible()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Title()
	}
	return out
}

// Rows formats jobs for the visible columns, keeping the snapshot order.
func Rows(jobs []transmission.Torrent, c Columns) []Row {
	fields := c.Visible()
	rows := make([]Row, len(jobs))
	for i, job := range jobs {
		cells := make([]string, len(fields))
		for j, f := range fields {
			cells[j] = Cell(job, f)
		}
		rows[i] = Row{ID: job.ID, Cells: cells}
	}
	return rows
}

// Cell formats a single field of job.
func Cell(job transmission.Torrent, field SortKey) string {
	switch field {
	case SortName:
		return job.Name
	case SortID:
		return fmt.Sprintf("%d", job.ID)
	case SortStatus:
		if job.Error != 0 {
			return "Error"
		}
		return job.Status.String()
	case SortProgress:
		return FormatPercent(job.PercentDone)
	case SortETA:
		return FormatETA(job.ETA)
	case SortRateDownload:
		return FormatRate(job.RateDownload)
	case SortRateUpload:
		return FormatRate(job.RateUpload)
	case SortRatio:
		return FormatRatio(job.UploadRatio)
	case SortSize:
		return FormatBytes(job.TotalSize)
	case SortDoneDate:
		return formatDate(job.ParsedDoneDate())
	case SortAddedDate:
		return formatDate(job.ParsedAddedDate())
	default:
		return ""
	}
}

// FormatPercent renders a 0..1 fraction as a percentage.
func FormatPercent(fraction float64) string {
	if math.IsNaN(fraction) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// FormatBytes renders a size in SI units. Negative sizes render as zero.
func FormatBytes(n int64) string {
	return humanize.Bytes(nonNegative(n))
}

// FormatRate renders bytes per second; zero renders as a dash.
func FormatRate(bytesPerSec int64) string {
	if bytesPerSec <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(bytesPerSec)) + "/s"
}

// FormatRatio renders the upload ratio, including the daemon's sentinels.
func FormatRatio(ratio float64) string {
	switch {
	case math.IsNaN(ratio), ratio == transmission.RatioNotAvailable:
		return "-"
	case ratio == transmission.RatioInfinite, math.IsInf(ratio, 1):
		return "inf"
	default:
		return fmt.Sprintf("%.2f", ratio)
	}
}

// FormatETA renders seconds remaining, including the daemon's sentinels.
func FormatETA(seconds int64) string {
	switch {
	case seconds == transmission.ETANotAvailable:
		return "-"
	case seconds == transmission.ETAUnknown, seconds < 0:
		return "?"
	}
	d := time.Duration(seconds) * time.Second
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", seconds)
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
	default:
		return fmt.Sprintf("%dd", seconds/86400)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func nonNegative(n int64) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}
