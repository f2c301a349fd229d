package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops its
	// sparklines and long labels.
	LayoutCompactWidth = 100

	// LayoutMinNameWidth is the narrowest the job list name column gets.
	LayoutMinNameWidth = 12
)

// Chrome rows around the main content: header, command bar and status line.
const chromeRows = 3

// Overlay widths.
const (
	helpWidth    = 48
	overlayWidth = 60
)

// rateHistoryLen is the number of transfer rate samples kept for sparklines.
const rateHistoryLen = 60

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = 200 * time.Millisecond

	// statusLineTTL is how long a command result stays in the status line.
	statusLineTTL = 5 * time.Second
)
