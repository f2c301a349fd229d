package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed. Wide runes and escape sequences are measured by display width.
func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return ansi.Truncate(value, 1, "")
	}
	return ansi.Truncate(value, limit, ellipsis)
}

// truncateMiddle shortens a string by removing characters from the middle,
// keeping more of the end (usually the file name) than the start.
func truncateMiddle(value string, limit int) string {
	width := ansi.StringWidth(value)
	if limit <= 0 {
		return ""
	}
	if width <= limit {
		return value
	}
	if limit <= 3 {
		return truncate(value, limit)
	}
	keep := limit - 1
	tail := keep * 2 / 3
	head := keep - tail
	return ansi.Truncate(value, head, "") + ellipsis + ansi.TruncateLeft(value, width-tail, "")
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeft right-aligns a string within the given cell width.
func padLeft(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
