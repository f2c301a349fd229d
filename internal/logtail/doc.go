// Package logtail reads the end of spoiler's own log file.
//
// The log is written by zerolog as one JSON object per line. Read keeps a
// ring buffer of the last N lines so large files are never held in memory,
// Filter drops entries below a level, and Render prints entries either raw
// or through zerolog.ConsoleWriter. The `spoiler log` command is built on
// these three calls.
package logtail
