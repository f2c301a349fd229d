// Package ui implements the spoiler dashboard on Bubble Tea.
//
// # Architecture Overview
//
// Model is the single tea.Model. It never talks to the daemon while
// rendering: a UI tick copies the latest state.Snapshot out of the store,
// and commands (pause, rename, add, remove, priority) run as tea.Cmd values
// whose results come back as commandResultMsg. Results are logged with
// zerolog and shown in the status line for a few seconds; their effect shows
// up on the next poll.
//
// # Navigation
//
// Screens and focus live on a nav.Stack:
//
//   - Job list (List focus): cursor over the sorted jobs, selection kept by id
//   - Job detail (Tabs focus): Overview and Files tabs
//   - Job detail (FileTree focus): expandable file tree of the job
//
// Overlays (help, rename, add, remove, column picker) sit on top of the
// stack in a nav.Overlay. While one is open it receives every key except
// ctrl+c, so typing into the rename box never triggers job shortcuts.
//
// # File Tree
//
// The Files tab is built with tree.Build from the job's download directory
// and manifest. It is rebuilt when the job, its directory or its manifest
// changes (tracked with an xxhash fingerprint). Expanded directories are
// remembered by path across rebuilds and forgotten when another job opens.
//
// # Themes
//
// Nightfox, Kanagawa and Slate are available; T cycles them. Colors set in
// the [colors] config section override the selection, normal text and
// column picker colors of every theme. Theme, sort and column layout are
// saved to the preferences file whenever they change.
package ui
