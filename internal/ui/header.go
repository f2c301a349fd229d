package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/spoiler/internal/nav"
	"github.com/five82/spoiler/internal/state"
	"github.com/five82/spoiler/internal/transmission"
)

const logo = "spoiler"

// renderHeader renders the status bar: connection state, job counts,
// transfer rates and the last refresh time.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render(logo, styles.Logo)}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts,
			bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText),
			bg.Render("Retrying...", styles.WarningText.Bold(true)))
	case m.lastUpdated.IsZero():
		parts = append(parts, bg.Render("Connecting to Transmission...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
	}

	parts = append(parts,
		bg.Render("Jobs:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Jobs)), styles.Text))

	if m.snapshot.HasStats {
		stats := m.snapshot.Stats
		if !compact {
			parts = append(parts,
				bg.Render("Active:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", stats.ActiveTorrentCount), styles.InfoText))
		}
		parts = append(parts, m.formatRate("↓", stats.DownloadSpeed, m.rates.down, compact, styles, bg))
		parts = append(parts, m.formatRate("↑", stats.UploadSpeed, m.rates.up, compact, styles, bg))
	}

	if m.store != nil && m.store.Sort() != m.snapshot.Sort {
		parts = append(parts, bg.Render("sorting...", styles.WarningText))
	}

	if timeStr := m.formatTimestamp(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	// A single failed refresh shows here before the offline indicator trips.
	if m.snapshot.LastError != nil && !m.snapshot.IsOffline() {
		maxErr := ternaryInt(compact, 30, 60)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) formatRate(arrow string, rate int64, history []int64, compact bool, styles Styles, bg BgStyle) string {
	out := bg.Render(arrow, styles.AccentText) + bg.Space() + bg.Render(state.FormatRate(rate), styles.Text)
	if !compact {
		if line := sparkline(history, 16); line != "" {
			out += bg.Space() + bg.Render(line, styles.InfoText)
		}
	}
	return out
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}

	timeSince := time.Since(m.lastUpdated)
	timeStr := m.lastUpdated.Format("15:04:05")

	switch {
	case timeSince < time.Minute:
		timeStr += " (now)"
	case timeSince < time.Hour:
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	case timeSince < 24*time.Hour:
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}
	return timeStr
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	var rpcErr *transmission.RPCError
	if errors.As(err, &rpcErr) {
		return "RPC ERROR"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "status 401"):
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current focus.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.nav.CurrentFocus() {
	case nav.FocusTabs:
		commands = []cmd{
			{"h/l", "Tabs"},
			{"j", "Files"},
			{"esc", "Back"},
		}
	case nav.FocusFileTree:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"h/l", "Collapse/Expand"},
			{"+/-", "Priority"},
			{"esc", "Tabs"},
		}
	default:
		pause := "Pause"
		if job, ok := m.selectedJob(); ok && job.Paused() {
			pause = "Resume"
		}
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"p", pause},
			{"r", "Rename"},
			{"a", "Add"},
			{"d", "Remove"},
			{"c", "Columns"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatusLine shows the latest command result, or the sort summary, in
// the footer bar.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.status.text != "" && m.status.err:
		content = bg.Render(truncate(m.status.text, m.width-2), styles.DangerText)
	case m.status.text != "":
		content = bg.Render(truncate(m.status.text, m.width-2), styles.SuccessText)
	default:
		s := m.snapshot.Sort
		content = bg.Render("Sort:", styles.FaintText) + bg.Space() +
			bg.Render(s.Key.Title()+" "+sortArrow(s.Desc), styles.MutedText)
	}
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(content)
}

func ternaryInt(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
