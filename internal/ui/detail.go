package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/spoiler/internal/nav"
	"github.com/five82/spoiler/internal/state"
	"github.com/five82/spoiler/internal/transmission"
	"github.com/five82/spoiler/internal/tree"
)

// renderDetail renders the job detail screen: a tab bar over the overview or
// the file tree.
func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles()
	job, ok := m.detailJob()
	if !ok {
		msg := styles.MutedText.Background(lipgloss.Color(m.theme.FocusBg)).
			Render(fmt.Sprintf("Job #%d no longer exists. Press esc to go back.", m.detailJobID))
		return m.renderTitledBox("Job", msg, width, height, true)
	}

	innerWidth := width - 2
	bodyHeight := max(height-4, 1) // borders, tab bar, spacer

	var body []string
	switch m.detailTab {
	case tabFiles:
		body = m.renderFiles(job, innerWidth, bodyHeight)
	default:
		body = m.renderOverview(job, innerWidth)
	}

	lines := append([]string{m.renderTabBar(innerWidth), ""}, body...)
	return m.renderTitledBox(job.Name, strings.Join(lines, "\n"), width, height, true)
}

func (m Model) renderTabBar(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	focus := m.nav.CurrentFocus()

	tabs := make([]string, 0, tabCount)
	for t := detailTab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		switch {
		case t == m.detailTab && focus == nav.FocusTabs:
			tabs = append(tabs, styles.Selected.Render(label))
		case t == m.detailTab:
			tabs = append(tabs, bg.Render(label, styles.AccentText.Bold(true)))
		default:
			tabs = append(tabs, bg.Render(label, styles.MutedText))
		}
	}
	return bg.FillLine(bg.Join(tabs, " │ "), width)
}

// renderOverview lists the job's fields as label/value rows.
func (m Model) renderOverview(job transmission.Torrent, width int) []string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	const labelWidth = 12

	type field struct {
		label string
		value string
		style lipgloss.Style
	}
	status := job.Status.String()
	statusStyle := styles.StatusText(statusKey(job))
	fields := []field{
		{"ID", fmt.Sprintf("%d", job.ID), styles.Text},
		{"Status", status, statusStyle},
		{"Progress", fmt.Sprintf("%s of %s", state.FormatPercent(job.PercentDone), state.FormatBytes(job.SizeWhenDone)), styles.Text},
		{"Remaining", state.FormatBytes(job.LeftUntilDone), styles.Text},
		{"ETA", state.FormatETA(job.ETA), styles.Text},
		{"Download", state.FormatRate(job.RateDownload), styles.Text},
		{"Upload", state.FormatRate(job.RateUpload), styles.Text},
		{"Ratio", state.FormatRatio(job.UploadRatio), styles.Text},
		{"Peers", fmt.Sprintf("%d", job.PeersConnected), styles.Text},
		{"Location", job.DownloadDir, styles.Text},
		{"Files", fmt.Sprintf("%d", len(job.Files)), styles.Text},
		{"Added", state.Cell(job, state.SortAddedDate), styles.Text},
		{"Finished", state.Cell(job, state.SortDoneDate), styles.Text},
	}
	if job.Error != 0 && job.ErrorString != "" {
		fields = append(fields, field{"Error", job.ErrorString, styles.DangerText})
	}

	valueWidth := max(width-labelWidth-1, 1)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		value := f.value
		if f.label == "Location" {
			value = truncateMiddle(value, valueWidth)
		} else {
			value = truncate(value, valueWidth)
		}
		lines = append(lines, bg.FillLine(
			bg.Cell(f.label, labelWidth, styles.MutedText)+bg.Space()+bg.Render(value, f.style),
			width))
	}
	return lines
}

// renderFiles renders the visible rows of the file tree, scrolled so the
// selection stays on screen.
func (m Model) renderFiles(job transmission.Torrent, width, height int) []string {
	styles := m.theme.Styles()
	rows := m.files.Visible()
	if len(rows) == 0 {
		return []string{styles.MutedText.Render("No files")}
	}

	manifest := job.Manifest()
	focused := m.nav.CurrentFocus() == nav.FocusFileTree
	selected := m.files.SelectedIndex()

	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(start+height, len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderFileRow(rows[i], manifest, width, focused && i == selected))
	}
	return lines
}

const fileInfoWidth = 20

func (m Model) renderFileRow(row tree.Row, manifest []transmission.JobFile, width int, selected bool) string {
	styles := m.theme.Styles()
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	node := row.Node
	marker := "  "
	if node.IsDir() {
		marker = ternary(row.Open, "▾ ", "▸ ")
	}
	name := strings.Repeat("  ", row.Depth) + marker + node.Name

	nameStyle := styles.Text
	info := ""
	infoStyle := styles.MutedText
	switch {
	case node.Unreadable:
		nameStyle = styles.WarningText
		info = "unreadable"
		infoStyle = styles.DangerText
	case node.FileIndex >= 0 && node.FileIndex < len(manifest):
		f := manifest[node.FileIndex]
		info = fileInfo(f)
		if !f.Wanted {
			infoStyle = styles.FaintText
		}
		if node.Missing {
			nameStyle = styles.FaintText
		}
	case node.IsDir():
		nameStyle = styles.AccentText
	}
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, infoStyle = sel, sel
	}

	nameWidth := max(width-fileInfoWidth-1, 1)
	return bg.FillLine(
		bg.Cell(name, nameWidth, nameStyle)+bg.Space()+bg.Render(padLeft(info, fileInfoWidth), infoStyle),
		width)
}

// fileInfo summarises a manifest file: completion and priority, or "skip"
// for files that are not wanted.
func fileInfo(f transmission.JobFile) string {
	if !f.Wanted {
		return "skip"
	}
	pct := "0%"
	if f.Size > 0 {
		pct = state.FormatPercent(float64(f.Completed) / float64(f.Size))
	}
	return fmt.Sprintf("%s  %-6s", pct, f.Priority.String())
}
