package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/spoiler/internal/state"
)

// columnWidths are the fixed widths of every job list column except name,
// which takes the remaining space.
var columnWidths = map[state.SortKey]int{
	state.SortID:           5,
	state.SortStatus:       15,
	state.SortProgress:     7,
	state.SortETA:          8,
	state.SortRateDownload: 11,
	state.SortRateUpload:   11,
	state.SortRatio:        6,
	state.SortSize:         10,
	state.SortDoneDate:     15,
	state.SortAddedDate:    15,
}

// leftAligned lists the text columns; the rest are numbers and right aligned.
var leftAligned = map[state.SortKey]bool{
	state.SortName:   true,
	state.SortStatus: true,
}

const columnGap = 1

// layoutColumns returns the width of each visible column for a list of the
// given inner width. The name column absorbs the slack.
func layoutColumns(fields []state.SortKey, width int) []int {
	widths := make([]int, len(fields))
	nameIdx := -1
	used := 0
	for i, f := range fields {
		if f == state.SortName {
			nameIdx = i
			continue
		}
		widths[i] = columnWidths[f]
		used += widths[i]
	}
	used += columnGap * max(len(fields)-1, 0)
	if nameIdx >= 0 {
		widths[nameIdx] = max(width-used, LayoutMinNameWidth)
	}
	return widths
}

// renderJobList renders the job list in a titled box.
func (m Model) renderJobList(width, height int) string {
	styles := m.theme.Styles()
	title := fmt.Sprintf("Jobs (%d)", len(m.snapshot.Jobs))

	if len(m.snapshot.Jobs) == 0 {
		msg := "No jobs"
		if m.snapshot.IsOffline() {
			msg = "Transmission is unreachable"
		}
		empty := lipgloss.Place(width-2, max(height-2, 1), lipgloss.Center, lipgloss.Center,
			styles.MutedText.Background(lipgloss.Color(m.theme.FocusBg)).Render(msg),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))
		return m.renderTitledBox(title, empty, width, height, true)
	}

	innerWidth := width - 2
	fields := m.columns.Visible()
	widths := layoutColumns(fields, innerWidth)

	lines := []string{m.renderListHeader(fields, widths, innerWidth)}

	rows := state.Rows(m.snapshot.Jobs, m.columns)
	visibleRows := max(height-3, 1) // borders and header
	start := 0
	if m.selectedRow >= visibleRows {
		start = m.selectedRow - visibleRows + 1
	}
	end := min(start+visibleRows, len(rows))

	for i := start; i < end; i++ {
		lines = append(lines, m.renderListRow(i, rows[i], fields, widths, innerWidth))
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

func (m Model) renderListHeader(fields []state.SortKey, widths []int, width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	sorted := m.snapshot.Sort

	cells := make([]string, len(fields))
	for i, f := range fields {
		label := f.Title()
		if f == sorted.Key {
			label += " " + sortArrow(sorted.Desc)
		}
		cells[i] = bg.Render(alignCell(label, widths[i], leftAligned[f]), styles.AccentText.Bold(true))
	}
	return bg.FillLine(bg.Join(cells, strings.Repeat(" ", columnGap)), width)
}

func (m Model) renderListRow(index int, row state.Row, fields []state.SortKey, widths []int, width int) string {
	styles := m.theme.Styles()
	job := m.snapshot.Jobs[index]
	selected := index == m.selectedRow

	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	cells := make([]string, len(fields))
	for i, f := range fields {
		style := styles.Text
		switch {
		case selected:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		case f == state.SortStatus:
			style = styles.StatusText(statusKey(job))
		case f != state.SortName:
			style = styles.MutedText
		}
		cells[i] = bg.Render(alignCell(row.Cells[i], widths[i], leftAligned[f]), style)
	}
	return bg.FillLine(bg.Join(cells, strings.Repeat(" ", columnGap)), width)
}

// alignCell fits text into width cells, padding on the left for numbers.
func alignCell(text string, width int, left bool) string {
	text = truncate(text, width)
	if left {
		return padRight(text, width)
	}
	return padLeft(text, width)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Focused boxes use the focus border and
// background colors.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := ansi.StringWidth(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
