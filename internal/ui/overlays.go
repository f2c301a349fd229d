package ui

import (
	"fmt"
	"strings"

	"github.com/five82/spoiler/internal/nav"
)

// addListRows is the number of candidates shown at once in the add picker.
const addListRows = 12

// renderOverlay renders the open overlay centered over the screen.
func (m Model) renderOverlay() string {
	switch m.overlay.Widget() {
	case nav.WidgetHelp:
		return m.renderHelp()
	case nav.WidgetRenameInput:
		return m.renderRename()
	case nav.WidgetAddJob:
		return m.renderAddJob()
	case nav.WidgetAddJobConfirm:
		return m.renderAddConfirm()
	case nav.WidgetRemoveJobConfirm:
		return m.renderRemoveConfirm()
	case nav.WidgetColumnPicker:
		return m.renderColumnPicker()
	}
	return m.renderMain()
}

func (m Model) overlayTitle(title string) string {
	styles := m.theme.Styles()
	return styles.Text.Bold(true).Render(title) + "\n" +
		styles.FaintText.Render(strings.Repeat("─", 30)) + "\n\n"
}

func (m Model) overlayHint(hint string) string {
	return "\n\n" + m.theme.Styles().FaintText.Render(hint)
}

func (m Model) renderRename() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.overlayTitle("Rename"))
	b.WriteString(styles.MutedText.Render("Current: "))
	b.WriteString(styles.Text.Render(truncateMiddle(m.renameFrom, overlayWidth-15)))
	b.WriteString("\n\n")
	b.WriteString(m.renameInput.View())
	b.WriteString(m.overlayHint("enter rename · esc cancel"))
	return m.placeModal(b.String(), overlayWidth)
}

func (m Model) renderAddJob() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.overlayTitle("Add torrent"))
	b.WriteString(styles.MutedText.Render(truncateMiddle(m.config.TorrentDir, overlayWidth-6)))
	b.WriteString("\n\n")

	if len(m.candidates) == 0 {
		b.WriteString(styles.WarningText.Render("No .torrent files found"))
		b.WriteString(m.overlayHint("esc close"))
		return m.placeModal(b.String(), overlayWidth)
	}

	start := 0
	if m.candidateRow >= addListRows {
		start = m.candidateRow - addListRows + 1
	}
	end := min(start+addListRows, len(m.candidates))
	for i := start; i < end; i++ {
		name := truncate(m.candidates[i].Name, overlayWidth-8)
		if i == m.candidateRow {
			b.WriteString(styles.Selected.Render("▸ " + padRight(name, overlayWidth-8)))
		} else {
			b.WriteString(styles.Text.Render("  " + name))
		}
		b.WriteString("\n")
	}
	if len(m.candidates) > addListRows {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d/%d", m.candidateRow+1, len(m.candidates))))
	}
	b.WriteString(m.overlayHint("j/k choose · enter/l next · esc cancel"))
	return m.placeModal(b.String(), overlayWidth)
}

func (m Model) renderAddConfirm() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.overlayTitle("Add torrent"))
	if m.candidateRow < len(m.candidates) {
		b.WriteString(styles.Text.Render(truncateMiddle(m.candidates[m.candidateRow].Name, overlayWidth-6)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.checkbox(m.addPaused, "Start paused"))
	b.WriteString(m.overlayHint("p toggle · enter add · h back · esc cancel"))
	return m.placeModal(b.String(), overlayWidth)
}

func (m Model) renderRemoveConfirm() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.overlayTitle("Remove job"))
	b.WriteString(styles.Text.Render(truncateMiddle(m.removeName, overlayWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(m.checkbox(m.removeData, "Also delete downloaded data"))
	if m.removeData {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render("Files will be deleted from disk"))
	}
	b.WriteString(m.overlayHint("d toggle · enter remove · esc cancel"))
	return m.placeModal(b.String(), overlayWidth)
}

func (m Model) checkbox(checked bool, label string) string {
	styles := m.theme.Styles()
	box := ternary(checked, "[x] ", "[ ] ")
	style := ternaryStyle(checked, styles.AccentText, styles.MutedText)
	return style.Render(box) + styles.Text.Render(label)
}

// renderColumnPicker lists every column with its visibility. The sort key is
// marked with its direction.
func (m Model) renderColumnPicker() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(m.overlayTitle("Columns"))

	sort := m.snapshot.Sort
	if m.store != nil {
		sort = m.store.Sort()
	}
	rowWidth := 30
	for i, col := range m.columns {
		label := col.Field.Title()
		if col.Field == sort.Key {
			label += " " + sortArrow(sort.Desc)
		}
		line := padRight(ternary(col.Visible, "[x] ", "[ ] ")+label, rowWidth)
		switch {
		case i == m.pickerRow:
			b.WriteString(styles.Selected.Render("▸ " + line))
		case col.Visible:
			b.WriteString("  " + styles.ColumnShow.Render(line))
		default:
			b.WriteString("  " + styles.ColumnHide.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.overlayHint("space show/hide · K/J move · s sort · esc close"))
	return m.placeModal(b.String(), helpWidth)
}
