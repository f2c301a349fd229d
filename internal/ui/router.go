package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/spoiler/internal/nav"
	"github.com/five82/spoiler/internal/state"
	"github.com/five82/spoiler/internal/transmission"
)

// handleKey routes a key press. An open overlay receives every key except
// ctrl+c; otherwise the key goes to the handler for the current focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.overlay.Active() {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	switch m.nav.CurrentFocus() {
	case nav.FocusList:
		return m.handleListKey(msg)
	case nav.FocusTabs:
		return m.handleTabsKey(msg)
	case nav.FocusFileTree:
		return m.handleFileTreeKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(-len(m.snapshot.Jobs))
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.snapshot.Jobs))
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.overlay.Open(nav.WidgetHelp)
		return m, nil
	case key.Matches(msg, m.keys.Columns):
		m.pickerRow = 0
		m.overlay.Open(nav.WidgetColumnPicker)
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.openAdd()
		return m, nil
	}

	// Everything below acts on the selected job.
	job, ok := m.selectedJob()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Confirm):
		if m.nav.Apply(nav.EventOpen, nav.Gate{}) {
			m.detailJobID = job.ID
			m.detailTab = tabOverview
			m.syncFiles()
		}
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		if job.Paused() {
			return m, m.applyCmd("resume", job, transmission.ActionStart)
		}
		return m, m.applyCmd("pause", job, transmission.ActionStop)
	case key.Matches(msg, m.keys.StartNow):
		return m, m.applyCmd("start now", job, transmission.ActionStartNow)
	case key.Matches(msg, m.keys.Verify):
		return m, m.applyCmd("verify", job, transmission.ActionVerify)
	case key.Matches(msg, m.keys.Reannounce):
		return m, m.applyCmd("reannounce", job, transmission.ActionReannounce)
	case key.Matches(msg, m.keys.Rename):
		return m, m.openRename(job)
	case key.Matches(msg, m.keys.Remove):
		m.removeJobID = job.ID
		m.removeName = job.Name
		m.removeData = false
		m.overlay.Open(nav.WidgetRemoveJobConfirm)
		return m, nil
	}
	return m, nil
}

func (m Model) handleTabsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.Apply(nav.EventBack, nav.Gate{})
	case key.Matches(msg, m.keys.Left):
		if m.detailTab > tabOverview {
			m.detailTab--
		} else {
			m.nav.Apply(nav.EventBack, nav.Gate{})
		}
	case key.Matches(msg, m.keys.Right):
		if m.detailTab < tabCount-1 {
			m.detailTab++
		}
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Confirm):
		m.nav.Apply(nav.EventDescend, nav.Gate{FilesTab: m.detailTab == tabFiles})
	}
	return m, nil
}

func (m Model) handleFileTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.Apply(nav.EventBack, nav.Gate{})
	case key.Matches(msg, m.keys.Up):
		m.files.Previous()
	case key.Matches(msg, m.keys.Down):
		m.files.Next()
	case key.Matches(msg, m.keys.Right):
		m.files.Expand()
	case key.Matches(msg, m.keys.Left):
		m.files.Collapse()
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Toggle):
		m.files.Toggle()
	case key.Matches(msg, m.keys.PriorityUp):
		return m, m.changePriority(transmission.Priority.Raise)
	case key.Matches(msg, m.keys.PriorityDown):
		return m, m.changePriority(transmission.Priority.Lower)
	}
	return m, nil
}

// changePriority applies step to the selected manifest file. Directories and
// files already at the limit are left alone.
func (m Model) changePriority(step func(transmission.Priority) transmission.Priority) tea.Cmd {
	node, ok := m.files.SelectedNode()
	if !ok || node.FileIndex < 0 {
		return nil
	}
	job, ok := m.detailJob()
	if !ok {
		return nil
	}
	manifest := job.Manifest()
	if node.FileIndex >= len(manifest) {
		return nil
	}
	current := manifest[node.FileIndex].Priority
	next := step(current)
	if next == current {
		return nil
	}
	return m.priorityCmd(job, node.FileIndex, node.Name, next)
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay.Widget() {
	case nav.WidgetHelp:
		if key.Matches(msg, m.keys.Back, m.keys.Help, m.keys.Confirm) {
			m.overlay.Close()
		}
		return m, nil
	case nav.WidgetRenameInput:
		return m.handleRenameKey(msg)
	case nav.WidgetAddJob:
		return m.handleAddKey(msg)
	case nav.WidgetAddJobConfirm:
		return m.handleAddConfirmKey(msg)
	case nav.WidgetRemoveJobConfirm:
		return m.handleRemoveConfirmKey(msg)
	case nav.WidgetColumnPicker:
		return m.handlePickerKey(msg)
	}
	return m, nil
}

// openRename prepares an empty input showing the current name as its
// placeholder. The target job is fixed here so a refresh that reorders the
// list cannot redirect the rename.
func (m *Model) openRename(job transmission.Torrent) tea.Cmd {
	m.renameInput.Reset()
	m.renameInput.Prompt = "> "
	m.renameInput.Placeholder = job.Name
	m.renameInput.CharLimit = 255
	m.renameJobID = job.ID
	m.renameFrom = job.Name
	m.overlay.Open(nav.WidgetRenameInput)
	return m.renameInput.Focus()
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeRename()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.renameInput.Value())
		m.closeRename()
		if name == "" || name == m.renameFrom {
			return m, nil
		}
		return m, m.renameCmd(m.renameJobID, m.renameFrom, name)
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m *Model) closeRename() {
	m.renameInput.Blur()
	m.overlay.Close()
}

// openAdd lists the torrent directory and opens the picker. A listing error
// is reported and the picker opens empty.
func (m *Model) openAdd() {
	m.candidates = nil
	m.candidateRow = 0
	m.addPaused = false
	candidates, err := m.listTorrentFiles(m.config.TorrentDir)
	if err != nil {
		m.setStatus(fmt.Sprintf("List %s: %v", m.config.TorrentDir, err), true)
	}
	m.candidates = candidates
	m.overlay.Open(nav.WidgetAddJob)
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.overlay.Close()
	case key.Matches(msg, m.keys.Up):
		m.candidateRow = max(m.candidateRow-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.candidateRow = min(m.candidateRow+1, max(len(m.candidates)-1, 0))
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Confirm):
		if m.candidateRow < len(m.candidates) {
			m.overlay.Open(nav.WidgetAddJobConfirm)
		}
	}
	return m, nil
}

func (m Model) handleAddConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.overlay.Close()
	case key.Matches(msg, m.keys.Left):
		m.overlay.Open(nav.WidgetAddJob)
	case key.Matches(msg, m.keys.TogglePaused):
		m.addPaused = !m.addPaused
	case key.Matches(msg, m.keys.Confirm):
		if m.candidateRow >= len(m.candidates) {
			m.overlay.Close()
			return m, nil
		}
		candidate := m.candidates[m.candidateRow]
		m.overlay.Close()
		return m, m.addCmd(candidate.Path, candidate.Name, m.addPaused)
	}
	return m, nil
}

func (m Model) handleRemoveConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Left):
		m.overlay.Close()
	case key.Matches(msg, m.keys.ToggleDelete):
		m.removeData = !m.removeData
	case key.Matches(msg, m.keys.Confirm):
		m.overlay.Close()
		return m, m.removeCmd(m.removeJobID, m.removeName, m.removeData)
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.columns) - 1
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Confirm):
		m.overlay.Close()
	case key.Matches(msg, m.keys.MoveUp):
		if m.pickerRow > 0 {
			m.columns = m.columns.Swap(m.pickerRow, m.pickerRow-1)
			m.pickerRow--
			m.persistPrefs()
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.pickerRow < last {
			m.columns = m.columns.Swap(m.pickerRow, m.pickerRow+1)
			m.pickerRow++
			m.persistPrefs()
		}
	case key.Matches(msg, m.keys.Up):
		m.pickerRow = max(m.pickerRow-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.pickerRow = min(m.pickerRow+1, last)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleColumn()
	case key.Matches(msg, m.keys.SortBy):
		m.sortByColumn()
	}
	return m, nil
}

// toggleColumn flips the highlighted column, refusing to hide the last
// visible one.
func (m *Model) toggleColumn() {
	if m.pickerRow < 0 || m.pickerRow >= len(m.columns) {
		return
	}
	col := m.columns[m.pickerRow]
	if col.Visible && len(m.columns.Visible()) == 1 {
		m.setStatus("At least one column must stay visible", true)
		return
	}
	m.columns = m.columns.Toggle(m.pickerRow)
	m.persistPrefs()
}

// sortByColumn sorts by the highlighted column, flipping the direction when
// it is already the sort key. The new order shows from the next refresh.
func (m *Model) sortByColumn() {
	if m.store == nil || m.pickerRow < 0 || m.pickerRow >= len(m.columns) {
		return
	}
	field := m.columns[m.pickerRow].Field
	next := state.Sort{Key: field}
	if cur := m.store.Sort(); cur.Key == field {
		next.Desc = !cur.Desc
	}
	m.store.SetSort(next)
	m.persistPrefs()
	m.setStatus(fmt.Sprintf("Sorting by %s %s", field.Title(), sortArrow(next.Desc)), false)
}

func sortArrow(desc bool) string {
	return ternary(desc, "↓", "↑")
}
