package ui

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/spoiler/internal/config"
	"github.com/five82/spoiler/internal/nav"
	"github.com/five82/spoiler/internal/prefs"
	"github.com/five82/spoiler/internal/state"
	"github.com/five82/spoiler/internal/torrentfile"
	"github.com/five82/spoiler/internal/transmission"
	"github.com/five82/spoiler/internal/tree"
)

// detailTab is a tab on the job detail screen.
type detailTab int

const (
	tabOverview detailTab = iota
	tabFiles
	tabCount
)

func (t detailTab) String() string {
	if t == tabFiles {
		return "Files"
	}
	return "Overview"
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Gateway   transmission.Gateway
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string

	// ListTorrentFiles and OpenDir default to torrentfile.List and os.DirFS.
	ListTorrentFiles func(dir string) ([]torrentfile.Candidate, error)
	OpenDir          func(dir string) fs.FS
}

// statusLine is the transient message shown under the main content.
type statusLine struct {
	text string
	err  bool
	at   time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx              context.Context
	gateway          transmission.Gateway
	store            *state.Store
	config           config.Config
	prefs            prefs.Prefs
	prefsPath        string
	uiTick           time.Duration
	listTorrentFiles func(dir string) ([]torrentfile.Candidate, error)
	openDir          func(dir string) fs.FS
	keys             keyMap

	// UI state
	theme   Theme
	width   int
	height  int
	ready   bool
	nav     *nav.Stack
	overlay nav.Overlay
	status  statusLine

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	rates       rateHistory

	// Job list state
	columns     state.Columns
	selectedRow int
	selectedID  int64

	// Detail state
	detailJobID      int64
	detailTab        detailTab
	files            *tree.State
	filesJobID       int64
	filesFingerprint uint64

	// Overlay state
	renameInput  textinput.Model
	renameJobID  int64
	renameFrom   string
	candidates   []torrentfile.Candidate
	candidateRow int
	addPaused    bool
	removeJobID  int64
	removeName   string
	removeData   bool
	pickerRow    int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.Config.TickInterval
	if uiTick <= 0 {
		uiTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	listTorrentFiles := opts.ListTorrentFiles
	if listTorrentFiles == nil {
		listTorrentFiles = torrentfile.List
	}
	openDir := opts.OpenDir
	if openDir == nil {
		openDir = os.DirFS
	}

	m := Model{
		ctx:              ctx,
		gateway:          opts.Gateway,
		store:            opts.Store,
		config:           opts.Config,
		prefs:            opts.Prefs,
		prefsPath:        prefsPath,
		uiTick:           uiTick,
		listTorrentFiles: listTorrentFiles,
		openDir:          openDir,
		keys:             DefaultKeyMap(),
		theme:            GetTheme(opts.Prefs.Theme).WithColors(opts.Config.Colors),
		nav:              nav.NewStack(),
		columns:          opts.Prefs.StateColumns(),
		files:            tree.NewState(),
		rates:            newRateHistory(rateHistoryLen),
		renameInput:      textinput.New(),
	}
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.uiTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.renameInput.Width = overlayWidth - 10
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case commandResultMsg:
		m.handleCommandResult(msg)
		return m, nil
	}

	// Cursor blink and similar messages belong to the rename input.
	if m.overlay.Widget() == nav.WidgetRenameInput {
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.overlay.Active() {
		return m.renderOverlay()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	contentHeight := max(m.height-chromeRows, 3)
	var content string
	switch m.nav.Current().Screen {
	case nav.ScreenJobDetail:
		content = m.renderDetail(m.width, contentHeight)
	default:
		content = m.renderJobList(m.width, contentHeight)
	}
	return m.renderHeader() + "\n" +
		m.renderCommandBar() + "\n" +
		content + "\n" +
		m.renderStatusLine()
}

// tickMsg drives the UI refresh.
type tickMsg time.Time

// snapshotMsg carries a fresh copy of the store.
type snapshotMsg state.Snapshot

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.status.text != "" && now.Sub(m.status.at) > statusLineTTL {
		m.status = statusLine{}
	}
	cmds := []tea.Cmd{tickCmd(m.uiTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot installs snap and reconciles everything derived from it.
// Only successful refreshes add a rate sample; a failed poll keeps the old
// stats and would repeat them.
func (m *Model) applySnapshot(snap state.Snapshot) {
	fresh := snap.LastError == nil && !snap.LastUpdated.IsZero() && !snap.LastUpdated.Equal(m.snapshot.LastUpdated)
	if snap.HasStats && fresh {
		m.rates.push(snap.Stats.DownloadSpeed, snap.Stats.UploadSpeed)
	}
	m.snapshot = snap
	m.lastUpdated = snap.LastUpdated
	m.syncSelection()
	m.syncFiles()
}

// syncSelection keeps the job list cursor on the same job across refreshes
// and clamps it when that job is gone.
func (m *Model) syncSelection() {
	jobs := m.snapshot.Jobs
	if len(jobs) == 0 {
		m.selectedRow = 0
		m.selectedID = 0
		return
	}
	if m.selectedID != 0 {
		for i, job := range jobs {
			if job.ID == m.selectedID {
				m.selectedRow = i
				return
			}
		}
	}
	m.selectedRow = min(max(m.selectedRow, 0), len(jobs)-1)
	m.selectedID = jobs[m.selectedRow].ID
}

// selectedJob returns the job under the list cursor.
func (m Model) selectedJob() (transmission.Torrent, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Jobs) {
		return transmission.Torrent{}, false
	}
	return m.snapshot.Jobs[m.selectedRow], true
}

// detailJob returns the job shown on the detail screen.
func (m Model) detailJob() (transmission.Torrent, bool) {
	return m.snapshot.Job(m.detailJobID)
}

func (m *Model) moveSelection(delta int) {
	if len(m.snapshot.Jobs) == 0 {
		return
	}
	m.selectedRow = min(max(m.selectedRow+delta, 0), len(m.snapshot.Jobs)-1)
	m.selectedID = m.snapshot.Jobs[m.selectedRow].ID
}

// syncFiles rebuilds the file tree of the detail job when the job, its
// download directory or its manifest changed. Open directories survive a
// rebuild of the same job and are forgotten when the job changes.
func (m *Model) syncFiles() {
	if m.nav.Current().Screen != nav.ScreenJobDetail {
		return
	}
	job, ok := m.detailJob()
	if !ok {
		m.files.Reset()
		m.filesJobID = 0
		m.filesFingerprint = 0
		return
	}
	fp := fileFingerprint(job)
	if job.ID == m.filesJobID && fp == m.filesFingerprint {
		return
	}
	if job.ID != m.filesJobID {
		m.files.Reset()
	}

	manifest := make([]string, len(job.Files))
	for i, f := range job.Files {
		manifest[i] = f.Name
	}
	var fsys fs.FS
	if job.DownloadDir != "" {
		fsys = m.openDir(job.DownloadDir)
	}
	m.files.Rebuild(tree.Build(fsys, job.DownloadDir, manifest))
	m.filesJobID = job.ID
	m.filesFingerprint = fp

	log.Debug().
		Int64("job", job.ID).
		Str("dir", job.DownloadDir).
		Int("files", len(manifest)).
		Msg("file tree rebuilt")
}

// fileFingerprint hashes what the on-disk tree of job depends on. Byte
// counts are reduced to started/finished so a download in progress does not
// trigger a walk on every refresh.
func fileFingerprint(job transmission.Torrent) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(job.DownloadDir)
	_, _ = h.Write([]byte{0})
	for _, f := range job.Files {
		_, _ = h.WriteString(f.Name)
		started := f.BytesCompleted > 0
		done := f.Length > 0 && f.BytesCompleted >= f.Length
		_, _ = h.Write([]byte{0, boolByte(started), boolByte(done)})
	}
	return h.Sum64()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = statusLine{text: text, err: isErr, at: time.Now()}
}

// persistPrefs writes the current theme, sort and column layout.
func (m *Model) persistPrefs() {
	m.prefs.Theme = m.theme.Name
	m.prefs.SetColumns(m.columns)
	if m.store != nil {
		m.prefs.SetSort(m.store.Sort())
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Warn().Err(err).Str("path", m.prefsPath).Msg("save preferences")
		m.setStatus("Could not save preferences: "+err.Error(), true)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name)).WithColors(m.config.Colors)
	m.persistPrefs()
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
