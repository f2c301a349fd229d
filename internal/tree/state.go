package tree

// Row is a visible node with its indentation depth.
type Row struct {
	Node  Node
	Depth int
	Open  bool
}

// State is the cursor and expand/collapse state for one rendered tree.
// Open directories and the selection are remembered by node ID, so they
// survive a rebuild as long as the paths still exist.
type State struct {
	nodes    []Node
	open     map[string]bool
	selected string
}

// NewState returns an empty tree state.
func NewState() *State {
	return &State{open: make(map[string]bool)}
}

// Rebuild swaps in freshly built nodes. Open IDs that still name a directory
// stay open; the selection is kept when its node is still visible and moves
// to the first row otherwise.
func (s *State) Rebuild(nodes []Node) {
	s.nodes = nodes

	dirs := make(map[string]bool)
	collectDirs(nodes, dirs)
	for id := range s.open {
		if !dirs[id] {
			delete(s.open, id)
		}
	}

	if s.indexOf(s.selected) < 0 {
		s.selected = ""
		if rows := s.Visible(); len(rows) > 0 {
			s.selected = rows[0].Node.ID
		}
	}
}

// Reset forgets nodes, open directories and the selection.
func (s *State) Reset() {
	s.nodes = nil
	s.open = make(map[string]bool)
	s.selected = ""
}

// Nodes returns the current tree.
func (s *State) Nodes() []Node { return s.nodes }

// IsOpen reports whether the directory with id is expanded.
func (s *State) IsOpen(id string) bool { return s.open[id] }

// OpenCount returns the number of expanded directories.
func (s *State) OpenCount() int { return len(s.open) }

// Selected returns the selected node ID, or "" when the tree is empty.
func (s *State) Selected() string { return s.selected }

// Visible flattens the tree, descending only into open directories.
func (s *State) Visible() []Row {
	var rows []Row
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for _, n := range nodes {
			open := n.IsDir() && s.open[n.ID]
			rows = append(rows, Row{Node: n, Depth: depth, Open: open})
			if open {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(s.nodes, 0)
	return rows
}

// SelectedIndex returns the selected row index, or -1.
func (s *State) SelectedIndex() int {
	return s.indexOf(s.selected)
}

// SelectedNode returns the selected node.
func (s *State) SelectedNode() (Node, bool) {
	rows := s.Visible()
	i := indexIn(rows, s.selected)
	if i < 0 {
		return Node{}, false
	}
	return rows[i].Node, true
}

// Next moves the selection down one row, stopping at the last.
func (s *State) Next() {
	s.move(1)
}

// Previous moves the selection up one row, stopping at the first.
func (s *State) Previous() {
	s.move(-1)
}

// Toggle expands or collapses the selected directory. It reports whether
// anything changed.
func (s *State) Toggle() bool {
	n, ok := s.SelectedNode()
	if !ok || !n.IsDir() {
		return false
	}
	if s.open[n.ID] {
		delete(s.open, n.ID)
	} else {
		s.open[n.ID] = true
	}
	return true
}

// Expand opens the selected directory.
func (s *State) Expand() bool {
	n, ok := s.SelectedNode()
	if !ok || !n.IsDir() || s.open[n.ID] {
		return false
	}
	s.open[n.ID] = true
	return true
}

// Collapse closes the selected directory, or moves the selection to the
// parent directory when the selection is not an open directory.
func (s *State) Collapse() bool {
	n, ok := s.SelectedNode()
	if !ok {
		return false
	}
	if n.IsDir() && s.open[n.ID] {
		delete(s.open, n.ID)
		return true
	}
	rows := s.Visible()
	i := indexIn(rows, n.ID)
	for j := i - 1; j >= 0; j-- {
		if rows[j].Depth < rows[i].Depth {
			s.selected = rows[j].Node.ID
			return true
		}
	}
	return false
}

func (s *State) move(delta int) {
	rows := s.Visible()
	if len(rows) == 0 {
		s.selected = ""
		return
	}
	i := indexIn(rows, s.selected)
	if i < 0 {
		s.selected = rows[0].Node.ID
		return
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	s.selected = rows[i].Node.ID
}

func (s *State) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return indexIn(s.Visible(), id)
}

func indexIn(rows []Row, id string) int {
	for i, r := range rows {
		if r.Node.ID == id {
			return i
		}
	}
	return -1
}

func collectDirs(nodes []Node, into map[string]bool) {
	for _, n := range nodes {
		if n.IsDir() {
			into[n.ID] = true
			collectDirs(n.Children, into)
		}
	}
}
