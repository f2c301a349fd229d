package tree

import (
	"errors"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Kind distinguishes directories from leaves.
type Kind int

const (
	KindLeaf Kind = iota
	KindDir
)

// Node is one entry in a job's file tree. ID is the slash-separated path
// relative to the download directory, so it identifies the same entry across
// rebuilds.
type Node struct {
	Name      string
	Kind      Kind
	ID        string
	Children  []Node
	FileIndex int // manifest index, -1 when the node is not a manifest file

	// Missing is set for manifest entries not found on disk.
	Missing bool
	// Unreadable is set for directories that could not be listed.
	Unreadable bool
}

// IsDir reports whether n can be expanded.
func (n Node) IsDir() bool { return n.Kind == KindDir }

// rootID is the ID of the placeholder returned for an unreadable root.
const rootID = "."

type manifestEntry struct {
	path  string
	index int
}

// builder carries the state shared by every level of the walk.
type builder struct {
	fsys     fs.FS
	manifest []manifestEntry
	excluded map[string]struct{}
	claimed  map[string]struct{}
}

// Build lists fsys (rooted at the job's download directory) and returns the
// entries that belong to the job: every entry that is an ancestor or
// descendant of a manifest path. Manifest paths not present on disk are added
// as Missing nodes. Directories come before files, each group in lexicographic
// order. A directory that cannot be listed becomes a leaf; a root that cannot
// be listed, including one that does not exist, becomes a single leaf named
// root.
func Build(fsys fs.FS, root string, manifest []string) []Node {
	b := newBuilder(fsys, manifest)
	return b.build(root)
}

func newBuilder(fsys fs.FS, manifest []string) *builder {
	b := &builder{
		fsys:     fsys,
		excluded: make(map[string]struct{}),
		claimed:  make(map[string]struct{}),
	}
	for i, p := range manifest {
		clean, ok := cleanManifestPath(p)
		if !ok {
			continue
		}
		b.manifest = append(b.manifest, manifestEntry{path: clean, index: i})
	}
	return b
}

func (b *builder) build(root string) []Node {
	nodes, err := b.walk(".")
	if err != nil {
		return []Node{{Name: displayRoot(root), Kind: KindLeaf, ID: rootID, FileIndex: -1, Unreadable: true}}
	}
	for _, m := range b.manifest {
		nodes = b.graft(nodes, strings.Split(m.path, "/"), "", m.index)
	}
	sortNodes(nodes)
	return nodes
}

// walk lists dir and recurses into member directories.
func (b *builder) walk(dir string) ([]Node, error) {
	if b.fsys == nil {
		return nil, errors.New("no filesystem")
	}
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, err
	}

	var nodes []Node
	for _, entry := range entries {
		id := entry.Name()
		if dir != "." {
			id = dir + "/" + entry.Name()
		}
		if !b.admit(id) {
			continue
		}
		b.claimed[id] = struct{}{}

		node := Node{Name: entry.Name(), ID: id, FileIndex: b.indexOf(id)}
		if entry.IsDir() {
			node.Kind = KindDir
			children, err := b.walk(id)
			if err != nil {
				node.Kind = KindLeaf
				node.Unreadable = true
			}
			node.Children = children
		}
		nodes = append(nodes, node)
	}
	sortNodes(nodes)
	return nodes, nil
}

// admit decides membership once per path and records rejected paths so no
// later pass reconsiders them or anything beneath them.
func (b *builder) admit(id string) bool {
	if _, ok := b.claimed[id]; ok {
		return false
	}
	if b.isExcluded(id) {
		return false
	}
	for _, m := range b.manifest {
		if related(id, m.path) {
			return true
		}
	}
	b.excluded[id] = struct{}{}
	return false
}

func (b *builder) isExcluded(id string) bool {
	for p := id; p != "." && p != ""; p = path.Dir(p) {
		if _, ok := b.excluded[p]; ok {
			return true
		}
	}
	return false
}

// graft inserts the manifest path parts under nodes unless an entry already
// claims it.
func (b *builder) graft(nodes []Node, parts []string, parent string, index int) []Node {
	if len(parts) == 0 {
		return nodes
	}
	id := parts[0]
	if parent != "" {
		id = parent + "/" + parts[0]
	}
	leaf := len(parts) == 1

	for i := range nodes {
		if nodes[i].ID != id {
			continue
		}
		if !leaf && nodes[i].Kind == KindDir {
			nodes[i].Children = b.graft(nodes[i].Children, parts[1:], id, index)
			sortNodes(nodes[i].Children)
		}
		return nodes
	}
	if _, ok := b.claimed[id]; ok {
		return nodes
	}
	b.claimed[id] = struct{}{}

	node := Node{Name: parts[0], ID: id, FileIndex: -1, Missing: true}
	if leaf {
		node.FileIndex = index
	} else {
		node.Kind = KindDir
		node.Children = b.graft(nil, parts[1:], id, index)
	}
	return append(nodes, node)
}

func (b *builder) indexOf(id string) int {
	for _, m := range b.manifest {
		if m.path == id {
			return m.index
		}
	}
	return -1
}

// related reports whether a is a component-wise prefix of b or the reverse.
func related(a, b string) bool {
	return a == b || strings.HasPrefix(b, a+"/") || strings.HasPrefix(a, b+"/")
}

func cleanManifestPath(p string) (string, bool) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", false
	}
	clean := path.Clean(strings.TrimPrefix(p, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return clean, true
}

func sortNodes(nodes []Node) {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func displayRoot(root string) string {
	root = strings.TrimRight(root, "/")
	if root == "" {
		return "/"
	}
	if base := path.Base(strings.ReplaceAll(root, "\\", "/")); base != "." {
		return base
	}
	return root
}
