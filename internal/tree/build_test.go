package tree

import (
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFS struct {
	fs.FS
	fail string
}

func (f failingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == f.fail {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return fs.ReadDir(f.FS, name)
}

func sharedDownloads() fstest.MapFS {
	return fstest.MapFS{
		"a/b.txt": {Data: []byte("b")},
		"c.txt":   {Data: []byte("c")},
		"d.txt":   {Data: []byte("unrelated")},
		"e/f.txt": {Data: []byte("unrelated")},
	}
}

func ids(nodes []Node) []string {
	var out []string
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			out = append(out, n.ID)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

func TestBuild_KeepsOnlyManifestMembers(t *testing.T) {
	b := newBuilder(sharedDownloads(), []string{"a/b.txt", "c.txt"})
	nodes := b.build("/srv/downloads")

	assert.Equal(t, []string{"a", "a/b.txt", "c.txt"}, ids(nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, KindDir, nodes[0].Kind)
	assert.Equal(t, -1, nodes[0].FileIndex)
	assert.Equal(t, 0, nodes[0].Children[0].FileIndex)
	assert.Equal(t, KindLeaf, nodes[1].Kind)
	assert.Equal(t, 1, nodes[1].FileIndex)

	assert.Contains(t, b.excluded, "d.txt")
	assert.Contains(t, b.excluded, "e")
	assert.NotContains(t, b.excluded, "e/f.txt", "excluded directories are never descended")
}

func TestBuild_DirectoriesFirstThenLexicographic(t *testing.T) {
	fsys := fstest.MapFS{
		"z.txt":       {},
		"b/file":      {},
		"a.txt":       {},
		"a/deep/file": {},
	}
	nodes := Build(fsys, "dl", []string{"z.txt", "b/file", "a.txt", "a/deep/file"})
	assert.Equal(t, []string{"a", "a/deep", "a/deep/file", "b", "b/file", "a.txt", "z.txt"}, ids(nodes))
}

func TestBuild_OverlappingManifestPathsDoNotDuplicate(t *testing.T) {
	fsys := fstest.MapFS{"a/b.txt": {}, "a/c.txt": {}}
	nodes := Build(fsys, "dl", []string{"a", "a/b.txt", "a/b.txt", "./a/c.txt"})
	assert.Equal(t, []string{"a", "a/b.txt", "a/c.txt"}, ids(nodes))
}

func TestBuild_PrefixIsComponentWise(t *testing.T) {
	fsys := fstest.MapFS{"show/ep1.mkv": {}, "show2/ep1.mkv": {}, "show.nfo": {}}
	nodes := Build(fsys, "dl", []string{"show/ep1.mkv"})
	assert.Equal(t, []string{"show", "show/ep1.mkv"}, ids(nodes))
}

func TestBuild_UnreadableDirectoryBecomesLeaf(t *testing.T) {
	fsys := failingFS{FS: sharedDownloads(), fail: "a"}
	nodes := Build(fsys, "dl", []string{"a/b.txt", "c.txt"})

	require.Len(t, nodes, 2)
	// "a" is now a leaf and sorts with the files.
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, KindLeaf, nodes[0].Kind)
	assert.True(t, nodes[0].Unreadable)
	assert.Empty(t, nodes[0].Children)
	assert.Equal(t, "c.txt", nodes[1].ID)
}

func TestBuild_UnreadableRootIsPlaceholder(t *testing.T) {
	fsys := failingFS{FS: sharedDownloads(), fail: "."}
	nodes := Build(fsys, "/srv/downloads/", []string{"a/b.txt"})

	require.Len(t, nodes, 1)
	assert.Equal(t, "downloads", nodes[0].Name)
	assert.True(t, nodes[0].Unreadable)
	assert.Equal(t, KindLeaf, nodes[0].Kind)
}

func TestBuild_VanishedRootIsPlaceholder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")

	nodes := Build(nil, dir, []string{"x"})
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Unreadable, "nil filesystem is unreadable")

	nodes = Build(osDirFS(dir), dir, []string{"show/ep1.mkv", "show/ep2.mkv"})
	require.Len(t, nodes, 1)
	assert.Equal(t, "gone", nodes[0].Name)
	assert.Equal(t, KindLeaf, nodes[0].Kind)
	assert.True(t, nodes[0].Unreadable)
	assert.False(t, nodes[0].Missing)
	assert.Empty(t, nodes[0].Children)
	assert.Equal(t, -1, nodes[0].FileIndex)
}

func TestBuild_ExistingEmptyRootGraftsManifest(t *testing.T) {
	nodes := Build(fstest.MapFS{}, "dl", []string{"x/y.bin", "z.bin"})

	assert.Equal(t, []string{"x", "x/y.bin", "z.bin"}, ids(nodes))
	for _, i := range []int{0, 1} {
		assert.True(t, nodes[i].Missing)
	}
	assert.Equal(t, 0, nodes[0].Children[0].FileIndex)
}

func TestBuild_IncompleteFileGraftedAsMissing(t *testing.T) {
	fsys := fstest.MapFS{"a/b.txt.part": {}}
	nodes := Build(fsys, "dl", []string{"a/b.txt"})

	assert.Equal(t, []string{"a", "a/b.txt"}, ids(nodes))
	assert.False(t, nodes[0].Missing)
	assert.True(t, nodes[0].Children[0].Missing)
}

func TestCleanManifestPath(t *testing.T) {
	cases := map[string]string{
		"a/b":    "a/b",
		"/a/b":   "a/b",
		"a//b/":  "a/b",
		`a\b`:    "a/b",
		"./a":    "a",
		"":       "",
		"..":     "",
		"../etc": "",
	}
	for in, want := range cases {
		got, ok := cleanManifestPath(in)
		if want == "" {
			assert.False(t, ok, in)
			continue
		}
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}
