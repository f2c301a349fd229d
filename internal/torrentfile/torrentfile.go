// Package torrentfile finds .torrent files offered by the add-job picker.
package torrentfile

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Ext is the extension of files offered for adding.
const Ext = ".torrent"

// Candidate is one file the operator can add.
type Candidate struct {
	Name string // base name, shown in the picker
	Path string // absolute or dir-relative path passed to the daemon client
}

// List returns the .torrent files directly inside dir, sorted by name.
// Directories and other files are skipped.
func List(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list torrent files: %w", err)
	}

	var out []Candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Ext) {
			continue
		}
		out = append(out, Candidate{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())})
	}
	slices.SortFunc(out, func(a, b Candidate) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
