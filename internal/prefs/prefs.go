// Package prefs handles spoiler user preferences persistence.
// Preferences are stored in $XDG_CONFIG_HOME/spoiler/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/spoiler/internal/state"
)

// Prefs holds operator choices made inside the UI.
type Prefs struct {
	Theme    string   `toml:"theme"`
	SortKey  string   `toml:"sort_key"`
	SortDesc bool     `toml:"sort_desc"`
	Columns  []Column `toml:"columns"`
}

// Column is the persisted form of state.Column.
type Column struct {
	Field   string `toml:"field"`
	Visible bool   `toml:"visible"`
}

const defaultTheme = "Nightfox"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "spoiler", "prefs.toml")
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	p := Prefs{Theme: defaultTheme}
	p.SetSort(state.Sort{Key: state.SortName})
	p.SetColumns(state.DefaultColumns())
	return p
}

// Sort returns the stored sort, falling back to name ascending.
func (p Prefs) Sort() state.Sort {
	key, ok := state.ParseSortKey(p.SortKey)
	if !ok {
		return state.Sort{Key: state.SortName}
	}
	return state.Sort{Key: key, Desc: p.SortDesc}
}

// SetSort records s.
func (p *Prefs) SetSort(s state.Sort) {
	p.SortKey = s.Key.String()
	p.SortDesc = s.Desc
}

// StateColumns converts the stored layout, repairing unknown, duplicate and
// missing fields. An empty layout yields the defaults.
func (p Prefs) StateColumns() state.Columns {
	if len(p.Columns) == 0 {
		return state.DefaultColumns()
	}
	cols := make(state.Columns, 0, len(p.Columns))
	for _, c := range p.Columns {
		key, ok := state.ParseSortKey(c.Field)
		if !ok {
			continue
		}
		cols = append(cols, state.Column{Field: key, Visible: c.Visible})
	}
	if len(cols) == 0 {
		return state.DefaultColumns()
	}
	return cols.Normalize()
}

// SetColumns records cols.
func (p *Prefs) SetColumns(cols state.Columns) {
	p.Columns = make([]Column, len(cols))
	for i, c := range cols {
		p.Columns[i] = Column{Field: c.Field.String(), Visible: c.Visible}
	}
}

// Load reads preferences from the given path. A missing file yields the
// defaults and no error. A file that cannot be read or parsed yields the
// defaults together with the error, so callers can report it and carry on.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), fmt.Errorf("resolve preferences path: %w", err)
	}

	prefs := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("open preferences: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, fmt.Errorf("read preferences: %w", err)
	}

	var stored Prefs
	if err := toml.Unmarshal(bytes, &stored); err != nil {
		return Defaults(), fmt.Errorf("parse preferences %s: %w", resolved, err)
	}

	if strings.TrimSpace(stored.Theme) != "" {
		prefs.Theme = strings.TrimSpace(stored.Theme)
	}
	if _, ok := state.ParseSortKey(stored.SortKey); ok {
		prefs.SetSort(stored.Sort())
	}
	if len(stored.Columns) > 0 {
		prefs.SetColumns(stored.StateColumns())
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
