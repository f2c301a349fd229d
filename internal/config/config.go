package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved spoiler configuration.
type Config struct {
	RPC          RPC
	PollInterval time.Duration
	TickInterval time.Duration
	TorrentDir   string
	LogFile      string // empty selects the logging package default
	LogLevel     string
	Colors       Colors
}

// RPC holds the daemon connection settings.
type RPC struct {
	URL      string
	Username string
	Password string
}

// Colors are hex colors ("#rrggbb") overriding the active theme. An empty
// value keeps the theme's color.
type Colors struct {
	FgNormal     string
	FgHighlight  string
	BgHighlight  string
	FgColumnShow string
	BgColumnShow string
	FgColumnHide string
	BgColumnHide string
}

const (
	defaultRPCURL       = "http://127.0.0.1:9091/transmission/rpc"
	defaultPollInterval = time.Second
	defaultTickInterval = 200 * time.Millisecond
	defaultTorrentDir   = "~/Downloads"
	defaultLogLevel     = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RPC:          RPC{URL: defaultRPCURL},
		PollInterval: defaultPollInterval,
		TickInterval: defaultTickInterval,
		TorrentDir:   mustExpand(defaultTorrentDir),
		LogLevel:     defaultLogLevel,
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "spoiler", "config.toml")
}

type rawConfig struct {
	RPC struct {
		URL      string `toml:"url"`
		Username string `toml:"username"`
		Password string `toml:"password"`
	} `toml:"rpc"`
	UI struct {
		PollInterval string `toml:"poll_interval"`
		TickInterval string `toml:"tick_interval"`
		TorrentDir   string `toml:"torrent_dir"`
	} `toml:"ui"`
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
	Colors map[string]string `toml:"colors"`

	// Top-level color keys, the layout of configs written before [colors].
	FgNormal     string `toml:"fg_normal"`
	FgHighlight  string `toml:"fg_highlight"`
	BgHighlight  string `toml:"bg_highlight"`
	FgColumnShow string `toml:"fg_column_show"`
	BgColumnShow string `toml:"bg_column_show"`
	FgColumnHide string `toml:"fg_column_hide"`
	BgColumnHide string `toml:"bg_column_hide"`
}

// colorValues merges the top-level color keys with the [colors] table. A
// non-blank table value wins over the top-level one.
func (r rawConfig) colorValues() map[string]string {
	values := map[string]string{
		"fg_normal":      r.FgNormal,
		"fg_highlight":   r.FgHighlight,
		"bg_highlight":   r.BgHighlight,
		"fg_column_show": r.FgColumnShow,
		"bg_column_show": r.BgColumnShow,
		"fg_column_hide": r.FgColumnHide,
		"bg_column_hide": r.BgColumnHide,
	}
	for key, value := range r.Colors {
		if _, known := values[key]; !known || strings.TrimSpace(value) != "" {
			values[key] = value
		}
	}
	return values
}

// Load reads the config at path (DefaultPath when empty), falling back to
// defaults when the file is missing. Blank values keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.RPC.URL); v != "" {
		cfg.RPC.URL = v
	}
	cfg.RPC.Username = strings.TrimSpace(raw.RPC.Username)
	cfg.RPC.Password = raw.RPC.Password

	if cfg.PollInterval, err = parseInterval("ui.poll_interval", raw.UI.PollInterval, defaultPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval, err = parseInterval("ui.tick_interval", raw.UI.TickInterval, defaultTickInterval); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(raw.UI.TorrentDir); v != "" {
		cfg.TorrentDir = mustExpand(v)
	}

	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := applyColors(&cfg.Colors, raw.colorValues()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseInterval(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", key, value)
	}
	return d, nil
}

func applyColors(colors *Colors, raw map[string]string) error {
	slots := map[string]*string{
		"fg_normal":      &colors.FgNormal,
		"fg_highlight":   &colors.FgHighlight,
		"bg_highlight":   &colors.BgHighlight,
		"fg_column_show": &colors.FgColumnShow,
		"bg_column_show": &colors.BgColumnShow,
		"fg_column_hide": &colors.FgColumnHide,
		"bg_column_hide": &colors.BgColumnHide,
	}
	for key, value := range raw {
		slot, ok := slots[key]
		if !ok {
			return fmt.Errorf("parse config: colors.%s: unknown color", key)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		hex, err := normalizeHex(value)
		if err != nil {
			return fmt.Errorf("parse config: colors.%s: %w", key, err)
		}
		*slot = hex
	}
	return nil
}

// normalizeHex accepts "#rgb" and "#rrggbb" and returns "#rrggbb".
func normalizeHex(value string) (string, error) {
	digits := strings.ToLower(strings.TrimPrefix(value, "#"))
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", fmt.Errorf("invalid hex color %q", value)
		}
	}
	switch len(digits) {
	case 3:
		return "#" + string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]}), nil
	case 6:
		return "#" + digits, nil
	default:
		return "", fmt.Errorf("invalid hex color %q", value)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
