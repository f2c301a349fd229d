package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RPC.URL != defaultRPCURL {
		t.Fatalf("RPC.URL = %q, want %q", cfg.RPC.URL, defaultRPCURL)
	}
	if cfg.PollInterval != time.Second || cfg.TickInterval != 200*time.Millisecond {
		t.Fatalf("intervals = %v/%v, want 1s/200ms", cfg.PollInterval, cfg.TickInterval)
	}
	if cfg.TorrentDir != filepath.Join(home, "Downloads") {
		t.Fatalf("TorrentDir = %q, want under HOME", cfg.TorrentDir)
	}
	if cfg.LogFile != "" || cfg.LogLevel != "info" {
		t.Fatalf("log = %q/%q, want default file and info", cfg.LogFile, cfg.LogLevel)
	}
	if cfg.Colors != (Colors{}) {
		t.Fatalf("Colors = %#v, want theme defaults", cfg.Colors)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
[rpc]
url = "  http://nas:9091/transmission/rpc  "
username = " admin "
password = "s3cret"

[ui]
poll_interval = " 2s "
tick_interval = "100ms"
torrent_dir = "  ~/torrents  "

[log]
file = "~/logs/spoiler.log"
level = " DEBUG "

[colors]
fg_normal = "#abc"
bg_highlight = "#00FF00"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RPC.URL != "http://nas:9091/transmission/rpc" || cfg.RPC.Username != "admin" || cfg.RPC.Password != "s3cret" {
		t.Fatalf("RPC = %#v", cfg.RPC)
	}
	if cfg.PollInterval != 2*time.Second || cfg.TickInterval != 100*time.Millisecond {
		t.Fatalf("intervals = %v/%v", cfg.PollInterval, cfg.TickInterval)
	}
	if cfg.TorrentDir != filepath.Join(home, "torrents") {
		t.Fatalf("TorrentDir = %q", cfg.TorrentDir)
	}
	if !strings.HasPrefix(cfg.LogFile, home) || cfg.LogLevel != "debug" {
		t.Fatalf("log = %q/%q", cfg.LogFile, cfg.LogLevel)
	}
	if cfg.Colors.FgNormal != "#aabbcc" || cfg.Colors.BgHighlight != "#00ff00" {
		t.Fatalf("colors = %#v", cfg.Colors)
	}
	if cfg.Colors.BgColumnHide != "" {
		t.Fatalf("unset color changed: %q", cfg.Colors.BgColumnHide)
	}
}

func TestLoad_TopLevelColorKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
fg_highlight = "#000000"
bg_highlight = "#ff0000"
bg_column_hide = "#0000ff"

[colors]
bg_highlight = "#123456"
bg_column_hide = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Colors.FgHighlight != "#000000" {
		t.Fatalf("FgHighlight = %q, want top-level value", cfg.Colors.FgHighlight)
	}
	if cfg.Colors.BgHighlight != "#123456" {
		t.Fatalf("BgHighlight = %q, want [colors] value", cfg.Colors.BgHighlight)
	}
	if cfg.Colors.BgColumnHide != "#0000ff" {
		t.Fatalf("BgColumnHide = %q, blank table value must keep top-level", cfg.Colors.BgColumnHide)
	}
	if cfg.Colors.FgNormal != "" {
		t.Fatalf("FgNormal = %q, want unset", cfg.Colors.FgNormal)
	}
}

func TestLoad_InvalidTopLevelColorFails(t *testing.T) {
	path := writeConfig(t, "fg_normal = \"purple\"\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "colors.fg_normal") {
		t.Fatalf("err = %v, want colors.fg_normal error", err)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
[rpc]
url = "   "
[ui]
poll_interval = ""
torrent_dir = " "
[colors]
bg_highlight = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.RPC.URL != want.RPC.URL || cfg.PollInterval != want.PollInterval || cfg.TorrentDir != want.TorrentDir {
		t.Fatalf("cfg = %#v, want defaults %#v", cfg, want)
	}
	if cfg.Colors.BgHighlight != want.Colors.BgHighlight {
		t.Fatalf("BgHighlight = %q, want default", cfg.Colors.BgHighlight)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := map[string]string{
		"toml":          `[rpc`,
		"duration":      "[ui]\npoll_interval = \"soon\"",
		"zero duration": "[ui]\ntick_interval = \"0s\"",
		"color":         "[colors]\nfg_normal = \"#12\"",
		"color digits":  "[colors]\nfg_normal = \"#zzzzzz\"",
		"unknown color": "[colors]\nfg_shiny = \"#fff\"",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if err == nil {
				t.Fatalf("Load returned nil error, want parse error")
			}
			if !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestDefaultPath_UnderConfigHome(t *testing.T) {
	got := DefaultPath()
	if filepath.Base(got) != "config.toml" || filepath.Base(filepath.Dir(got)) != "spoiler" {
		t.Fatalf("DefaultPath = %q", got)
	}
}
