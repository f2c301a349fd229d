// Package config loads the spoiler configuration file.
//
// # Overview
//
// The config file is TOML, read from $XDG_CONFIG_HOME/spoiler/config.toml
// unless a path is given. A missing file is not an error: every field has a
// default, so spoiler talks to a local Transmission daemon out of the box.
//
// # TOML Format
//
//	[rpc]
//	url = "http://127.0.0.1:9091/transmission/rpc"
//	username = ""
//	password = ""
//
//	[ui]
//	poll_interval = "1s"
//	tick_interval = "200ms"
//	torrent_dir = "~/Downloads"
//
//	[log]
//	file = ""        # default: $XDG_STATE_HOME/spoiler/spoiler.log
//	level = "info"
//
//	[colors]          # hex overrides; blank keeps the active theme's color
//	fg_normal = ""
//	fg_highlight = "#000000"
//	bg_highlight = "#ff0000"
//	fg_column_show = "#000000"
//	bg_column_show = "#00ff00"
//	fg_column_hide = "#000000"
//	bg_column_hide = "#0000ff"
//
// Values are trimmed and blank values keep their defaults. Paths support a
// leading ~ and are made absolute. Colors accept #rgb or #rrggbb. The color
// keys may also sit at the top level of the file, before any table; a
// non-blank [colors] value takes precedence.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, unparsable or
// non-positive durations, and malformed or unknown colors. Every parse
// failure mentions "parse config".
package config
