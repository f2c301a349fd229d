package transmission

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the transfer state reported by the daemon.
type Status int

const (
	StatusStopped Status = iota
	StatusCheckWait
	StatusCheck
	StatusDownloadWait
	StatusDownload
	StatusSeedWait
	StatusSeed
)

// String returns the label shown in the job list.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusCheckWait:
		return "Queued (verify)"
	case StatusCheck:
		return "Verifying"
	case StatusDownloadWait:
		return "Queued"
	case StatusDownload:
		return "Downloading"
	case StatusSeedWait:
		return "Queued (seed)"
	case StatusSeed:
		return "Seeding"
	default:
		return fmt.Sprintf("Unknown (%d)", int(s))
	}
}

// Priority is the per-file bandwidth priority.
type Priority int

const (
	PriorityLow    Priority = -1
	PriorityNormal Priority = 0
	PriorityHigh   Priority = 1
)

// String returns a short label for the priority.
func (p Priority) String() string {
	switch {
	case p < PriorityNormal:
		return "low"
	case p > PriorityNormal:
		return "high"
	default:
		return "normal"
	}
}

// Raise returns the next higher priority, saturating at high.
func (p Priority) Raise() Priority {
	if p >= PriorityHigh {
		return PriorityHigh
	}
	return p + 1
}

// Lower returns the next lower priority, saturating at low.
func (p Priority) Lower() Priority {
	if p <= PriorityLow {
		return PriorityLow
	}
	return p - 1
}

// Action is a bulk command applied to one or more torrents.
type Action string

const (
	ActionStart      Action = "torrent-start"
	ActionStartNow   Action = "torrent-start-now"
	ActionStop       Action = "torrent-stop"
	ActionVerify     Action = "torrent-verify"
	ActionReannounce Action = "torrent-reannounce"
)

// Special values the daemon uses for ETA and ratio.
const (
	ETANotAvailable   = -1
	ETAUnknown        = -2
	RatioNotAvailable = -1
	RatioInfinite     = -2
)

// Torrent mirrors the torrent-get fields the dashboard requests.
type Torrent struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Status         Status     `json:"status"`
	PercentDone    float64    `json:"percentDone"`
	ETA            int64      `json:"eta"`
	RateDownload   int64      `json:"rateDownload"`
	RateUpload     int64      `json:"rateUpload"`
	UploadRatio    float64    `json:"uploadRatio"`
	TotalSize      int64      `json:"totalSize"`
	SizeWhenDone   int64      `json:"sizeWhenDone"`
	LeftUntilDone  int64      `json:"leftUntilDone"`
	DoneDate       int64      `json:"doneDate"`
	AddedDate      int64      `json:"addedDate"`
	DownloadDir    string     `json:"downloadDir"`
	Error          int        `json:"error"`
	ErrorString    string     `json:"errorString"`
	PeersConnected int        `json:"peersConnected"`
	Files          []File     `json:"files"`
	FileStats      []FileStat `json:"fileStats"`
}

// torrentFields lists the torrent-get fields matching Torrent's json tags.
var torrentFields = []string{
	"id", "name", "status", "percentDone", "eta", "rateDownload", "rateUpload",
	"uploadRatio", "totalSize", "sizeWhenDone", "leftUntilDone", "doneDate",
	"addedDate", "downloadDir", "error", "errorString", "peersConnected",
	"files", "fileStats",
}

// File is one manifest entry as declared by the torrent.
type File struct {
	Name           string `json:"name"`
	Length         int64  `json:"length"`
	BytesCompleted int64  `json:"bytesCompleted"`
}

// FileStat carries the mutable per-file settings.
type FileStat struct {
	BytesCompleted int64    `json:"bytesCompleted"`
	Wanted         bool     `json:"wanted"`
	Priority       Priority `json:"priority"`
}

// JobFile is the merged view of File and FileStat used by the UI.
type JobFile struct {
	Index     int
	Path      string
	Size      int64
	Completed int64
	Priority  Priority
	Wanted    bool
	Done      bool
}

// Manifest merges Files and FileStats by index.
func (t Torrent) Manifest() []JobFile {
	if len(t.Files) == 0 {
		return nil
	}
	out := make([]JobFile, len(t.Files))
	for i, f := range t.Files {
		jf := JobFile{
			Index:     i,
			Path:      f.Name,
			Size:      f.Length,
			Completed: f.BytesCompleted,
			Wanted:    true,
			Done:      f.Length > 0 && f.BytesCompleted >= f.Length,
		}
		if i < len(t.FileStats) {
			jf.Priority = t.FileStats[i].Priority
			jf.Wanted = t.FileStats[i].Wanted
		}
		out[i] = jf
	}
	return out
}

// Paused reports whether the torrent is stopped.
func (t Torrent) Paused() bool {
	return t.Status == StatusStopped
}

// ParsedDoneDate returns DoneDate as time.Time (zero when unset).
func (t Torrent) ParsedDoneDate() time.Time {
	return unixTime(t.DoneDate)
}

// ParsedAddedDate returns AddedDate as time.Time (zero when unset).
func (t Torrent) ParsedAddedDate() time.Time {
	return unixTime(t.AddedDate)
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// SessionStats mirrors the session-stats payload.
type SessionStats struct {
	ActiveTorrentCount int        `json:"activeTorrentCount"`
	PausedTorrentCount int        `json:"pausedTorrentCount"`
	TorrentCount       int        `json:"torrentCount"`
	DownloadSpeed      int64      `json:"downloadSpeed"`
	UploadSpeed        int64      `json:"uploadSpeed"`
	Cumulative         Cumulative `json:"cumulative-stats"`
	Current            Cumulative `json:"current-stats"`
}

// Cumulative aggregates transfer totals.
type Cumulative struct {
	UploadedBytes   int64 `json:"uploadedBytes"`
	DownloadedBytes int64 `json:"downloadedBytes"`
	FilesAdded      int64 `json:"filesAdded"`
	SessionCount    int64 `json:"sessionCount"`
	SecondsActive   int64 `json:"secondsActive"`
}

type rpcRequest struct {
	Method    string `json:"method"`
	Arguments any    `json:"arguments,omitempty"`
	Tag       int64  `json:"tag,omitempty"`
}

type rpcResponse struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments"`
	Tag       int64           `json:"tag"`
}

type torrentGetResponse struct {
	Torrents []Torrent `json:"torrents"`
}
