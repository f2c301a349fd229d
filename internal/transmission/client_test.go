package transmission

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recordedCall struct {
	Method    string
	Arguments map[string]any
	SessionID string
}

type fakeDaemon struct {
	mu        sync.Mutex
	sessionID string
	calls     []recordedCall
	conflicts int
	reply     func(method string) (string, any)
}

func (d *fakeDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if r.Header.Get(sessionIDHeader) != d.sessionID {
		d.conflicts++
		w.Header().Set(sessionIDHeader, d.sessionID)
		w.WriteHeader(http.StatusConflict)
		return
	}

	var req struct {
		Method    string         `json:"method"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.calls = append(d.calls, recordedCall{Method: req.Method, Arguments: req.Arguments, SessionID: r.Header.Get(sessionIDHeader)})

	result, args := "success", any(map[string]any{})
	if d.reply != nil {
		result, args = d.reply(req.Method)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result, "arguments": args})
}

func (d *fakeDaemon) recorded() []recordedCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]recordedCall(nil), d.calls...)
}

func newTestClient(t *testing.T, daemon *fakeDaemon) *Client {
	t.Helper()
	server := httptest.NewServer(daemon)
	t.Cleanup(server.Close)

	c, err := NewClient(Options{URL: server.URL + "/transmission/rpc"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.String() != defaultRPCURL {
		t.Fatalf("default endpoint = %q, want %q", u.String(), defaultRPCURL)
	}

	u, err = parseEndpoint("nas.local:9091")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "nas.local:9091" || u.Path != "/transmission/rpc" {
		t.Fatalf("endpoint = %q, want http://nas.local:9091/transmission/rpc", u.String())
	}

	u, err = parseEndpoint("https://example.com/custom/rpc?x=1#frag")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.String() != "https://example.com/custom/rpc" {
		t.Fatalf("endpoint not normalized: %q", u.String())
	}

	if _, err := parseEndpoint("http://"); err == nil {
		t.Fatal("expected error for missing host")
	}
}

func TestClient_SessionHandshakeRepeatsOnce(t *testing.T) {
	daemon := &fakeDaemon{sessionID: "abc123"}
	c := newTestClient(t, daemon)
	ctx := testContext(t)

	if err := c.Apply(ctx, ActionStop, 7); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if err := c.Apply(ctx, ActionStart, 7); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	calls := daemon.recorded()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if daemon.conflicts != 1 {
		t.Fatalf("conflicts = %d, want 1 (session id cached after first handshake)", daemon.conflicts)
	}
	if calls[0].Method != "torrent-stop" || calls[1].Method != "torrent-start" {
		t.Fatalf("methods = %q, %q", calls[0].Method, calls[1].Method)
	}
	if calls[1].SessionID != "abc123" {
		t.Fatalf("session id = %q, want abc123", calls[1].SessionID)
	}
}

func TestClient_TorrentsDecodesPayload(t *testing.T) {
	daemon := &fakeDaemon{
		sessionID: "s",
		reply: func(method string) (string, any) {
			return "success", map[string]any{
				"torrents": []map[string]any{{
					"id":          3,
					"name":        "ubuntu.iso",
					"status":      4,
					"percentDone": 0.5,
					"downloadDir": "/srv/dl",
					"files":       []map[string]any{{"name": "ubuntu/ubuntu.iso", "length": 100, "bytesCompleted": 100}},
					"fileStats":   []map[string]any{{"bytesCompleted": 100, "wanted": true, "priority": 1}},
				}},
			}
		},
	}
	c := newTestClient(t, daemon)

	torrents, err := c.Torrents(testContext(t))
	if err != nil {
		t.Fatalf("Torrents returned error: %v", err)
	}
	if len(torrents) != 1 {
		t.Fatalf("torrents = %d, want 1", len(torrents))
	}
	got := torrents[0]
	if got.ID != 3 || got.Status != StatusDownload || got.PercentDone != 0.5 {
		t.Fatalf("torrent = %#v", got)
	}
	manifest := got.Manifest()
	if len(manifest) != 1 || manifest[0].Path != "ubuntu/ubuntu.iso" || !manifest[0].Done || manifest[0].Priority != PriorityHigh {
		t.Fatalf("manifest = %#v", manifest)
	}

	calls := daemon.recorded()
	fields, ok := calls[0].Arguments["fields"].([]any)
	if !ok || len(fields) != len(torrentFields) {
		t.Fatalf("fields argument = %#v", calls[0].Arguments["fields"])
	}
}

func TestClient_NonSuccessResultIsRPCError(t *testing.T) {
	daemon := &fakeDaemon{
		sessionID: "s",
		reply: func(string) (string, any) {
			return "invalid or corrupt torrent file", nil
		},
	}
	c := newTestClient(t, daemon)

	err := c.Remove(testContext(t), 1, true)
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("error = %v, want *RPCError", err)
	}
	if rpcErr.Method != "torrent-remove" || rpcErr.Result != "invalid or corrupt torrent file" {
		t.Fatalf("rpc error = %#v", rpcErr)
	}
}

func TestClient_CommandArguments(t *testing.T) {
	daemon := &fakeDaemon{sessionID: "s"}
	c := newTestClient(t, daemon)
	ctx := testContext(t)

	path := filepath.Join(t.TempDir(), "linux.torrent")
	if err := os.WriteFile(path, []byte("d4:infoe"), 0o644); err != nil {
		t.Fatalf("write torrent: %v", err)
	}

	if err := c.Rename(ctx, 9, "old-name", "new-name"); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if err := c.Add(ctx, path, true); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := c.Remove(ctx, 9, true); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := c.SetFilePriority(ctx, 9, 2, PriorityLow); err != nil {
		t.Fatalf("SetFilePriority returned error: %v", err)
	}

	calls := daemon.recorded()
	if len(calls) != 4 {
		t.Fatalf("calls = %d, want 4", len(calls))
	}

	rename := calls[0]
	if rename.Method != "torrent-rename-path" || rename.Arguments["path"] != "old-name" || rename.Arguments["name"] != "new-name" {
		t.Fatalf("rename call = %#v", rename)
	}

	add := calls[1]
	wantMeta := base64.StdEncoding.EncodeToString([]byte("d4:infoe"))
	if add.Method != "torrent-add" || add.Arguments["metainfo"] != wantMeta || add.Arguments["paused"] != true {
		t.Fatalf("add call = %#v", add)
	}

	remove := calls[2]
	if remove.Method != "torrent-remove" || remove.Arguments["delete-local-data"] != true {
		t.Fatalf("remove call = %#v", remove)
	}

	set := calls[3]
	low, ok := set.Arguments["priority-low"].([]any)
	if set.Method != "torrent-set" || !ok || len(low) != 1 || low[0] != float64(2) {
		t.Fatalf("torrent-set call = %#v", set)
	}
}

func TestClient_RejectsInvalidInputWithoutCalling(t *testing.T) {
	daemon := &fakeDaemon{sessionID: "s"}
	c := newTestClient(t, daemon)
	ctx := testContext(t)

	if err := c.Apply(ctx, ActionVerify); err == nil {
		t.Fatal("Apply with no ids should fail")
	}
	if err := c.Rename(ctx, 1, "a", "   "); err == nil {
		t.Fatal("Rename with blank name should fail")
	}
	if err := c.SetFilePriority(ctx, 1, -1, PriorityHigh); err == nil {
		t.Fatal("SetFilePriority with negative index should fail")
	}
	if err := c.Add(ctx, filepath.Join(t.TempDir(), "missing.torrent"), false); err == nil {
		t.Fatal("Add with missing file should fail")
	}
	if n := len(daemon.recorded()); n != 0 {
		t.Fatalf("daemon received %d calls, want 0", n)
	}
}

func TestClient_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{URL: server.URL, Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.SessionStats(testContext(t)); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestClient_SendsBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":    "success",
			"arguments": map[string]any{"downloadSpeed": 10, "uploadSpeed": 5, "torrentCount": 2},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{URL: server.URL, Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	stats, err := c.SessionStats(testContext(t))
	if err != nil {
		t.Fatalf("SessionStats returned error: %v", err)
	}
	if stats.DownloadSpeed != 10 || stats.UploadSpeed != 5 || stats.TorrentCount != 2 {
		t.Fatalf("stats = %#v", stats)
	}
	if gotUser != "admin" || gotPass != "secret" {
		t.Fatalf("basic auth = %q/%q", gotUser, gotPass)
	}
}
