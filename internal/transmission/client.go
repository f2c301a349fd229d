package transmission

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

// Gateway is the set of daemon operations the dashboard depends on.
// *Client implements it; tests substitute fakes.
type Gateway interface {
	Torrents(ctx context.Context) ([]Torrent, error)
	SessionStats(ctx context.Context) (SessionStats, error)
	Apply(ctx context.Context, action Action, ids ...int64) error
	Rename(ctx context.Context, id int64, path, name string) error
	Add(ctx context.Context, filePath string, paused bool) error
	Remove(ctx context.Context, id int64, deleteLocalData bool) error
	SetFilePriority(ctx context.Context, id int64, fileIndex int, priority Priority) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

const (
	defaultRPCURL    = "http://127.0.0.1:9091/transmission/rpc"
	defaultUserAgent = "spoiler/0.1"
	sessionIDHeader  = "X-Transmission-Session-Id"
	resultSuccess    = "success"
)

// RPCError is returned when the daemon answers with a non-success result.
type RPCError struct {
	Method string
	Result string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %s", e.Method, e.Result)
}

// Client talks to the Transmission JSON-RPC endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	username  string
	password  string

	mu        sync.Mutex
	sessionID string
}

// Options configure a Client.
type Options struct {
	URL      string
	Username string
	Password string
}

// NewClient builds a Client for the given RPC URL. No client-side timeout is
// applied; callers bound requests through their context.
func NewClient(opts Options) (*Client, error) {
	endpoint, err := parseEndpoint(opts.URL)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint:  endpoint,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		username:  opts.Username,
		password:  opts.Password,
	}, nil
}

// Torrents fetches every torrent with the fields the dashboard uses.
func (c *Client) Torrents(ctx context.Context) ([]Torrent, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	args := map[string]any{"fields": torrentFields}
	var payload torrentGetResponse
	if err := c.call(ctx, "torrent-get", args, &payload); err != nil {
		return nil, err
	}
	return payload.Torrents, nil
}

// SessionStats fetches aggregate transfer stats.
func (c *Client) SessionStats(ctx context.Context) (SessionStats, error) {
	if c == nil {
		return SessionStats{}, fmt.Errorf("client is nil")
	}
	var payload SessionStats
	if err := c.call(ctx, "session-stats", nil, &payload); err != nil {
		return SessionStats{}, err
	}
	return payload, nil
}

// Apply runs a bulk action against the given torrent ids.
func (c *Client) Apply(ctx context.Context, action Action, ids ...int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%s: no torrent ids", action)
	}
	return c.call(ctx, string(action), map[string]any{"ids": ids}, nil)
}

// Rename renames path (relative to the torrent root) to name.
func (c *Client) Rename(ctx context.Context, id int64, path, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rename: name is empty")
	}
	args := map[string]any{
		"ids":  []int64{id},
		"path": path,
		"name": name,
	}
	return c.call(ctx, "torrent-rename-path", args, nil)
}

// Add uploads the .torrent file at filePath as base64 metainfo so it works
// against remote daemons too.
func (c *Client) Add(ctx context.Context, filePath string, paused bool) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read torrent file: %w", err)
	}
	args := map[string]any{
		"metainfo": base64.StdEncoding.EncodeToString(raw),
		"paused":   paused,
	}
	return c.call(ctx, "torrent-add", args, nil)
}

// Remove deletes the torrent, optionally with its downloaded data.
func (c *Client) Remove(ctx context.Context, id int64, deleteLocalData bool) error {
	args := map[string]any{
		"ids":               []int64{id},
		"delete-local-data": deleteLocalData,
	}
	return c.call(ctx, "torrent-remove", args, nil)
}

// SetFilePriority sets the bandwidth priority of one file in a torrent.
func (c *Client) SetFilePriority(ctx context.Context, id int64, fileIndex int, priority Priority) error {
	if fileIndex < 0 {
		return fmt.Errorf("set priority: invalid file index %d", fileIndex)
	}
	key := "priority-normal"
	switch {
	case priority > PriorityNormal:
		key = "priority-high"
	case priority < PriorityNormal:
		key = "priority-low"
	}
	args := map[string]any{
		"ids": []int64{id},
		key:   []int{fileIndex},
	}
	return c.call(ctx, "torrent-set", args, nil)
}

func (c *Client) call(ctx context.Context, method string, args any, dest any) error {
	body, err := json.Marshal(rpcRequest{Method: method, Arguments: args})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return err
	}
	if resp.Result != resultSuccess {
		return &RPCError{Method: method, Result: resp.Result}
	}
	if dest == nil || len(resp.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Arguments, dest); err != nil {
		return fmt.Errorf("decode %s arguments: %w", method, err)
	}
	return nil
}

// errSessionExpired signals a 409 carrying a fresh session id.
var errSessionExpired = errors.New("session id expired")

// post sends the request, repeating it once when the daemon hands out a new
// session id. That exchange is part of the protocol, not a retry policy.
func (c *Client) post(ctx context.Context, body []byte) (rpcResponse, error) {
	resp, err := c.postOnce(ctx, body)
	if errors.Is(err, errSessionExpired) {
		resp, err = c.postOnce(ctx, body)
	}
	return resp, err
}

func (c *Client) postOnce(ctx context.Context, body []byte) (rpcResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return rpcResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id := c.currentSessionID(); id != "" {
		req.Header.Set(sessionIDHeader, id)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return rpcResponse{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusConflict {
		if id := resp.Header.Get(sessionIDHeader); id != "" {
			c.setSessionID(id)
			return rpcResponse{}, errSessionExpired
		}
	}
	if resp.StatusCode >= 400 {
		return rpcResponse{}, fmt.Errorf("rpc endpoint returned status %d", resp.StatusCode)
	}

	var payload rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return rpcResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

func (c *Client) currentSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) setSessionID(id string) {
	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultRPCURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse rpc url %q: missing host", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/transmission/rpc"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
