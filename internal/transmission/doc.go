// Package transmission provides a JSON-RPC client for the Transmission daemon.
//
// # Overview
//
// The Gateway interface is the set of daemon operations the dashboard uses.
// Client implements it over HTTP; tests substitute fakes.
//
//   - client.go: request/response handling and the Gateway methods
//   - types.go: torrent, file and session-stats structures mirroring the RPC schema
//
// # Client Usage
//
//	client, err := transmission.NewClient(transmission.Options{
//		URL: "http://127.0.0.1:9091/transmission/rpc",
//	})
//	if err != nil {
//		return err
//	}
//	torrents, err := client.Torrents(ctx)
//
// # Session Handshake
//
// Transmission guards its RPC endpoint with X-Transmission-Session-Id. The
// first request (and any request after the daemon restarts) receives a 409
// carrying a fresh id; the client stores it and sends the request once more.
// Nothing else is retried: a failed poll is picked up again on the next tick
// and a failed command is left to the operator.
//
// # Methods
//
//   - torrent-get: Torrents
//   - session-stats: SessionStats
//   - torrent-start, torrent-stop, torrent-verify, torrent-start-now,
//     torrent-reannounce: Apply
//   - torrent-rename-path: Rename
//   - torrent-add (base64 metainfo): Add
//   - torrent-remove: Remove
//   - torrent-set (priority-high/normal/low): SetFilePriority
//
// # Error Handling
//
// Transport and HTTP status failures are wrapped with fmt.Errorf. A reply
// whose result is not "success" becomes an *RPCError carrying the method and
// the daemon's message.
//
// # Timeouts
//
// The underlying http.Client has no timeout. A hung daemon stalls only the
// call that hit it; callers bound calls through the context they pass in.
//
// # Thread Safety
//
// Client is safe for concurrent use. The session id is guarded by a mutex.
package transmission
