// Package tree builds the collapsible file view of a single job.
//
// Build walks the job's download directory through an fs.FS and keeps only
// entries related to the job's manifest: ancestors and descendants of a
// manifest path, compared component by component. Unrelated entries in a
// shared download directory are recorded as excluded and never descended.
// Manifest paths that are not on disk yet are grafted in as Missing nodes.
// A download directory that cannot be listed, or has vanished, collapses to a
// single unreadable leaf.
//
// Node IDs are relative paths. State remembers open directories and the
// selection by ID, so a full rebuild on every refresh keeps what the operator
// expanded.
package tree
