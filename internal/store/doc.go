// Package store provides SQLite-backed durable storage for digest
// snapshots.
//
// The store keeps two tables:
//   - Digests: content-addressed canonical payloads (one row per unique
//     payload; re-saving an identical digest is a no-op)
//   - Runs: one row per build invocation, linking a run id to the digest
//     it produced, for audit of repeated builds
//
// Digest identity is the content address of the canonical payload bytes
// (see internal/canon), so two builds that produce byte-identical payloads
// share a single digests row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
