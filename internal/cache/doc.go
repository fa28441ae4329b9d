// Package cache persists upstream lookups between runs.
//
// Values are stored as JSON alongside the time they were written. Expiry is
// evaluated on read against a TTL supplied by the caller, so a stale entry is
// indistinguishable from a missing one. Two stores are provided: a SQLite file
// migrated with goose, and an in-memory store for tests and one-shot runs.
package cache
