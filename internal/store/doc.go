// Package store persists completed review runs to SQLite. It is CLI
// plumbing around the engine: the check command records each run and its
// findings, the report command reads them back. The review core never
// touches the store.
package store
