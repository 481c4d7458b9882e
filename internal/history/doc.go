// Package history keeps a SQLite-backed log of completed dub runs.
package history
