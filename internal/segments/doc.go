// Package segments holds the timed-segment data model shared by every
// pipeline stage.
package segments
