// Package workspace manages isolated per-job working directories under a
// locked workspace root.
package workspace
