// Package preflight validates the environment before a dubbing run: external
// binaries, directory access, free disk space, and translator reachability.
package preflight
