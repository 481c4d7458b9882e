// Package config loads, normalizes, and validates the TOML configuration
// that drives the dubbing pipeline.
package config
