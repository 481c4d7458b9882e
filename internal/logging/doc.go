// Package logging builds the process-wide slog logger and provides the
// attribute helpers and standardized field keys used throughout dubber.
package logging
