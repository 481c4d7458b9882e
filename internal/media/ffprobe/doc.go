// Package ffprobe inspects media files (duration, stream layout) by invoking
// the ffprobe binary and parsing its JSON output.
package ffprobe
