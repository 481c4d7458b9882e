// Package whisper transcribes extracted audio with the faster-whisper CLI
// and converts its JSON output into timed segments.
package whisper
