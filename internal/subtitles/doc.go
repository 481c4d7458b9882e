// Package subtitles generates and parses SRT subtitle files from timed
// segment sequences.
package subtitles
