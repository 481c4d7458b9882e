// Package ffmpeg wraps the discrete ffmpeg invocations used by the dubbing
// pipeline. Every operation takes file paths in and out; nothing is streamed.
package ffmpeg
