package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MuxRequest describes the inputs for the final mux.
type MuxRequest struct {
	VideoPath string
	AudioPath string
	// SubtitlePath, when set, is burned into the video frames. Burning forces
	// a video re-encode; without it the video stream is copied untouched.
	SubtitlePath string
	OutputPath   string
}

// Mux combines the source video with the composite dubbed track. The dubbed
// audio replaces the original track entirely.
func (t *Toolkit) Mux(ctx context.Context, req MuxRequest) error {
	if req.VideoPath == "" || req.AudioPath == "" || req.OutputPath == "" {
		return errors.New("mux: video, audio, and output paths required")
	}

	args := []string{
		"-y",
		"-i", req.VideoPath,
		"-i", req.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
	}
	if strings.TrimSpace(req.SubtitlePath) != "" {
		args = append(args, "-vf", "subtitles="+EscapeFilterPath(req.SubtitlePath))
	} else {
		args = append(args, "-c:v", "copy")
	}
	args = append(args, "-shortest", req.OutputPath)

	if err := t.run(ctx, t.binary, args...); err != nil {
		return fmt.Errorf("mux: %w", err)
	}
	return nil
}

// EscapeFilterPath escapes a path for use inside an ffmpeg filter argument.
// Backslashes, colons, and quotes all have meaning in filter syntax and
// appear routinely in real paths (Windows drives, timestamps in names).
func EscapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
	)
	return replacer.Replace(path)
}
