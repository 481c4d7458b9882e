package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dubber/internal/services"
)

// Toolkit invokes ffmpeg for the discrete whole-file operations the pipeline
// needs: audio extraction, tempo adjustment, truncation, filter-graph mixing,
// and final muxing.
type Toolkit struct {
	binary string
	run    services.CommandRunner
}

// NewToolkit constructs a toolkit for the given ffmpeg binary.
func NewToolkit(binary string) *Toolkit {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Toolkit{binary: binary, run: services.DefaultCommandRunner}
}

// WithCommandRunner substitutes the process executor (for tests).
func (t *Toolkit) WithCommandRunner(run services.CommandRunner) {
	if t != nil && run != nil {
		t.run = run
	}
}

// ExtractAudio demuxes the source's audio into a mono 16 kHz PCM WAV, the
// format the transcription engine expects.
func (t *Toolkit) ExtractAudio(ctx context.Context, source, dest string) error {
	if source == "" || dest == "" {
		return errors.New("extract audio: source and dest required")
	}
	args := []string{
		"-y", "-i", source,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		dest,
	}
	if err := t.run(ctx, t.binary, args...); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

// AdjustTempo re-times an audio clip by the given factor (>1 speeds up).
// The factor must stay within atempo's single-pass range (0.5, 2.0).
func (t *Toolkit) AdjustTempo(ctx context.Context, source, dest string, factor float64) error {
	if factor <= 0.5 || factor >= 2.0 {
		return fmt.Errorf("adjust tempo: factor %.3f outside single-pass atempo range", factor)
	}
	args := []string{
		"-y", "-i", source,
		"-filter:a", "atempo=" + strconv.FormatFloat(factor, 'f', -1, 64),
		dest,
	}
	if err := t.run(ctx, t.binary, args...); err != nil {
		return fmt.Errorf("adjust tempo: %w", err)
	}
	return nil
}

// Truncate copies the clip's first seconds into dest, discarding the rest.
func (t *Toolkit) Truncate(ctx context.Context, source, dest string, seconds float64) error {
	if seconds <= 0 {
		return fmt.Errorf("truncate: non-positive duration %.3f", seconds)
	}
	args := []string{
		"-y", "-i", source,
		"-t", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-acodec", "copy",
		dest,
	}
	if err := t.run(ctx, t.binary, args...); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

// RunFilter executes an arbitrary filter_complex graph over the inputs,
// mapping the labeled output stream into dest. A positive durationCap adds
// -t so the output cannot outrun the source media.
func (t *Toolkit) RunFilter(ctx context.Context, inputs []string, filterGraph, outputLabel, dest string, durationCap float64) error {
	if len(inputs) == 0 {
		return errors.New("run filter: at least one input required")
	}
	args := []string{"-y"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}
	args = append(args, "-filter_complex", filterGraph, "-map", outputLabel)
	if durationCap > 0 {
		args = append(args, "-t", strconv.FormatFloat(durationCap, 'f', 3, 64))
	}
	args = append(args, dest)
	if err := t.run(ctx, t.binary, args...); err != nil {
		return fmt.Errorf("run filter: %w", err)
	}
	return nil
}
