package mix

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"dubber/internal/logging"
	"dubber/internal/segments"
)

// Loudness normalization target for the composite track. Summing N delayed
// streams through amix drops the level by roughly 1/N, so the mix is pulled
// back to a consistent integrated loudness regardless of segment count.
const loudnormFilter = "loudnorm=I=-14:TP=-1.0:LRA=11"

// FilterRunner executes an ffmpeg filter graph over ordered inputs.
type FilterRunner interface {
	RunFilter(ctx context.Context, inputs []string, filterGraph, outputLabel, dest string, durationCap float64) error
}

// Mixer assembles all per-segment aligned clips into one composite track
// spanning the source duration.
type Mixer struct {
	runner FilterRunner
	logger *slog.Logger
}

// New constructs a mixer.
func New(runner FilterRunner, logger *slog.Logger) *Mixer {
	return &Mixer{runner: runner, logger: logging.NewComponentLogger(logger, "mixer")}
}

// Mix writes the composite track to outputPath and returns that path. When no
// segment has a usable clip the returned path is empty and no file is written;
// the caller decides what an empty composite means for the job.
func (m *Mixer) Mix(ctx context.Context, seq segments.Sequence, totalDuration float64, outputPath string) (string, error) {
	if totalDuration <= 0 {
		return "", fmt.Errorf("mix: non-positive total duration %.3f", totalDuration)
	}

	var (
		inputs []string
		delays []int
	)
	for i, seg := range seq {
		clip := strings.TrimSpace(seg.AlignedClip)
		if clip == "" {
			continue
		}
		if _, err := os.Stat(clip); err != nil {
			// A synthesis or alignment failure left this slot empty; it mixes
			// as silence rather than failing the track.
			m.logger.Warn("segment clip missing, leaving silent slot",
				logging.Int(logging.FieldSegment, i),
				logging.String("clip", clip),
				logging.Error(err),
			)
			continue
		}
		inputs = append(inputs, clip)
		delays = append(delays, int(math.Round(seg.Start*1000)))
	}

	if len(inputs) == 0 {
		m.logger.Warn("no usable clips, skipping composite track")
		return "", nil
	}

	graph := BuildFilterGraph(delays)
	if err := m.runner.RunFilter(ctx, inputs, graph, "[out]", outputPath, totalDuration); err != nil {
		return "", fmt.Errorf("mix: %w", err)
	}

	m.logger.Info("composite track mixed",
		logging.Int("clips", len(inputs)),
		logging.Float64("duration_seconds", totalDuration),
		logging.String("path", outputPath),
	)
	return outputPath, nil
}

// BuildFilterGraph produces the adelay/amix/loudnorm filter_complex for the
// given per-input delays (milliseconds). Input order must match the -i order.
func BuildFilterGraph(delays []int) string {
	var b strings.Builder
	for i, delay := range delays {
		// adelay takes one value per channel; repeating covers stereo.
		fmt.Fprintf(&b, "[%d:a]adelay=%d|%d[a%d];", i, delay, delay, i)
	}
	for i := range delays {
		fmt.Fprintf(&b, "[a%d]", i)
	}
	fmt.Fprintf(&b, "amix=inputs=%d:duration=longest,%s[out]", len(delays), loudnormFilter)
	return b.String()
}
