package align

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"dubber/internal/logging"
)

// Default tempo band. Stretches outside it make speech hard to follow, so the
// factor is clamped and the overrun handled by truncation instead.
const (
	DefaultStretchMin = 0.85
	DefaultStretchMax = 1.25
)

// skipThreshold is how close to unity a stretch must be before it is skipped
// entirely; near-unity atempo passes add audible artifacts for no benefit.
const skipThreshold = 0.05

// overrunTolerance is the fraction by which a fitted clip may exceed its time
// budget before it is hard-truncated.
const overrunTolerance = 0.05

// Prober measures a clip's playback duration.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Retimer performs the tempo and truncation transforms.
type Retimer interface {
	AdjustTempo(ctx context.Context, source, dest string, factor float64) error
	Truncate(ctx context.Context, source, dest string, seconds float64) error
}

// Aligner forces synthesized clips into their segments' time budgets.
type Aligner struct {
	prober  Prober
	retimer Retimer
	logger  *slog.Logger

	stretchMin float64
	stretchMax float64
}

// New constructs an aligner with the default stretch band.
func New(prober Prober, retimer Retimer, logger *slog.Logger) *Aligner {
	return &Aligner{
		prober:     prober,
		retimer:    retimer,
		logger:     logging.NewComponentLogger(logger, "aligner"),
		stretchMin: DefaultStretchMin,
		stretchMax: DefaultStretchMax,
	}
}

// SetBand overrides the stretch band. Invalid bounds are ignored.
func (a *Aligner) SetBand(min, max float64) {
	if a == nil || min <= 0 || max <= min {
		return
	}
	a.stretchMin = min
	a.stretchMax = max
}

// Align returns a clip whose playback duration fits targetDuration within
// tolerance. The result is the input path (no work needed or probing failed),
// a stretched copy, or a stretched-then-truncated copy. Timing drift is never
// an error: the worst case is a clamped stretch plus truncation, logged as a
// warning.
func (a *Aligner) Align(ctx context.Context, clipPath string, targetDuration float64) (string, error) {
	if targetDuration <= 0 {
		return "", fmt.Errorf("align: non-positive target duration %.3f", targetDuration)
	}

	duration, err := a.prober.Duration(ctx, clipPath)
	if err != nil || duration <= 0 {
		// Unreadable or empty clip: pass through rather than failing the job.
		a.logger.Warn("clip duration unreadable, skipping alignment",
			logging.String("clip", clipPath),
			logging.Error(err),
		)
		return clipPath, nil
	}

	speedFactor := duration / targetDuration
	clamped := clamp(speedFactor, a.stretchMin, a.stretchMax)
	if clamped != speedFactor {
		a.logger.Warn("stretch factor outside safe band, clamping",
			logging.String("clip", clipPath),
			logging.Float64("speed_factor", speedFactor),
			logging.Float64("clamped", clamped),
			logging.Float64("target_seconds", targetDuration),
		)
	}

	fitted := clipPath
	if math.Abs(clamped-1.0) >= skipThreshold {
		stretched := derivedPath(clipPath, "adjusted")
		if err := a.retimer.AdjustTempo(ctx, clipPath, stretched, clamped); err != nil {
			return "", fmt.Errorf("align: %w", err)
		}
		fitted = stretched
	}

	// Re-measure: a clamped factor may not have fully compensated.
	fittedDuration, err := a.prober.Duration(ctx, fitted)
	if err != nil {
		a.logger.Warn("stretched clip duration unreadable, keeping as-is",
			logging.String("clip", fitted),
			logging.Error(err),
		)
		return fitted, nil
	}
	if fittedDuration > targetDuration*(1+overrunTolerance) {
		truncated := derivedPath(clipPath, "fitted")
		if err := a.retimer.Truncate(ctx, fitted, truncated, targetDuration); err != nil {
			return "", fmt.Errorf("align: %w", err)
		}
		a.logger.Warn("clip truncated to its time budget",
			logging.String("clip", clipPath),
			logging.Float64("stretched_seconds", fittedDuration),
			logging.Float64("target_seconds", targetDuration),
		)
		return truncated, nil
	}
	return fitted, nil
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func derivedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + suffix + ext
}
