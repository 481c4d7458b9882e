package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dubber/internal/services"
)

const defaultTimeout = 60 * time.Second

// Synthesizer renders translated text to speech clips via the edge-tts CLI.
type Synthesizer struct {
	binary  string
	timeout time.Duration
	run     services.CommandRunner
}

// New constructs a synthesizer around the given edge-tts binary.
func New(binary string, timeoutSeconds int) *Synthesizer {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "edge-tts"
	}
	timeout := defaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Synthesizer{binary: binary, timeout: timeout, run: services.DefaultCommandRunner}
}

// WithCommandRunner substitutes the process executor (for tests).
func (s *Synthesizer) WithCommandRunner(run services.CommandRunner) {
	if s != nil && run != nil {
		s.run = run
	}
}

// Synthesize speaks text with the given voice and writes the audio to
// outputPath. Empty text is an error; callers skip silent segments before
// reaching the synthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("synthesize: empty text")
	}
	if strings.TrimSpace(voice) == "" {
		return errors.New("synthesize: voice required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("synthesize: output path required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := []string{
		"--voice", voice,
		"--text", text,
		"--write-media", outputPath,
	}
	if err := s.run(ctx, s.binary, args...); err != nil {
		return fmt.Errorf("synthesize voice %s: %w", voice, err)
	}
	return nil
}
