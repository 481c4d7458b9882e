package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dubber/internal/services"
)

// Remote sources are fetched with the best mp4-compatible streams and merged
// into a single container so downstream probing sees one file.
const formatSelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// Fetcher downloads remote video sources via yt-dlp.
type Fetcher struct {
	binary string
	run    services.CommandRunner
}

// New constructs a fetcher for the given yt-dlp binary.
func New(binary string) *Fetcher {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Fetcher{binary: binary, run: services.DefaultCommandRunner}
}

// WithCommandRunner substitutes the process executor (for tests).
func (f *Fetcher) WithCommandRunner(run services.CommandRunner) {
	if f != nil && run != nil {
		f.run = run
	}
}

// Download fetches the remote source into dest.
func (f *Fetcher) Download(ctx context.Context, url, dest string) error {
	if strings.TrimSpace(url) == "" || strings.TrimSpace(dest) == "" {
		return errors.New("download: url and dest required")
	}
	args := []string{
		"-f", formatSelector,
		"--merge-output-format", "mp4",
		"--no-warnings",
		"-o", dest,
		url,
	}
	if err := f.run(ctx, f.binary, args...); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return nil
}

// IsRemote reports whether the source reference is a URL rather than a local
// file path.
func IsRemote(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
