package preflight

import (
	"context"

	"dubber/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config: the external
// binaries a run shells out to, workspace directory health, and translator
// endpoint reachability when one is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary("FFmpeg", cfg.Tools.FFmpeg, "audio extraction, alignment, mixing, muxing"),
		CheckBinary("FFprobe", cfg.Tools.FFprobe, "duration and stream probing"),
		CheckBinary("yt-dlp", cfg.Tools.YtDlp, "remote source acquisition"),
		CheckBinary("Whisper", cfg.Tools.Whisper, "transcription"),
		CheckBinary("edge-tts", cfg.Tools.EdgeTTS, "speech synthesis"),
		CheckDirectoryAccess("Workspace directory", cfg.Paths.WorkspaceDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckFreeSpace("Workspace free space", cfg.Paths.WorkspaceDir, minFreeBytes),
	}

	if cfg.Translator.BaseURL != "" {
		results = append(results, CheckTranslator(ctx, cfg.Translator.BaseURL))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
