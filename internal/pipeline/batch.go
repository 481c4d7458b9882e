package pipeline

import (
	"context"
	"errors"

	"dubber/internal/language"
	"dubber/internal/logging"
	"dubber/internal/services"
	"dubber/internal/subtitles"
	"dubber/internal/workspace"
)

// BatchRequest describes one dubbing batch: a single source fanned out to one
// or more target languages.
type BatchRequest struct {
	Source        string
	SourceLang    string
	TargetLangs   []string
	BurnSubtitles bool
}

// LanguageResult holds one target language's artifacts. Err is set and the
// paths are empty when that language failed.
type LanguageResult struct {
	SubtitlePath string
	VideoPath    string
	Err          error
}

// BatchResult collects the shared and per-language artifacts of a batch.
type BatchResult struct {
	SourceVideo      string
	OriginalSubtitle string
	DetectedLanguage string
	Languages        map[string]LanguageResult
}

// RunBatch acquires and transcribes the source once, then runs the
// per-language stages for each requested target. A failing language never
// aborts the others; acquisition or transcription failure aborts the batch.
func (p *Pipeline) RunBatch(ctx context.Context, job *workspace.Job, req BatchRequest) (BatchResult, error) {
	var result BatchResult
	if len(req.TargetLangs) == 0 {
		return result, services.Wrap(services.ErrValidation, "", "batch", "at least one target language required", nil)
	}

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = language.Auto
	}
	if sourceLang != language.Auto {
		sourceLang = language.Normalize(sourceLang)
		if !language.Known(sourceLang) {
			return result, services.Wrap(services.ErrValidation, "", "batch", "unsupported source language "+req.SourceLang, nil)
		}
	}

	targets := make([]string, 0, len(req.TargetLangs))
	for _, tag := range req.TargetLangs {
		normalized := language.Normalize(tag)
		if !language.Known(normalized) {
			return result, services.Wrap(services.ErrValidation, "", "batch", "unsupported target language "+tag, nil)
		}
		targets = append(targets, normalized)
	}

	videoPath, audioPath, err := p.Acquire(ctx, req.Source, job.Dir)
	if err != nil {
		return result, err
	}
	result.SourceVideo = videoPath

	duration, err := p.deps.Prober.Duration(ctx, videoPath)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, StageAcquire, "probe duration", videoPath, err)
	}

	seq, detected, err := p.Transcribe(ctx, audioPath, job.Dir, sourceLang)
	if err != nil {
		return result, err
	}
	result.DetectedLanguage = detected

	result.OriginalSubtitle = job.Path("original.srt")
	if err := subtitles.WriteSRT(result.OriginalSubtitle, seq, subtitles.Original); err != nil {
		return result, services.Wrap(services.ErrExternalTool, StageTranscribe, "write subtitles", result.OriginalSubtitle, err)
	}

	result.Languages = make(map[string]LanguageResult, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		langDir, err := job.LanguageDir(target)
		if err != nil {
			result.Languages[target] = LanguageResult{Err: err}
			continue
		}

		langJob := &Job{
			Dir:           langDir,
			SourceLang:    detected,
			TargetLang:    target,
			VideoPath:     videoPath,
			AudioPath:     audioPath,
			Duration:      duration,
			Sequence:      seq.Clone(),
			BurnSubtitles: req.BurnSubtitles,
		}
		if err := p.RunLanguage(ctx, langJob); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				result.Languages[target] = LanguageResult{Err: err}
				return result, err
			}
			p.logger.Error("language dub failed",
				logging.String(logging.FieldLanguage, target),
				logging.Bool("fatal", services.IsFatal(err)),
				logging.Error(err))
			result.Languages[target] = LanguageResult{Err: err}
			continue
		}
		result.Languages[target] = LanguageResult{
			SubtitlePath: langJob.SubtitlePath,
			VideoPath:    langJob.OutputPath,
		}
	}
	return result, nil
}
