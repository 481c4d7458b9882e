package pipeline

import (
	"context"
	"path/filepath"

	"dubber/internal/media/ffmpeg"
	"dubber/internal/segments"
	"dubber/internal/services"
	"dubber/internal/subtitles"
)

// Job carries the state for dubbing one target language. The batch
// orchestrator prepares the shared fields (video, audio, duration, sequence
// copy) before handing the job to RunLanguage.
type Job struct {
	Dir           string
	SourceLang    string
	TargetLang    string
	VideoPath     string
	AudioPath     string
	Duration      float64
	Sequence      segments.Sequence
	BurnSubtitles bool

	// Outputs, set by RunLanguage.
	SubtitlePath string
	OutputPath   string
}

// RunLanguage runs the per-language stages against the job's own sequence
// copy and workspace. Cancellation is checked between stages; partial
// artifacts stay in the workspace for diagnosis.
func (p *Pipeline) RunLanguage(ctx context.Context, job *Job) error {
	if err := p.TranslateAll(ctx, job.Sequence, job.SourceLang, job.TargetLang); err != nil {
		return err
	}

	job.SubtitlePath = filepath.Join(job.Dir, "subtitles.srt")
	if err := subtitles.WriteSRT(job.SubtitlePath, job.Sequence, subtitles.Translated); err != nil {
		return services.Wrap(services.ErrExternalTool, StageTranslate, "write subtitles", job.SubtitlePath, err)
	}

	if err := p.SynthesizeAll(ctx, job.Sequence, job.TargetLang, job.Dir); err != nil {
		return err
	}
	if err := p.AlignAll(ctx, job.Sequence); err != nil {
		return err
	}

	composite, err := p.Mix(ctx, job.Sequence, job.Duration, job.Dir)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	p.observe(StageMux, 0, "muxing dubbed video")
	job.OutputPath = filepath.Join(job.Dir, dubbedVideoName)
	req := ffmpeg.MuxRequest{
		VideoPath:  job.VideoPath,
		AudioPath:  composite,
		OutputPath: job.OutputPath,
	}
	if job.BurnSubtitles {
		req.SubtitlePath = job.SubtitlePath
	}
	if err := p.deps.Media.Mux(ctx, req); err != nil {
		job.OutputPath = ""
		return services.Wrap(services.ErrExternalTool, StageMux, "mux", job.VideoPath, err)
	}
	p.observe(StageMux, 1, "dubbed video ready")
	return nil
}
