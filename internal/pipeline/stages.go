package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dubber/internal/language"
	"dubber/internal/logging"
	"dubber/internal/segments"
	"dubber/internal/services"
	"dubber/internal/services/fetch"
	"dubber/internal/services/translate"
)

const (
	sourceVideoName    = "source.mp4"
	extractedAudioName = "audio.wav"
	compositeAudioName = "dubbed_audio.wav"
	dubbedVideoName    = "dubbed.mp4"
)

// Acquire resolves the source reference into a local video and an extracted
// mono 16 kHz audio track inside dir. Remote sources are fetched first; local
// paths are used in place.
func (p *Pipeline) Acquire(ctx context.Context, source, dir string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	videoPath := source
	if fetch.IsRemote(source) {
		p.observe(StageAcquire, 0, "downloading source")
		videoPath = filepath.Join(dir, sourceVideoName)
		if err := p.deps.Fetcher.Download(ctx, source, videoPath); err != nil {
			return "", "", services.Wrap(services.ErrExternalTool, StageAcquire, "download", source, err)
		}
	} else {
		if _, err := os.Stat(source); err != nil {
			return "", "", services.Wrap(services.ErrNotFound, StageAcquire, "stat", source, err)
		}
	}

	info, err := p.deps.Prober.Inspect(ctx, videoPath)
	if err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, StageAcquire, "probe", videoPath, err)
	}
	if !info.HasAudioStream() {
		return "", "", services.Wrap(services.ErrValidation, StageAcquire, "probe", "source has no audio stream", nil)
	}

	p.observe(StageAcquire, 0.5, "extracting audio")
	audioPath := filepath.Join(dir, extractedAudioName)
	if err := p.deps.Media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, StageAcquire, "extract", videoPath, err)
	}
	p.observe(StageAcquire, 1, "audio extracted")
	return videoPath, audioPath, nil
}

// Transcribe runs speech recognition and returns the initial segment sequence
// plus the detected (or confirmed) source-language tag.
func (p *Pipeline) Transcribe(ctx context.Context, audioPath, dir, sourceLang string) (segments.Sequence, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	p.observe(StageTranscribe, 0, "transcribing source audio")

	result, err := p.deps.Transcriber.Transcribe(ctx, audioPath, dir, sourceLang)
	if err != nil {
		return nil, "", services.Wrap(services.ErrExternalTool, StageTranscribe, "transcribe", audioPath, err)
	}
	if err := result.Segments.Validate(); err != nil {
		return nil, "", services.Wrap(services.ErrValidation, StageTranscribe, "validate", "transcript segments", err)
	}

	detected := sourceLang
	if sourceLang == language.Auto || sourceLang == "" {
		detected = language.Normalize(result.Language)
		if detected == "" {
			detected = result.Language
		}
	}
	p.observe(StageTranscribe, 1, fmt.Sprintf("%d segments, language %s", len(result.Segments), detected))
	return result.Segments, detected, nil
}

// TranslateAll fills TranslatedText for every segment in index order. A failed
// segment keeps an empty translation and is skipped downstream; only
// cancellation aborts the stage.
func (p *Pipeline) TranslateAll(ctx context.Context, seq segments.Sequence, sourceLang, targetLang string) error {
	total := len(seq)
	for i := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		translated, err := p.deps.Translator.Translate(ctx, translate.Request{
			Text:          seq[i].SourceText,
			SourceLang:    sourceLang,
			TargetLang:    targetLang,
			BudgetSeconds: seq[i].TimeBudget(),
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			p.logger.Warn("segment translation failed, leaving silent",
				logging.String(logging.FieldStage, StageTranslate),
				logging.String(logging.FieldLanguage, targetLang),
				logging.Int(logging.FieldSegment, i),
				logging.Error(err))
			continue
		}
		seq[i].TranslatedText = translated
		p.observe(StageTranslate, float64(i+1)/float64(total), fmt.Sprintf("translated %d/%d", i+1, total))
	}
	p.logger.Info("translation complete",
		logging.String(logging.FieldLanguage, targetLang),
		logging.Int("translated", seq.Translated()),
		logging.Int("total", total))
	return nil
}

// SynthesizeAll produces one clip per translated segment, dispatching up to
// synthWorkers calls concurrently. Each result lands in its own segment slot,
// so completion order does not matter. A failed segment stays clipless.
func (p *Pipeline) SynthesizeAll(ctx context.Context, seq segments.Sequence, targetLang, dir string) error {
	voice := p.voiceFor(targetLang)
	p.observe(StageSynthesize, 0, fmt.Sprintf("synthesizing with voice %s", voice))

	sem := make(chan struct{}, p.synthWorkers)
	var wg sync.WaitGroup

	for i := range seq {
		if err := ctx.Err(); err != nil {
			break
		}
		if seq[i].TranslatedText == "" {
			continue
		}
		clipPath := filepath.Join(dir, fmt.Sprintf("tts_%04d.mp3", i))

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, clipPath string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := p.deps.Synthesizer.Synthesize(ctx, seq[i].TranslatedText, voice, clipPath); err != nil {
				p.logger.Warn("segment synthesis failed, leaving silent",
					logging.String(logging.FieldStage, StageSynthesize),
					logging.String(logging.FieldLanguage, targetLang),
					logging.Int(logging.FieldSegment, i),
					logging.Error(err))
				return
			}
			seq[i].SynthesizedClip = clipPath
		}(i, clipPath)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	p.observe(StageSynthesize, 1, fmt.Sprintf("%d clips synthesized", seq.WithClips()))
	return nil
}

// AlignAll fits every synthesized clip into its segment's time budget.
// Alignment is best-effort: a failure keeps the unadjusted clip.
func (p *Pipeline) AlignAll(ctx context.Context, seq segments.Sequence) error {
	total := len(seq)
	for i := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		if seq[i].SynthesizedClip == "" {
			continue
		}
		aligned, err := p.deps.Aligner.Align(ctx, seq[i].SynthesizedClip, seq[i].TimeBudget())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			p.logger.Warn("alignment failed, using unadjusted clip",
				logging.String(logging.FieldStage, StageAlign),
				logging.Int(logging.FieldSegment, i),
				logging.Error(err))
			aligned = seq[i].SynthesizedClip
		}
		seq[i].AlignedClip = aligned
		p.observe(StageAlign, float64(i+1)/float64(total), fmt.Sprintf("aligned %d/%d", i+1, total))
	}
	return nil
}

// Mix assembles the aligned clips into one composite track in dir. A batch
// where every segment failed has nothing to dub, which is fatal for the
// language.
func (p *Pipeline) Mix(ctx context.Context, seq segments.Sequence, totalDuration float64, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.observe(StageMix, 0, "mixing composite track")

	composite, err := p.deps.Mixer.Mix(ctx, seq, totalDuration, filepath.Join(dir, compositeAudioName))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, StageMix, "amix", "composite track", err)
	}
	if composite == "" {
		return "", services.Wrap(services.ErrValidation, StageMix, "compose", "no synthesized audio to mix", nil)
	}
	p.observe(StageMix, 1, "composite track ready")
	return composite, nil
}
