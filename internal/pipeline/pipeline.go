package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"dubber/internal/language"
	"dubber/internal/logging"
	"dubber/internal/media/ffmpeg"
	"dubber/internal/media/ffprobe"
	"dubber/internal/segments"
	"dubber/internal/services/translate"
	"dubber/internal/services/whisper"
)

// Stage labels reported through progress events.
const (
	StageAcquire    = "acquire"
	StageTranscribe = "transcribe"
	StageTranslate  = "translate"
	StageSynthesize = "synthesize"
	StageAlign      = "align"
	StageMix        = "mix"
	StageMux        = "mux"
)

const defaultSynthWorkers = 4

// Event is one progress report from the pipeline.
type Event struct {
	Stage    string
	Fraction float64
	Message  string
}

// Observer receives progress events. A nil observer is valid and silently
// discards progress.
type Observer interface {
	Progress(event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Progress implements Observer.
func (f ObserverFunc) Progress(event Event) { f(event) }

// Fetcher downloads a remote source into the workspace.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// Transcriber produces timed segments from an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir, languageTag string) (whisper.Result, error)
}

// Translator renders one segment's text into the target language.
type Translator interface {
	Translate(ctx context.Context, req translate.Request) (string, error)
}

// SpeechSynthesizer renders translated text to an audio clip.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice, outputPath string) error
}

// MediaToolkit covers the ffmpeg operations the pipeline drives directly.
type MediaToolkit interface {
	ExtractAudio(ctx context.Context, source, dest string) error
	Mux(ctx context.Context, req ffmpeg.MuxRequest) error
}

// MediaProber inspects container metadata.
type MediaProber interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// ClipAligner fits a synthesized clip into its segment's time budget.
type ClipAligner interface {
	Align(ctx context.Context, clipPath string, targetDuration float64) (string, error)
}

// TrackMixer assembles aligned clips into a composite track.
type TrackMixer interface {
	Mix(ctx context.Context, seq segments.Sequence, totalDuration float64, outputPath string) (string, error)
}

// Dependencies holds the collaborators a pipeline drives. All fields are
// required.
type Dependencies struct {
	Fetcher     Fetcher
	Prober      MediaProber
	Media       MediaToolkit
	Transcriber Transcriber
	Translator  Translator
	Synthesizer SpeechSynthesizer
	Aligner     ClipAligner
	Mixer       TrackMixer
}

// Options tune pipeline behavior.
type Options struct {
	// SynthWorkers bounds concurrent synthesis calls. Zero means the default.
	SynthWorkers int
	// VoiceOverrides maps a language tag to a synthesis voice, overriding the
	// language table's default.
	VoiceOverrides map[string]string
	Observer       Observer
	Logger         *slog.Logger
}

// Pipeline sequences the dubbing stages for one job.
type Pipeline struct {
	deps           Dependencies
	synthWorkers   int
	voiceOverrides map[string]string
	observer       Observer
	logger         *slog.Logger
}

// New constructs a pipeline. Every dependency must be set.
func New(deps Dependencies, opts Options) (*Pipeline, error) {
	switch {
	case deps.Fetcher == nil:
		return nil, errors.New("pipeline: fetcher required")
	case deps.Prober == nil:
		return nil, errors.New("pipeline: prober required")
	case deps.Media == nil:
		return nil, errors.New("pipeline: media toolkit required")
	case deps.Transcriber == nil:
		return nil, errors.New("pipeline: transcriber required")
	case deps.Translator == nil:
		return nil, errors.New("pipeline: translator required")
	case deps.Synthesizer == nil:
		return nil, errors.New("pipeline: synthesizer required")
	case deps.Aligner == nil:
		return nil, errors.New("pipeline: aligner required")
	case deps.Mixer == nil:
		return nil, errors.New("pipeline: mixer required")
	}

	workers := opts.SynthWorkers
	if workers <= 0 {
		workers = defaultSynthWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		deps:           deps,
		synthWorkers:   workers,
		voiceOverrides: opts.VoiceOverrides,
		observer:       opts.Observer,
		logger:         logger,
	}, nil
}

func (p *Pipeline) observe(stage string, fraction float64, message string) {
	if p.observer == nil {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	p.observer.Progress(Event{Stage: stage, Fraction: fraction, Message: message})
}

func (p *Pipeline) voiceFor(tag string) string {
	normalized := language.Normalize(tag)
	if voice, ok := p.voiceOverrides[normalized]; ok && strings.TrimSpace(voice) != "" {
		return voice
	}
	if voice, ok := p.voiceOverrides[tag]; ok && strings.TrimSpace(voice) != "" {
		return voice
	}
	return language.Voice(normalized)
}
