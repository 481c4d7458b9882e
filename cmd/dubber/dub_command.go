package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"dubber/internal/align"
	"dubber/internal/config"
	"dubber/internal/history"
	"dubber/internal/logging"
	"dubber/internal/media/ffmpeg"
	"dubber/internal/media/ffprobe"
	"dubber/internal/mix"
	"dubber/internal/pipeline"
	"dubber/internal/services/fetch"
	"dubber/internal/services/translate"
	"dubber/internal/services/tts"
	"dubber/internal/services/whisper"
	"dubber/internal/workspace"
)

func newDubCommand(ctx *commandContext) *cobra.Command {
	var fromLang string
	var toLangs []string
	var burnSubtitles bool

	cmd := &cobra.Command{
		Use:   "dub <source>",
		Short: "Dub a video into one or more target languages",
		Long: `Dub transcribes the source video, translates each speech segment,
synthesizes dubbed audio per target language, fits the clips into their
original time slots, and muxes the result into a new video.

The source may be a local file or an http(s) URL (fetched with yt-dlp).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			return runDub(cmd, cfg, logger, dubRequest{
				source:        args[0],
				fromLang:      fromLang,
				toLangs:       toLangs,
				burnSubtitles: burnSubtitles,
			})
		},
	}

	cmd.Flags().StringVar(&fromLang, "from", "auto", "Source language tag (auto to detect)")
	cmd.Flags().StringSliceVar(&toLangs, "to", nil, "Target language tag (repeatable)")
	cmd.Flags().BoolVar(&burnSubtitles, "burn-subtitles", false, "Burn translated subtitles into the video frames")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

type dubRequest struct {
	source        string
	fromLang      string
	toLangs       []string
	burnSubtitles bool
}

func runDub(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, req dubRequest) error {
	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := workspace.NewManager(cfg.Paths.WorkspaceDir)
	if err != nil {
		return err
	}
	if err := manager.Acquire(); err != nil {
		return err
	}
	defer manager.Release()

	job, err := manager.NewJob()
	if err != nil {
		return err
	}
	logger.Info("job workspace created",
		logging.String(logging.FieldJobID, job.ID),
		logging.String("dir", job.Dir))

	// Progress lines are terminal feedback; piped output gets the result
	// table only, with stage detail going to the log.
	var observer pipeline.Observer
	if isInteractive(cmd.OutOrStdout()) {
		observer = newProgressObserver(cmd.OutOrStdout())
	}
	p, err := buildPipeline(cfg, logger, observer)
	if err != nil {
		return err
	}

	result, err := p.RunBatch(runCtx, job, pipeline.BatchRequest{
		Source:        req.source,
		SourceLang:    req.fromLang,
		TargetLangs:   req.toLangs,
		BurnSubtitles: req.burnSubtitles,
	})
	if err != nil {
		return err
	}

	recordHistory(runCtx, cfg, logger, req.source, result)
	printBatchResult(cmd, result)

	failed := 0
	for _, lang := range result.Languages {
		if lang.Err != nil {
			failed++
		}
	}
	if failed == len(result.Languages) {
		return fmt.Errorf("all %d target languages failed", failed)
	}
	return nil
}

func buildPipeline(cfg *config.Config, logger *slog.Logger, observer pipeline.Observer) (*pipeline.Pipeline, error) {
	toolkit := ffmpeg.NewToolkit(cfg.Tools.FFmpeg)
	prober := ffprobe.NewProber(cfg.Tools.FFprobe)

	aligner := align.New(prober, toolkit, logging.NewComponentLogger(logger, "align"))
	aligner.SetBand(cfg.Dub.StretchMin, cfg.Dub.StretchMax)

	return pipeline.New(pipeline.Dependencies{
		Fetcher: fetch.New(cfg.Tools.YtDlp),
		Prober:  prober,
		Media:   toolkit,
		Transcriber: whisper.New(whisper.Options{
			Binary:      cfg.Tools.Whisper,
			Model:       cfg.Whisper.Model,
			Device:      cfg.Whisper.Device,
			ComputeType: cfg.Whisper.ComputeType,
		}),
		Translator: translate.NewClient(translate.Config{
			APIKey:         cfg.Translator.APIKey,
			BaseURL:        cfg.Translator.BaseURL,
			Model:          cfg.Translator.Model,
			TimeoutSeconds: cfg.Translator.TimeoutSeconds,
		}),
		Synthesizer: tts.New(cfg.Tools.EdgeTTS, cfg.TTS.TimeoutSeconds),
		Aligner:     aligner,
		Mixer:       mix.New(toolkit, logging.NewComponentLogger(logger, "mix")),
	}, pipeline.Options{
		SynthWorkers:   cfg.Dub.SynthWorkers,
		VoiceOverrides: cfg.TTS.VoiceOverrides,
		Observer:       observer,
		Logger:         logging.NewComponentLogger(logger, "pipeline"),
	})
}

func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, source string, result pipeline.BatchResult) {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Error("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	for tag, lang := range result.Languages {
		if lang.Err != nil {
			continue
		}
		if _, err := store.Add(ctx, history.Entry{
			Kind:         history.KindDub,
			SourceLang:   result.DetectedLanguage,
			TargetLang:   tag,
			Source:       source,
			ArtifactPath: lang.VideoPath,
			Details:      map[string]string{"subtitles": lang.SubtitlePath},
		}); err != nil {
			logger.Error("record history entry", logging.Error(err))
		}
	}
}

func printBatchResult(cmd *cobra.Command, result pipeline.BatchResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSource video:      %s\n", result.SourceVideo)
	fmt.Fprintf(out, "Original subtitle: %s\n", result.OriginalSubtitle)
	fmt.Fprintf(out, "Detected language: %s\n\n", result.DetectedLanguage)

	tags := make([]string, 0, len(result.Languages))
	for tag := range result.Languages {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	headers := []string{"Language", "Dubbed video", "Subtitles", "Status"}
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		lang := result.Languages[tag]
		status := "ok"
		if lang.Err != nil {
			status = "failed: " + lang.Err.Error()
		}
		rows = append(rows, []string{tag, lang.VideoPath, lang.SubtitlePath, status})
	}
	fmt.Fprintln(out, renderTable(headers, rows, nil))
}

func newProgressObserver(out io.Writer) pipeline.Observer {
	return pipeline.ObserverFunc(func(event pipeline.Event) {
		fmt.Fprintf(out, "[%-10s] %3.0f%% %s\n", event.Stage, event.Fraction*100, event.Message)
	})
}
