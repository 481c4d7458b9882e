package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dubber/internal/language"
	"dubber/internal/segments"
	"dubber/internal/services"
)

// Result carries the transcription output for one audio track.
type Result struct {
	Segments segments.Sequence
	Language string
}

// Service wraps the faster-whisper CLI. Transcriptions are serialized with a
// mutex because concurrent model loads exhaust GPU and system memory.
type Service struct {
	binary      string
	model       string
	device      string
	computeType string
	run         services.CommandRunner

	mu sync.Mutex
}

// Options configure the transcription model.
type Options struct {
	Binary      string
	Model       string
	Device      string
	ComputeType string
}

// New constructs a transcription service.
func New(opts Options) *Service {
	svc := &Service{
		binary:      strings.TrimSpace(opts.Binary),
		model:       strings.TrimSpace(opts.Model),
		device:      strings.TrimSpace(opts.Device),
		computeType: strings.TrimSpace(opts.ComputeType),
		run:         services.DefaultCommandRunner,
	}
	if svc.binary == "" {
		svc.binary = "whisper-ctranslate2"
	}
	if svc.model == "" {
		svc.model = "base"
	}
	return svc
}

// WithCommandRunner substitutes the process executor (for tests).
func (s *Service) WithCommandRunner(run services.CommandRunner) {
	if s != nil && run != nil {
		s.run = run
	}
}

// Transcribe runs speech recognition over audioPath, writing the tool's JSON
// output under outputDir. languageTag may be language.Auto to let the model
// detect the spoken language.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir, languageTag string) (Result, error) {
	if strings.TrimSpace(audioPath) == "" {
		return Result{}, errors.New("transcribe: audio path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return Result{}, errors.New("transcribe: output dir required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	args := []string{
		audioPath,
		"--model", s.model,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if s.device != "" {
		args = append(args, "--device", s.device)
	}
	if s.computeType != "" {
		args = append(args, "--compute_type", s.computeType)
	}
	if languageTag != "" && languageTag != language.Auto {
		code := language.WhisperCode(languageTag)
		if code == "" {
			return Result{}, fmt.Errorf("transcribe: unsupported language %q", languageTag)
		}
		args = append(args, "--language", code)
	}

	if err := s.run(ctx, s.binary, args...); err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}

	jsonPath := outputJSONPath(audioPath, outputDir)
	result, err := parseOutput(jsonPath)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	return result, nil
}

func outputJSONPath(audioPath, outputDir string) string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+".json")
}

type outputFile struct {
	Language string          `json:"language"`
	Segments []outputSegment `json:"segments"`
}

type outputSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func parseOutput(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read output %s: %w", path, err)
	}
	var out outputFile
	if err := json.Unmarshal(data, &out); err != nil {
		return Result{}, fmt.Errorf("decode output %s: %w", path, err)
	}

	seq := make(segments.Sequence, 0, len(out.Segments))
	for _, raw := range out.Segments {
		text := strings.TrimSpace(raw.Text)
		if text == "" || raw.End <= raw.Start {
			continue
		}
		seq = append(seq, segments.Segment{
			Start:      raw.Start,
			End:        raw.End,
			SourceText: text,
		})
	}
	if len(seq) == 0 {
		return Result{}, errors.New("no speech segments recognized")
	}
	return Result{Segments: seq, Language: strings.TrimSpace(out.Language)}, nil
}
