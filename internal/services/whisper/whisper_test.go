package whisper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleOutput = `{
  "language": "en",
  "segments": [
    {"start": 0.0, "end": 2.5, "text": " Hello there."},
    {"start": 2.5, "end": 2.5, "text": "zero length"},
    {"start": 3.0, "end": 5.0, "text": "   "},
    {"start": 5.0, "end": 8.2, "text": "General Kenobi."}
  ]
}`

func TestTranscribeParsesOutput(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(audio, []byte("wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := New(Options{Model: "base", Device: "cpu", ComputeType: "int8"})
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return os.WriteFile(filepath.Join(dir, "audio.json"), []byte(sampleOutput), 0o644)
	})

	result, err := svc.Transcribe(context.Background(), audio, dir, "auto")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Language != "en" {
		t.Fatalf("language = %q", result.Language)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("segments = %d, want 2 (empty and zero-length dropped)", len(result.Segments))
	}
	if result.Segments[0].SourceText != "Hello there." {
		t.Fatalf("text not trimmed: %q", result.Segments[0].SourceText)
	}
	if result.Segments[1].Start != 5.0 || result.Segments[1].End != 8.2 {
		t.Fatalf("timing wrong: %+v", result.Segments[1])
	}

	joined := strings.Join(gotArgs, " ")
	if strings.Contains(joined, "--language") {
		t.Fatalf("auto detection must not pass --language: %s", joined)
	}
	for _, want := range []string{"--model base", "--device cpu", "--compute_type int8", "--output_format json"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %s", want, joined)
		}
	}
}

func TestTranscribePassesWhisperLanguageCode(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "audio.wav")

	svc := New(Options{})
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return os.WriteFile(filepath.Join(dir, "audio.json"), []byte(sampleOutput), 0o644)
	})

	if _, err := svc.Transcribe(context.Background(), audio, dir, "zh-TW"); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "--language zh") {
		t.Fatalf("expected whisper code zh: %s", joined)
	}
}

func TestTranscribeRejectsUnknownLanguage(t *testing.T) {
	svc := New(Options{})
	svc.WithCommandRunner(func(_ context.Context, _ string, _ ...string) error {
		t.Fatal("runner must not be invoked")
		return nil
	})
	if _, err := svc.Transcribe(context.Background(), "/a.wav", "/out", "xx-XX"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestTranscribeFailsWhenNoSpeech(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "audio.wav")

	svc := New(Options{})
	svc.WithCommandRunner(func(_ context.Context, _ string, _ ...string) error {
		return os.WriteFile(filepath.Join(dir, "audio.json"), []byte(`{"language":"en","segments":[]}`), 0o644)
	})

	if _, err := svc.Transcribe(context.Background(), audio, dir, "auto"); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}
