package ffmpeg

import (
	"context"
	"strings"
	"testing"
)

type recordedCall struct {
	name string
	args []string
}

func recordingRunner(calls *[]recordedCall) func(ctx context.Context, name string, args ...string) error {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return nil
	}
}

func TestExtractAudioArgs(t *testing.T) {
	var calls []recordedCall
	tk := NewToolkit("ffmpeg")
	tk.WithCommandRunner(recordingRunner(&calls))

	if err := tk.ExtractAudio(context.Background(), "video.mp4", "audio.wav"); err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	joined := strings.Join(calls[0].args, " ")
	for _, want := range []string{"-vn", "pcm_s16le", "-ar 16000", "-ac 1", "audio.wav"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestAdjustTempoRejectsOutOfRangeFactor(t *testing.T) {
	tk := NewToolkit("")
	if err := tk.AdjustTempo(context.Background(), "a.mp3", "b.mp3", 2.5); err == nil {
		t.Fatal("expected error for factor above atempo range")
	}
	if err := tk.AdjustTempo(context.Background(), "a.mp3", "b.mp3", 0.3); err == nil {
		t.Fatal("expected error for factor below atempo range")
	}
}

func TestAdjustTempoArgs(t *testing.T) {
	var calls []recordedCall
	tk := NewToolkit("ffmpeg")
	tk.WithCommandRunner(recordingRunner(&calls))

	if err := tk.AdjustTempo(context.Background(), "in.mp3", "out.mp3", 1.25); err != nil {
		t.Fatalf("AdjustTempo: %v", err)
	}
	joined := strings.Join(calls[0].args, " ")
	if !strings.Contains(joined, "atempo=1.25") {
		t.Fatalf("missing atempo filter: %s", joined)
	}
}

func TestRunFilterCapsDuration(t *testing.T) {
	var calls []recordedCall
	tk := NewToolkit("ffmpeg")
	tk.WithCommandRunner(recordingRunner(&calls))

	err := tk.RunFilter(context.Background(), []string{"a.mp3", "b.mp3"}, "[0:a][1:a]amix=inputs=2[out]", "[out]", "mix.wav", 10.5)
	if err != nil {
		t.Fatalf("RunFilter: %v", err)
	}
	joined := strings.Join(calls[0].args, " ")
	if !strings.Contains(joined, "-t 10.500") {
		t.Fatalf("missing duration cap: %s", joined)
	}
	if !strings.Contains(joined, "-i a.mp3 -i b.mp3") {
		t.Fatalf("inputs not in order: %s", joined)
	}
}

func TestMuxCopiesVideoWithoutBurnIn(t *testing.T) {
	var calls []recordedCall
	tk := NewToolkit("ffmpeg")
	tk.WithCommandRunner(recordingRunner(&calls))

	err := tk.Mux(context.Background(), MuxRequest{
		VideoPath:  "video.mp4",
		AudioPath:  "dub.wav",
		OutputPath: "out.mp4",
	})
	if err != nil {
		t.Fatalf("Mux: %v", err)
	}
	joined := strings.Join(calls[0].args, " ")
	if !strings.Contains(joined, "-c:v copy") {
		t.Fatalf("expected stream copy without burn-in: %s", joined)
	}
	if strings.Contains(joined, "subtitles=") {
		t.Fatalf("unexpected subtitles filter: %s", joined)
	}
}

func TestMuxBurnsSubtitlesWithEscaping(t *testing.T) {
	var calls []recordedCall
	tk := NewToolkit("ffmpeg")
	tk.WithCommandRunner(recordingRunner(&calls))

	err := tk.Mux(context.Background(), MuxRequest{
		VideoPath:    "video.mp4",
		AudioPath:    "dub.wav",
		SubtitlePath: `/work/job:1/translated.srt`,
		OutputPath:   "out.mp4",
	})
	if err != nil {
		t.Fatalf("Mux: %v", err)
	}
	joined := strings.Join(calls[0].args, " ")
	if !strings.Contains(joined, `subtitles=/work/job\:1/translated.srt`) {
		t.Fatalf("colon not escaped in filter path: %s", joined)
	}
	if strings.Contains(joined, "-c:v copy") {
		t.Fatalf("burn-in must re-encode video: %s", joined)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	got := EscapeFilterPath(`C:\media\it's.srt`)
	want := `C\:\\media\\it\'s.srt`
	if got != want {
		t.Fatalf("EscapeFilterPath = %q, want %q", got, want)
	}
}
