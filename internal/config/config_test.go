package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg default: %q", cfg.Tools.FFmpeg)
	}
	if cfg.Dub.StretchMin != 0.85 || cfg.Dub.StretchMax != 1.25 {
		t.Fatalf("unexpected stretch band: [%v, %v]", cfg.Dub.StretchMin, cfg.Dub.StretchMax)
	}
	if cfg.Dub.SynthWorkers != 4 {
		t.Fatalf("unexpected synth workers: %d", cfg.Dub.SynthWorkers)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
workspace_dir = "` + filepath.Join(dir, "work") + `"

[translator]
base_url = "http://example.test/v1/"

[tts.voice_overrides]
"ja-JP" = "ja-JP-KeitaNeural"

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if strings.HasSuffix(cfg.Translator.BaseURL, "/") {
		t.Fatalf("base url not trimmed: %q", cfg.Translator.BaseURL)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format not lowered: %q", cfg.Logging.Format)
	}
	if cfg.TTS.VoiceOverrides["ja-JP"] != "ja-JP-KeitaNeural" {
		t.Fatalf("voice override lost: %v", cfg.TTS.VoiceOverrides)
	}
}

func TestValidateRejectsInvertedStretchBand(t *testing.T) {
	cfg := Default()
	cfg.Dub.StretchMin = 1.5
	cfg.Dub.StretchMax = 1.2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateRejectsBandOutsideAtempoRange(t *testing.T) {
	cfg := Default()
	cfg.Dub.StretchMin = 0.4
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for stretch_min below atempo range")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}
