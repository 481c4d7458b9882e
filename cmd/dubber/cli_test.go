package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dubber/internal/logging"
	"dubber/internal/testsupport"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestLanguagesCommand(t *testing.T) {
	out, err := runCLI(t, []string{"languages"})
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	requireContains(t, out, "zh-TW")
	requireContains(t, out, "Traditional Chinese")
	requireContains(t, out, "zh-TW-HsiaoChenNeural")
	requireContains(t, out, "Spanish")
}

func TestDubRequiresTargets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := runCLI(t, []string{"dub", "video.mp4"}); err == nil {
		t.Fatal("dub without --to should fail")
	}
}

func TestBuildPipelineFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSynthWorkers(2),
		testsupport.WithStretchBand(0.9, 1.1),
	)
	p, err := buildPipeline(cfg, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	if p == nil {
		t.Fatal("expected a pipeline")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only-a"}}, nil)
	if !strings.Contains(out, "only-a") {
		t.Fatalf("missing cell: %s", out)
	}
}
