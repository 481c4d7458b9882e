package testsupport

import (
	"path/filepath"
	"testing"

	"dubber/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Translator.BaseURL = "http://127.0.0.1:0"
	cfgVal.Translator.Model = "test-model"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTranslator overrides the translation endpoint on the test config.
func WithTranslator(baseURL, model string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Translator.BaseURL = baseURL
		b.cfg.Translator.Model = model
	}
}

// WithSynthWorkers overrides the synthesis worker bound on the test config.
func WithSynthWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dub.SynthWorkers = workers
	}
}

// WithStretchBand overrides the tempo band on the test config.
func WithStretchBand(min, max float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dub.StretchMin = min
		b.cfg.Dub.StretchMax = max
	}
}
