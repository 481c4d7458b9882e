package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeWhisper()
	c.normalizeTranslator()
	c.normalizeTTS()
	c.normalizeDub()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	set := func(field *string, fallback string) {
		*field = strings.TrimSpace(*field)
		if *field == "" {
			*field = fallback
		}
	}
	set(&c.Tools.FFmpeg, defaultFFmpegBinary)
	set(&c.Tools.FFprobe, defaultFFprobeBinary)
	set(&c.Tools.YtDlp, defaultYtDlpBinary)
	set(&c.Tools.Whisper, defaultWhisperBinary)
	set(&c.Tools.EdgeTTS, defaultEdgeTTSBinary)
}

func (c *Config) normalizeWhisper() {
	if strings.TrimSpace(c.Whisper.Model) == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	if strings.TrimSpace(c.Whisper.Device) == "" {
		c.Whisper.Device = defaultWhisperDevice
	}
	if strings.TrimSpace(c.Whisper.ComputeType) == "" {
		c.Whisper.ComputeType = defaultWhisperCompute
	}
}

func (c *Config) normalizeTranslator() {
	if c.Translator.APIKey == "" {
		if value, ok := os.LookupEnv("DUBBER_TRANSLATOR_API_KEY"); ok {
			c.Translator.APIKey = value
		}
	}
	c.Translator.BaseURL = strings.TrimRight(strings.TrimSpace(c.Translator.BaseURL), "/")
	if c.Translator.BaseURL == "" {
		c.Translator.BaseURL = defaultTranslatorBaseURL
	}
	if strings.TrimSpace(c.Translator.Model) == "" {
		c.Translator.Model = defaultTranslatorModel
	}
	if c.Translator.TimeoutSeconds <= 0 {
		c.Translator.TimeoutSeconds = defaultTranslatorTimeout
	}
}

func (c *Config) normalizeTTS() {
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeout
	}
}

func (c *Config) normalizeDub() {
	if c.Dub.StretchMin <= 0 {
		c.Dub.StretchMin = defaultStretchMin
	}
	if c.Dub.StretchMax <= 0 {
		c.Dub.StretchMax = defaultStretchMax
	}
	if c.Dub.SynthWorkers <= 0 {
		c.Dub.SynthWorkers = defaultSynthWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
