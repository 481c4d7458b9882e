package config

const (
	defaultWorkspaceDir      = "~/.local/share/dubber/workspaces"
	defaultLogDir            = "~/.local/share/dubber/logs"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultYtDlpBinary       = "yt-dlp"
	defaultWhisperBinary     = "whisper-ctranslate2"
	defaultEdgeTTSBinary     = "edge-tts"
	defaultWhisperModel      = "base"
	defaultWhisperDevice     = "cpu"
	defaultWhisperCompute    = "int8"
	defaultTranslatorBaseURL = "http://localhost:11434/v1"
	defaultTranslatorModel   = "translategemma"
	defaultTranslatorTimeout = 120
	defaultTTSTimeout        = 60
	defaultStretchMin        = 0.85
	defaultStretchMax        = 1.25
	defaultSynthWorkers      = 4
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			LogDir:       defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
			YtDlp:   defaultYtDlpBinary,
			Whisper: defaultWhisperBinary,
			EdgeTTS: defaultEdgeTTSBinary,
		},
		Whisper: Whisper{
			Model:       defaultWhisperModel,
			Device:      defaultWhisperDevice,
			ComputeType: defaultWhisperCompute,
		},
		Translator: Translator{
			BaseURL:        defaultTranslatorBaseURL,
			Model:          defaultTranslatorModel,
			TimeoutSeconds: defaultTranslatorTimeout,
		},
		TTS: TTS{
			TimeoutSeconds: defaultTTSTimeout,
		},
		Dub: Dub{
			StretchMin:   defaultStretchMin,
			StretchMax:   defaultStretchMax,
			SynthWorkers: defaultSynthWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
