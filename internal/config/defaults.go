package config

const (
	defaultDownloadDir  = "~/.local/share/subgen/downloads"
	defaultLogDir       = "~/.local/share/subgen/logs"
	defaultModel        = "small"
	defaultOutputFormat = "srt"
	defaultDevice       = "cpu"
	defaultComputeType  = "int8"
	defaultBitrate      = "192k"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			LogDir:      defaultLogDir,
		},
		WhisperX: WhisperX{
			Model:        defaultModel,
			OutputFormat: defaultOutputFormat,
			Device:       defaultDevice,
			ComputeType:  defaultComputeType,
		},
		Transcode: Transcode{
			Bitrate: defaultBitrate,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
