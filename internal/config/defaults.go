package config

const (
	defaultWorkDir        = "~/.local/share/aurify/work"
	defaultLogDir         = "~/.local/share/aurify/logs"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultEnhancerBinary = "resemble-enhance"
	defaultWorkers        = 4
	defaultFormat         = "flac"
	defaultQuality        = "256k"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:   defaultFFmpegBinary,
			FFprobe:  defaultFFprobeBinary,
			Enhancer: defaultEnhancerBinary,
		},
		Pipeline: Pipeline{
			Workers:        defaultWorkers,
			DefaultFormat:  defaultFormat,
			DefaultQuality: defaultQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
