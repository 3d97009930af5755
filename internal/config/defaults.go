package config

const (
	defaultConfigPath          = "~/.config/captionplayer/config.toml"
	defaultCaptionIntervalMS   = 200
	defaultProgressIntervalMS  = 400
	defaultLookupMode          = "interval"
	defaultProbeTimeoutSeconds = 10
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Playback: Playback{
			CaptionIntervalMS:  defaultCaptionIntervalMS,
			ProgressIntervalMS: defaultProgressIntervalMS,
			Lookup:             defaultLookupMode,
		},
		Media: Media{
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
