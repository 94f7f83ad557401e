package config

import "github.com/mgpai22/subed/internal/subtitle"

const (
	defaultStatusClearSeconds = 3
	defaultIdleMessage        = "Ready"
	defaultAutosaveEnabled    = true
	defaultAutosaveInterval   = 30
	defaultAutosavePath       = "autosave.json"
	defaultLogFile            = "~/.local/state/subed/subed.log"
	defaultConfigPath         = "~/.config/subed/config.toml"
	projectConfigFile         = "subed.toml"
)

// environment overrides, also read from a .env file in the working directory
const (
	envConfigPath   = "SUBED_CONFIG"
	envAutosavePath = "SUBED_AUTOSAVE_PATH"
	envLogFile      = "SUBED_LOG_FILE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	entry := subtitle.DefaultDefaults()
	return Config{
		Editor: Editor{
			DefaultVideoID:     entry.VideoID,
			DefaultURL:         entry.URL,
			DefaultContent:     entry.Content,
			StatusClearSeconds: defaultStatusClearSeconds,
			IdleMessage:        defaultIdleMessage,
		},
		Autosave: Autosave{
			Enabled:         defaultAutosaveEnabled,
			IntervalSeconds: defaultAutosaveInterval,
			Path:            defaultAutosavePath,
		},
		Log: Log{
			File: defaultLogFile,
		},
	}
}
