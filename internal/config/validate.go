package config

import (
	"errors"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Editor.StatusClearSeconds <= 0 {
		return errors.New("editor.status_clear_seconds must be positive")
	}
	if strings.TrimSpace(c.Editor.DefaultVideoID) == "" || strings.ContainsAny(c.Editor.DefaultVideoID, " \t") {
		return errors.New("editor.default_video_id must be a single non-empty token")
	}
	if strings.ContainsAny(c.Editor.DefaultContent, "\r\n") {
		return errors.New("editor.default_content must not contain line breaks")
	}
	if c.Autosave.IntervalSeconds <= 0 {
		return errors.New("autosave.interval_seconds must be positive")
	}
	if c.Autosave.Path == "" {
		return errors.New("autosave.path must be set")
	}
	return nil
}
