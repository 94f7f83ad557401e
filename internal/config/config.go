package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/subed/internal/subtitle"
)

//go:embed sample_config.toml
var sampleConfig string

// Editor controls defaults for new entries and the status line.
type Editor struct {
	DefaultVideoID     string `toml:"default_video_id"`
	DefaultURL         string `toml:"default_url"`
	DefaultContent     string `toml:"default_content"`
	StatusClearSeconds int    `toml:"status_clear_seconds"`
	IdleMessage        string `toml:"idle_message"`
}

// Autosave controls the periodic sidecar snapshot.
type Autosave struct {
	Enabled         bool   `toml:"enabled"`
	IntervalSeconds int    `toml:"interval_seconds"`
	Path            string `toml:"path"`
}

// Log controls where the editor writes its log while the screen is in use.
type Log struct {
	File string `toml:"file"`
}

// Config is the top-level structure for config.toml.
type Config struct {
	Editor   Editor   `toml:"editor"`
	Autosave Autosave `toml:"autosave"`
	Log      Log      `toml:"log"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. It also reports
// the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// EntryDefaults converts the editor section into new-entry defaults.
func (c *Config) EntryDefaults() subtitle.Defaults {
	d := subtitle.DefaultDefaults()
	d.VideoID = c.Editor.DefaultVideoID
	d.URL = c.Editor.DefaultURL
	d.Content = c.Editor.DefaultContent
	return d
}

func (c *Config) StatusDelay() time.Duration {
	return time.Duration(c.Editor.StatusClearSeconds) * time.Second
}

func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.Autosave.IntervalSeconds) * time.Second
}

func (c *Config) normalize() error {
	if value, ok := os.LookupEnv(envAutosavePath); ok && strings.TrimSpace(value) != "" {
		c.Autosave.Path = value
	}
	if value, ok := os.LookupEnv(envLogFile); ok && strings.TrimSpace(value) != "" {
		c.Log.File = value
	}

	var err error
	if c.Autosave.Path, err = expandPath(strings.TrimSpace(c.Autosave.Path)); err != nil {
		return err
	}
	if c.Log.File, err = expandPath(strings.TrimSpace(c.Log.File)); err != nil {
		return err
	}
	c.Editor.IdleMessage = strings.TrimSpace(c.Editor.IdleMessage)
	if c.Editor.IdleMessage == "" {
		c.Editor.IdleMessage = defaultIdleMessage
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(envConfigPath))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to path. It refuses to
// overwrite an existing file.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config already exists: %s", path)
		}
		return fmt.Errorf("create config: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(sampleConfig); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return file.Close()
}
