package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subed/internal/config"
	"github.com/mgpai22/subed/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subed",
	Short: "Editor for time-coded subtitle entry files",
	Long: `Subed edits line-oriented subtitle files where every line reads

  <video id> <HH:MM:SS start> <HH:MM:SS end> <content> <url>

Entries can be added, edited, reordered and deleted in an interactive
editor, saved back to the same format and exported to JSON or SRT.
Unsaved work is autosaved to a sidecar file and can be restored later.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		// SUBED_* overrides may live in a .env file next to the subtitles
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warnw("Ignoring unreadable .env file", "error", err)
		}

		loaded, path, exists, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debugw("Loaded configuration", "path", path, "exists", exists)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.config/subed/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
