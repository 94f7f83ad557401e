package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subed/internal/logging"
	"github.com/mgpai22/subed/internal/session"
	"github.com/mgpai22/subed/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit [subtitle_file]",
	Short: "Open the interactive entry editor",
	Long: `Open the interactive editor. Without a file argument the first .txt
file in the current directory is opened in the background.

If an autosave from an earlier session is found, the editor first asks
whether to restore it, keep it for later, or discard it. Only one editor
may use an autosave file at a time.

Examples:
  subed edit
  subed edit subs.txt
  subed edit --no-autosave`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().Bool("no-autosave", false, "Disable periodic autosave for this session")
	editCmd.Flags().Bool("no-auto-open", false, "Do not open the first .txt file in the current directory")
}

func runEdit(cmd *cobra.Command, args []string) error {
	noAutosave, _ := cmd.Flags().GetBool("no-autosave")
	noAutoOpen, _ := cmd.Flags().GetBool("no-auto-open")
	ctx := cmd.Context()

	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return fmt.Errorf("edit needs an interactive terminal, use list or export instead")
	}

	if len(args) == 1 {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("subtitle file not found: %s", args[0])
		}
	}

	autosavePath := cfg.Autosave.Path
	lock, err := session.AcquireLock(autosavePath)
	if err != nil {
		if errors.Is(err, session.ErrLocked) {
			return fmt.Errorf("another editor is already using %s", autosavePath)
		}
		return fmt.Errorf("failed to lock autosave: %w", err)
	}
	defer func() { _ = lock.Release() }()

	fileLogger, err := logging.NewFileLogger(cfg.Log.File, verbose)
	if err != nil {
		logger.Warnw("Editor log disabled", "error", err)
		fileLogger = logging.Nop()
	}
	defer fileLogger.Close()

	sess := session.New(session.Options{
		Defaults:     cfg.EntryDefaults(),
		AutosavePath: autosavePath,
		StatusDelay:  cfg.StatusDelay(),
		IdleMessage:  cfg.Editor.IdleMessage,
		Logger:       fileLogger,
	})
	defer sess.Close()

	opts := tui.Options{
		Session: sess,
		Logger:  fileLogger,
		Context: ctx,
	}

	if len(args) == 1 {
		if err := sess.Open(args[0]); err != nil {
			return fmt.Errorf("failed to open subtitle file: %w", err)
		}
	} else if !noAutoOpen {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		opts.AutoOpenDir = wd
	}

	if sess.HasAutosave() {
		snap, err := sess.PeekAutosave()
		if err != nil {
			fileLogger.Debugw("Ignoring unreadable autosave", "path", autosavePath, "error", err)
		} else {
			opts.Restore = snap
		}
	}

	if cfg.Autosave.Enabled && !noAutosave {
		stop := sess.StartAutosave(ctx, cfg.AutosaveInterval())
		defer stop()
	}

	fileLogger.Infow("Editor started", "file", sess.CurrentFilePath(), "autosave", autosavePath)

	program := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if sess.Dirty() {
		if ok, err := sess.Autosave(); err != nil {
			logger.Warnw("Failed to autosave unsaved changes", "error", err)
		} else if ok {
			logger.Warnw("Unsaved changes kept in autosave, run 'subed restore' or 'subed edit' to recover them",
				"path", autosavePath,
			)
		}
	}
	fileLogger.Infow("Editor closed", "dirty", sess.Dirty())
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
