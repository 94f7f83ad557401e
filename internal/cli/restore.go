package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subed/internal/session"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Recover or discard the autosave left by an editor session",
	Long: `Inspect the autosave sidecar and write its entries back to the file
it was taken from. Use -o to pick another destination, which is required
when the autosave belongs to a file that was never saved.

Examples:
  subed restore --dry-run
  subed restore
  subed restore -o recovered.txt
  subed restore --discard`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().Bool("discard", false, "Delete the autosave without restoring it")
	restoreCmd.Flags().Bool("dry-run", false, "Only describe the autosave")
}

func runRestore(cmd *cobra.Command, args []string) error {
	discard, _ := cmd.Flags().GetBool("discard")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	outputPath, _ := cmd.Flags().GetString("output")

	autosavePath := cfg.Autosave.Path
	lock, err := session.AcquireLock(autosavePath)
	if err != nil {
		if errors.Is(err, session.ErrLocked) {
			return fmt.Errorf("an editor is still using %s", autosavePath)
		}
		return fmt.Errorf("failed to lock autosave: %w", err)
	}
	defer func() { _ = lock.Release() }()

	sess := session.New(session.Options{
		AutosavePath: autosavePath,
		Logger:       logger,
	})
	defer sess.Close()

	return restoreSidecar(cmd.OutOrStdout(), sess, restoreOptions{
		output:  outputPath,
		discard: discard,
		dryRun:  dryRun,
	})
}

type restoreOptions struct {
	output  string
	discard bool
	dryRun  bool
}

func restoreSidecar(out io.Writer, sess *session.Session, opts restoreOptions) error {
	if !sess.HasAutosave() {
		fmt.Fprintf(out, "No autosave found at %s\n", sess.AutosavePath())
		return nil
	}

	snap, err := sess.PeekAutosave()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, describeSnapshot(snap))

	if opts.dryRun {
		return nil
	}

	if opts.discard {
		if err := sess.DiscardAutosave(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Autosave discarded")
		return nil
	}

	target := opts.output
	if target == "" && snap.CurrentFilePath != nil {
		target = *snap.CurrentFilePath
	}
	if target == "" {
		return fmt.Errorf("autosave has no file path, pass -o to choose one")
	}

	if !sess.RestoreAutosave() {
		return fmt.Errorf("failed to read autosave %s", sess.AutosavePath())
	}
	if err := sess.SaveAs(target); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := sess.DiscardAutosave(); err != nil {
		return err
	}

	logger.Infow("Restored autosave", "output", target, "entries", sess.Len())
	fmt.Fprintf(out, "Restored %s to %s\n", english.Plural(sess.Len(), "entry", "entries"), target)
	return nil
}

func describeSnapshot(snap *session.Snapshot) string {
	age := "at an unknown time"
	if t, err := snap.SavedAt(); err == nil {
		age = humanize.Time(t)
	}
	file := "an unsaved file"
	if snap.CurrentFilePath != nil && *snap.CurrentFilePath != "" {
		file = *snap.CurrentFilePath
	}
	return fmt.Sprintf("Autosave of %s for %s, written %s",
		english.Plural(len(snap.Subtitles), "entry", "entries"), file, age)
}
