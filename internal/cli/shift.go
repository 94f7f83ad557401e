package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subed/internal/fileutil"
	"github.com/mgpai22/subed/internal/subtitle"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Shift every start and end time by a number of seconds",
	Long: `Move every entry of a line-format subtitle file earlier or later.
Times never go below 00:00:00. Without -o the file is rewritten in place.

Examples:
  subed shift subs.txt --by 5
  subed shift subs.txt --by -2 -o fixed.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().Int("by", 0, "Seconds to add (negative to subtract)")

	_ = shiftCmd.MarkFlagRequired("by")
}

func runShift(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	by, _ := cmd.Flags().GetInt("by")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		outputPath = inputPath
	}

	n, err := shiftFile(inputPath, outputPath, by)
	if err != nil {
		return err
	}

	logger.Infow("Shifted subtitles",
		"input", inputPath,
		"output", outputPath,
		"seconds", by,
		"entries", n,
	)
	return nil
}

func shiftFile(inputPath, outputPath string, by int) (int, error) {
	entries, err := subtitle.ReadFile(inputPath)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no entries found in %s", inputPath)
	}

	shiftEntries(entries, by)

	data := subtitle.EncodeLines(entries)
	if err := fileutil.WriteFileAtomic(outputPath, []byte(data), 0644); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	return len(entries), nil
}

func shiftEntries(entries []subtitle.Entry, by int) {
	for i := range entries {
		entries[i].StartTime = subtitle.AdjustTime(entries[i].StartTime, by)
		entries[i].EndTime = subtitle.AdjustTime(entries[i].EndTime, by)
	}
}
