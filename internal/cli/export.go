package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subed/internal/fileutil"
	"github.com/mgpai22/subed/internal/subtitle"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Convert a subtitle file to JSON or SRT",
	Long: `Convert between the line format, JSON and SRT. The input format follows
the input extension and the output format follows the extension of the
output path; --format overrides it. Entries read from SRT take their
video id and url from the configured defaults.

Examples:
  subed export subs.txt -o subs.json
  subed export subs.txt -o subs.srt
  subed export subs.txt --format srt
  subed export movie.srt -o subs.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("format", "f", "", "Output format (json, srt, lines)")
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", inputPath)
	}

	format, outputPath, err := resolveExport(inputPath, outputPath, formatStr)
	if err != nil {
		return err
	}

	n, err := exportFile(inputPath, outputPath, format, cfg.EntryDefaults())
	if err != nil {
		return err
	}

	logger.Infow("Exported subtitles",
		"input", inputPath,
		"output", outputPath,
		"format", format,
		"entries", n,
	)
	return nil
}

// resolveExport fills in whichever of format and output path was left out.
func resolveExport(inputPath, outputPath, formatStr string) (subtitle.Format, string, error) {
	var format subtitle.Format
	switch {
	case formatStr != "":
		format = subtitle.Format(strings.ToLower(formatStr))
		if _, err := subtitle.NewWriter(format); err != nil {
			return "", "", err
		}
	case outputPath != "":
		format = subtitle.FormatFromExtension(outputPath)
	default:
		format = subtitle.FormatJSON
	}

	if outputPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = base + subtitle.ExtensionForFormat(format)
	}
	if filepath.Clean(outputPath) == filepath.Clean(inputPath) {
		return "", "", fmt.Errorf("output path %q would overwrite the input", outputPath)
	}
	return format, outputPath, nil
}

func exportFile(inputPath, outputPath string, format subtitle.Format, d subtitle.Defaults) (int, error) {
	entries, err := subtitle.OpenWith(inputPath, d)
	if err != nil {
		return 0, err
	}

	data, err := subtitle.Marshal(format, entries)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	return len(entries), nil
}
