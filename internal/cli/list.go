package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subed/internal/subtitle"
)

var listCmd = &cobra.Command{
	Use:   "list [subtitle_file]",
	Short: "Print the entries of a subtitle file as a table",
	Long: `Print every entry of a line-format, JSON or SRT subtitle file as a table
with its position, video id, start and end time, duration and content.
Lines that do not parse are skipped.

Examples:
  subed list subs.txt
  subed list export.json --url`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("url", false, "Include the url column")
}

func runList(cmd *cobra.Command, args []string) error {
	showURL, _ := cmd.Flags().GetBool("url")

	entries, err := subtitle.OpenWith(args[0], cfg.EntryDefaults())
	if err != nil {
		return err
	}
	logger.Debugw("Listing entries", "file", args[0], "entries", len(entries))

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderEntries(entries, showURL))
	return nil
}

type entryColumn struct {
	header   string
	align    text.Align
	widthMax int
	value    func(i int, e subtitle.Entry) string
}

var entryColumns = []entryColumn{
	{header: "#", align: text.AlignRight, value: func(i int, _ subtitle.Entry) string { return strconv.Itoa(i + 1) }},
	{header: "Video ID", value: func(_ int, e subtitle.Entry) string { return e.VideoID }},
	{header: "Start", value: func(_ int, e subtitle.Entry) string { return e.StartTime }},
	{header: "End", value: func(_ int, e subtitle.Entry) string { return e.EndTime }},
	{header: "Duration", align: text.AlignRight, value: func(_ int, e subtitle.Entry) string { return subtitle.DurationText(e) }},
	{header: "Content", widthMax: 60, value: func(_ int, e subtitle.Entry) string { return e.Content }},
}

var urlColumn = entryColumn{header: "URL", value: func(_ int, e subtitle.Entry) string { return e.URL }}

func renderEntries(entries []subtitle.Entry, showURL bool) string {
	columns := entryColumns
	if showURL {
		columns = append(columns[:len(columns):len(columns)], urlColumn)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			Align:            c.align,
			AlignHeader:      text.AlignLeft,
			WidthMax:         c.widthMax,
			WidthMaxEnforcer: text.WrapSoft,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for i, e := range entries {
		row := make(table.Row, len(columns))
		for j, c := range columns {
			row[j] = c.value(i, e)
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
