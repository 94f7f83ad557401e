package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-runewidth"

	"github.com/mgpai22/subed/internal/session"
	"github.com/mgpai22/subed/internal/subtitle"
)

const (
	defaultWidth  = 100
	defaultHeight = 24
	// header, blank line, column header, status bar, help
	chromeHeight = 5
	promptHeight = 4
)

type column struct {
	title string
	width int
	field session.Field
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.mode == modeRestore {
		b.WriteString(m.restoreView())
		return b.String()
	}

	b.WriteString(m.tableView())

	switch m.mode {
	case modeEdit:
		b.WriteString("\n")
		b.WriteString(m.promptView(fmt.Sprintf("Edit %s of entry #%d", m.field, m.cursor+1)))
	case modePrompt:
		b.WriteString("\n")
		b.WriteString(m.promptView(m.promptTitle()))
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m Model) headerView() string {
	name := "untitled"
	if path := m.sess.CurrentFilePath(); path != "" {
		name = filepath.Base(path)
	}
	header := titleStyle.Render("subed") + dimStyle.Render(" · "+name)
	if m.sess.Dirty() {
		header += warningStyle.Render(" [modified]")
	}
	return header
}

func (m Model) columns() []column {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	cols := []column{
		{title: "#", width: 4, field: -1},
		{title: "Video ID", width: 16, field: session.FieldVideoID},
		{title: "Start", width: 8, field: session.FieldStart},
		{title: "End", width: 8, field: session.FieldEnd},
		{title: "Dur", width: 6, field: -1},
		{title: "Content", width: 0, field: session.FieldContent},
		{title: "URL", width: 24, field: session.FieldURL},
	}

	// two columns for the selection mark plus one space between columns
	used := 2 + len(cols) - 1
	for _, c := range cols {
		used += c.width
	}
	cols[5].width = max(width-used, 10)
	return cols
}

func (m Model) tableView() string {
	cols := m.columns()
	entries := m.sess.Entries()

	var b strings.Builder
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = cell(c.title, c.width)
	}
	b.WriteString(headerStyle.Render("  " + strings.Join(titles, " ")))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(dimStyle.Render("  No entries. Press a to add one or ctrl+o to open a file."))
		b.WriteString("\n")
		return b.String()
	}

	rows := m.visibleRows()
	offset := 0
	if m.cursor >= rows {
		offset = m.cursor - rows + 1
	}
	end := min(offset+rows, len(entries))

	for i := offset; i < end; i++ {
		b.WriteString(m.rowView(i, entries[i], cols))
		b.WriteString("\n")
	}
	if end < len(entries) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(entries)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) rowView(i int, e subtitle.Entry, cols []column) string {
	isCursor := i == m.cursor
	mark := "  "
	if m.sess.IsSelected(e.ID) {
		mark = selectedStyle.Render("● ")
	}

	values := []string{
		strconv.Itoa(i + 1),
		e.VideoID,
		e.StartTime,
		e.EndTime,
		subtitle.DurationText(e),
		e.Content,
		e.URL,
	}

	cells := make([]string, len(cols))
	for k, c := range cols {
		text := cell(values[k], c.width)
		switch {
		case isCursor && c.field == m.field:
			text = activeFieldStyle.Render(text)
		case c.title == "Dur" && values[k] == "error":
			text = errorStyle.Render(text)
		case c.field.IsTime() && !subtitle.ValidTime(values[k]):
			text = errorStyle.Render(text)
		}
		cells[k] = text
	}

	row := mark + strings.Join(cells, " ")
	if isCursor {
		return cursorStyle.Render(row)
	}
	return row
}

func (m Model) visibleRows() int {
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}
	rows := height - chromeHeight
	if m.mode == modeEdit || m.mode == modePrompt {
		rows -= promptHeight
	}
	return max(rows, 3)
}

func (m Model) promptTitle() string {
	switch m.prompt {
	case opOpen:
		if m.sess.Dirty() {
			return "Open file (unsaved changes will be lost)"
		}
		return "Open file"
	case opSaveAs:
		return "Save as"
	case opExport:
		return "Export to (.json or .srt)"
	default:
		return m.prompt.String()
	}
}

func (m Model) promptView(title string) string {
	body := titleStyle.Render(title) + "\n" + m.input.View()
	return promptBoxStyle.Render(body)
}

func (m Model) statusView() string {
	left := m.sess.Status().Current()
	right := english.Plural(m.sess.Len(), "entry", "entries")
	if n := len(m.sess.Selection()); n > 0 {
		right = fmt.Sprintf("%d selected · %s", n, right)
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	// status bar padding takes two columns
	gap := width - 2 - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) restoreView() string {
	snap := m.restore
	var b strings.Builder
	b.WriteString(titleStyle.Render("Unsaved work found"))
	b.WriteString("\n\n")

	age := "at an unknown time"
	if t, err := snap.SavedAt(); err == nil {
		age = humanize.Time(t)
	}
	file := "a new file"
	if snap.CurrentFilePath != nil && *snap.CurrentFilePath != "" {
		file = *snap.CurrentFilePath
	}
	fmt.Fprintf(&b, "An autosave of %s for %s was written %s.\n\n",
		english.Plural(len(snap.Subtitles), "entry", "entries"), file, age)
	b.WriteString("y restore · n keep it for later · d discard")
	return promptBoxStyle.Render(b.String())
}

// cell pads or truncates s to exactly width terminal columns.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
