package subtitle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// custom one-entry-per-line text format
type LinesWriter struct{}

// pretty-printed JSON array
type JSONWriter struct {
	Indent string
}

// SubRip format
type SRTWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatLines:
		return &LinesWriter{}, nil
	case FormatJSON:
		return &JSONWriter{Indent: "  "}, nil
	case FormatSRT:
		return &SRTWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Marshal encodes entries with the writer for format.
func Marshal(format Format, entries []Entry) ([]byte, error) {
	writer, err := NewWriter(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writer.Encode(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *LinesWriter) Encode(out io.Writer, entries []Entry) error {
	_, err := io.WriteString(out, EncodeLines(entries))
	return err
}

func (w *JSONWriter) Encode(out io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", w.Indent)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// Each entry becomes index, timing, content and a blank line; blocks are
// joined with newlines, so the output ends in a single newline.
func (w *SRTWriter) Encode(out io.Writer, entries []Entry) error {
	lines := make([]string, 0, len(entries)*4)
	for i, entry := range entries {
		// index (1-based)
		lines = append(lines, fmt.Sprintf("%d", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		lines = append(lines, fmt.Sprintf("%s --> %s",
			FormatSRTTime(entry.StartTime),
			FormatSRTTime(entry.EndTime)))

		lines = append(lines, entry.Content, "")
	}

	_, err := io.WriteString(out, strings.Join(lines, "\n"))
	return err
}

// output format based on file extension
func FormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON
	case ".srt":
		return FormatSRT
	default:
		return FormatLines
	}
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatSRT:
		return ".srt"
	default:
		return ".txt"
	}
}
