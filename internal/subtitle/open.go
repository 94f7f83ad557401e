package subtitle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Open reads entries from path with the fixed defaults filling in what SRT
// files lack. See OpenWith.
func Open(path string) ([]Entry, error) {
	return OpenWith(path, DefaultDefaults())
}

// OpenWith reads entries from path. JSON exports are decoded as an entry
// array and SRT cues are converted using d; every other file is treated as
// the line format, dropping lines that do not parse.
func OpenWith(path string, d Defaults) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	switch FormatFromExtension(path) {
	case FormatLines:
		return ParseLines(string(data)), nil
	case FormatJSON:
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse JSON subtitles: %w", err)
		}
		return EnsureIDs(entries), nil
	case FormatSRT:
		entries, err := ParseSRT(bytes.NewReader(data), d)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SRT subtitles: %w", err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", path)
	}
}

// ReadFile reads a line-format file regardless of its extension.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	return ParseLines(string(data)), nil
}

// EnsureIDs gives entries without an ID a fresh one.
func EnsureIDs(entries []Entry) []Entry {
	for i := range entries {
		if entries[i].ID == uuid.Nil {
			entries[i].ID = uuid.New()
		}
	}
	return entries
}
