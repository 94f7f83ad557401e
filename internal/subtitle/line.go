package subtitle

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Separators include Unicode spaces such as U+3000 and NBSP.
var lineRegex = regexp.MustCompile(
	`^([^\s\p{Z}]+)[\s\p{Z}]+(\d{2}:\d{2}:\d{2})[\s\p{Z}]+(\d{2}:\d{2}:\d{2})[\s\p{Z}]+(.+?)[\s\p{Z}]+(https?://[^\s\p{Z}]+)$`,
)

var lineBreakRegex = regexp.MustCompile(`\r\n|[\n\r\x{85}\x{2028}\x{2029}]`)

// lineBreaks lists every rune that ends a line when reading a file.
const lineBreaks = "\r\n\u0085\u2028\u2029"

// HasLineBreak reports whether s would be split across lines on read.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, lineBreaks)
}

// Encode renders e as a single line of the subtitle text format.
func Encode(e Entry) string {
	return fmt.Sprintf("%s %s %s %s %s",
		e.VideoID, e.StartTime, e.EndTime, e.Content, e.URL)
}

// Decode parses one line. Lines that do not match the format report false
// and are meant to be skipped by the caller.
func Decode(line string) (Entry, bool) {
	matches := lineRegex.FindStringSubmatch(line)
	if len(matches) != 6 {
		return Entry{}, false
	}
	return Entry{
		ID:        uuid.New(),
		VideoID:   matches[1],
		StartTime: matches[2],
		EndTime:   matches[3],
		Content:   matches[4],
		URL:       matches[5],
	}, true
}

// ParseLines decodes every well-formed line of text in order.
func ParseLines(text string) []Entry {
	text = strings.TrimPrefix(text, "\ufeff")

	var entries []Entry
	for _, line := range lineBreakRegex.Split(text, -1) {
		entry, ok := Decode(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// EncodeLines joins the encoded entries with newlines.
func EncodeLines(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = Encode(entry)
	}
	return strings.Join(lines, "\n")
}
