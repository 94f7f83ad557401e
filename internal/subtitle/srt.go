package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var srtTimestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

// ParseSRT reads SRT cues into entries. SRT carries no video id or url, so
// those come from d. Times are truncated to whole seconds and multi-line
// cue text is joined with spaces, since an entry holds a single line.
func ParseSRT(r io.Reader, d Defaults) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	var (
		current   *Entry
		timed     bool
		textLines []string
		lineNum   int
	)

	flush := func() {
		if current != nil && timed && len(textLines) > 0 {
			current.Content = strings.Join(textLines, " ")
			entries = append(entries, *current)
		}
		current = nil
		timed = false
		textLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				e := d.NewEntry()
				current = &e
				continue
			}
		}

		if current != nil && !timed {
			matches := srtTimestampRegex.FindStringSubmatch(line)
			if len(matches) == 9 {
				start, err := parseSRTTimestamp(matches[1:5])
				if err != nil {
					return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
				}
				end, err := parseSRTTimestamp(matches[5:9])
				if err != nil {
					return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
				}
				current.StartTime = SecondsToTime(int(start / time.Second))
				current.EndTime = SecondsToTime(int(end / time.Second))
				timed = true
				continue
			}
		}

		if current != nil && timed {
			textLines = append(textLines, strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}
	return entries, nil
}

// parseSRTTimestamp takes hours, minutes, seconds and milliseconds.
func parseSRTTimestamp(parts []string) (time.Duration, error) {
	units := [4]time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond}
	var total time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}
