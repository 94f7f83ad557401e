package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var timeRegex = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// reports whether s is a strict HH:MM:SS time
func ValidTime(s string) bool {
	return timeRegex.MatchString(s)
}

// TimeToSeconds converts HH:MM:SS into seconds. Anything that is not three
// colon separated parts yields 0, and non-numeric parts count as 0.
func TimeToSeconds(s string) int {
	parts, ok := splitTime(s)
	if !ok {
		return 0
	}
	return parts[0]*3600 + parts[1]*60 + parts[2]
}

// SecondsToTime formats seconds as zero-padded HH:MM:SS, clamping negative
// input to zero.
func SecondsToTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// AdjustTime shifts t by delta seconds without going below zero. Values that
// are not three colon separated parts are returned unchanged.
func AdjustTime(t string, delta int) string {
	if _, ok := splitTime(t); !ok {
		return t
	}
	return SecondsToTime(max(0, TimeToSeconds(t)+delta))
}

// HH:MM:SS -> HH:MM:SS,000
func FormatSRTTime(s string) string {
	if ValidTime(s) {
		return s + ",000"
	}
	return s
}

// Duration returns end minus start in seconds. ok is false when the result
// is negative.
func Duration(e Entry) (seconds int, ok bool) {
	seconds = TimeToSeconds(e.EndTime) - TimeToSeconds(e.StartTime)
	return seconds, seconds >= 0
}

// DurationText is the human readable form of Duration.
func DurationText(e Entry) string {
	seconds, ok := Duration(e)
	if !ok {
		return "error"
	}
	return fmt.Sprintf("%ds", seconds)
}

func splitTime(s string) ([3]int, bool) {
	var out [3]int
	// empty segments are dropped, so "::5" is one part, not three
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' })
	if len(parts) != 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out, true
}
