package subtitle

import (
	"io"

	"github.com/google/uuid"
)

// represents single subtitle entry
type Entry struct {
	ID        uuid.UUID `json:"id"`
	VideoID   string    `json:"videoID"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
}

// field values used when a new entry has no neighbour to copy from
type Defaults struct {
	VideoID   string
	URL       string
	Content   string
	StartTime string
	EndTime   string
}

func DefaultDefaults() Defaults {
	return Defaults{
		VideoID:   "hebtv-11007440",
		URL:       "https://web.cmc.hebtv.com/cms/rmt0336/0/0rmhlm/qy/hbggpd/xw6hx/11007440.shtml",
		Content:   "新字幕",
		StartTime: "00:00:00",
		EndTime:   "00:00:01",
	}
}

// NewEntry returns an entry built from d with a fresh ID.
func (d Defaults) NewEntry() Entry {
	return Entry{
		ID:        uuid.New(),
		VideoID:   d.VideoID,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Content:   d.Content,
		URL:       d.URL,
	}
}

// represents supported output formats
type Format string

const (
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
	FormatSRT   Format = "srt"
)

// interface for serializing an ordered entry list
type Writer interface {
	Encode(w io.Writer, entries []Entry) error
}
