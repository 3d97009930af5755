package subtitle

import (
	"fmt"
	"io"
	"time"
)

// represents single caption entry
type Entry struct {
	Index     int // sequence number from the source file, not unique after merging
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Contains reports whether pos falls in [StartTime, EndTime).
func (e Entry) Contains(pos time.Duration) bool {
	return pos >= e.StartTime && pos < e.EndTime
}

// TimeStamp renders the entry range as hh:mm:ss - hh:mm:ss for list views.
func (e Entry) TimeStamp() string {
	return fmt.Sprintf("%s - %s", FormatClock(e.StartTime), FormatClock(e.EndTime))
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// interface for writing caption tracks to files
type Writer interface {
	Write(entries []Entry, path string) error
	Encode(out io.Writer, entries []Entry) error
}
