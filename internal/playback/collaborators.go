package playback

import (
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
)

// Clock reports the current media position.
type Clock interface {
	Position() time.Duration
}

// Presenter receives caption changes and seek requests.
type Presenter interface {
	// CaptionChanged is called with the newly active entry, or nil when no
	// caption is active any more.
	CaptionChanged(entry *subtitle.Entry)
	SeekRequested(pos time.Duration)
}

// ProgressReporter is an optional Presenter extension fed by the progress
// cadence. total is zero when the media length is unknown.
type ProgressReporter interface {
	Progress(pos, total time.Duration)
}
