package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/media"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/playback"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/timeline"
	"github.com/spf13/cobra"
)

// parsePosition accepts 00:01:02,500, a Go duration such as 1m2.5s, or a
// plain number of seconds.
func parsePosition(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty position")
	}

	var (
		pos time.Duration
		err error
	)
	switch {
	case strings.Contains(value, ":"):
		pos, err = subtitle.ParseTimestamp(value)
	default:
		if seconds, convErr := strconv.ParseFloat(value, 64); convErr == nil {
			pos, err = secondsToDuration(seconds)
		} else {
			pos, err = time.ParseDuration(value)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", value, err)
	}
	if pos < 0 {
		return 0, fmt.Errorf("invalid position %q: must not be negative", value)
	}
	return pos, nil
}

// lookupMode resolves the --mode flag, falling back to the config value.
func lookupMode(cmd *cobra.Command) (timeline.Mode, error) {
	name, _ := cmd.Flags().GetString("mode")
	if name == "" {
		name = cfg.Playback.Lookup
	}
	return timeline.ParseMode(name)
}

// longest position expressible as a time.Duration, in seconds
var maxPositionSeconds = float64(math.MaxInt64) / float64(time.Second)

func secondsToDuration(seconds float64) (time.Duration, error) {
	switch {
	case math.IsNaN(seconds) || math.IsInf(seconds, 0):
		return 0, fmt.Errorf("not a finite number of seconds")
	case seconds < 0:
		return 0, fmt.Errorf("must not be negative")
	case seconds >= maxPositionSeconds:
		return 0, fmt.Errorf("exceeds the longest supported position")
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func engineOptions(mode timeline.Mode, info *media.Info) playback.Options {
	return playback.Options{
		CaptionInterval:  cfg.CaptionInterval(),
		ProgressInterval: cfg.ProgressInterval(),
		Mode:             mode,
		Media:            info,
	}
}

func describeEntry(entry subtitle.Entry) string {
	return fmt.Sprintf("#%d [%s - %s] %s",
		entry.Index,
		subtitle.FormatTimestamp(entry.StartTime),
		subtitle.FormatTimestamp(entry.EndTime),
		entry.Text,
	)
}

// trackEnd is the latest caption end in entries.
func trackEnd(entries []subtitle.Entry) time.Duration {
	var end time.Duration
	for _, entry := range entries {
		if entry.EndTime > end {
			end = entry.EndTime
		}
	}
	return end
}
