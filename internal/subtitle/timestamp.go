package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func parseTimestampLine(line string) (time.Duration, time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, fmt.Errorf("malformed timestamp line %q", line)
	}
	start, err := parseSRTTimestamp(matches[1], matches[2], matches[3], matches[4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start timestamp: %w", err)
	}
	end, err := parseSRTTimestamp(matches[5], matches[6], matches[7], matches[8])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end timestamp: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf(
			"end %s precedes start %s",
			FormatTimestamp(end),
			FormatTimestamp(start),
		)
	}
	return start, end, nil
}

func parseSRTTimestamp(
	hours, minutes, seconds, millis string,
) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}
	if m > 59 || s > 59 {
		return 0, fmt.Errorf("%s:%s:%s out of range", hours, minutes, seconds)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// ParseTimestamp parses a single HH:MM:SS,mmm (or HH:MM:SS.mmm) value.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	hms, millis, ok := strings.Cut(strings.ReplaceAll(value, ",", "."), ".")
	if !ok {
		millis = "000"
	}
	parts := strings.Split(hms, ":")
	if len(parts) != 3 || len(millis) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	d, err := parseSRTTimestamp(parts[0], parts[1], parts[2], millis)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timestamp %q: negative", value)
	}
	return d, nil
}

// FormatTimestamp renders d as HH:MM:SS.mmm.
func FormatTimestamp(d time.Duration) string {
	return formatVTTTime(d)
}

// FormatClock renders d as hh:mm:ss, dropping milliseconds.
func FormatClock(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
