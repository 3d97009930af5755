package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// media file information
type Info struct {
	Path     string
	Duration time.Duration
	Width    int
	Height   int
	HasVideo bool
	HasAudio bool
}

// CanSeek reports whether pos lies inside the media. An unknown duration
// accepts every non-negative position.
func (i *Info) CanSeek(pos time.Duration) bool {
	if pos < 0 {
		return false
	}
	if i == nil || i.Duration <= 0 {
		return true
	}
	return pos < i.Duration
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// ProbeFunc runs ffprobe on a file and returns its JSON report.
type ProbeFunc func(path string, timeout time.Duration) (string, error)

type Prober struct {
	timeout time.Duration
	probe   ProbeFunc
}

func NewProber(timeout time.Duration) *Prober {
	return &Prober{timeout: timeout, probe: ffprobe}
}

// WithProbeFunc swaps the ffprobe runner, mainly for tests.
func (p *Prober) WithProbeFunc(fn ProbeFunc) *Prober {
	p.probe = fn
	return p
}

// Probe reads duration and stream layout of a media file.
func (p *Prober) Probe(ctx context.Context, path string) (*Info, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("media file not found: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := p.probe(path, p.timeout)
		done <- result{out: out, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", res.err)
	}

	info, err := parseProbeOutput(res.out)
	if err != nil {
		return nil, err
	}
	info.Path = path
	return info, nil
}

func parseProbeOutput(out string) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{}
	var longestStream time.Duration
	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			info.HasVideo = true
			if stream.Width > info.Width {
				info.Width = stream.Width
				info.Height = stream.Height
			}
		case "audio":
			info.HasAudio = true
		}
		if d, err := parseSeconds(stream.Duration); err == nil && d > longestStream {
			longestStream = d
		}
	}

	duration, err := parseSeconds(probe.Format.Duration)
	if err != nil {
		// some containers only report per-stream durations
		duration = longestStream
	}
	info.Duration = duration
	return info, nil
}

func parseSeconds(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return 0, fmt.Errorf("no duration")
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %q", value)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".wmv": true,
	".webm": true, ".m4v": true, ".flv": true, ".ts": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".aac": true, ".flac": true, ".ogg": true,
	".m4a": true, ".opus": true, ".wma": true,
}

// IsMediaFile reports whether path has a known audio or video extension.
func IsMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return videoExtensions[ext] || audioExtensions[ext]
}
