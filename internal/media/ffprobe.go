package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFprobeEnv names an explicit ffprobe binary, used instead of the one on PATH.
const FFprobeEnv = "CAPTIONPLAYER_FFPROBE_PATH"

var ErrFFprobeNotFound = errors.New(
	"ffprobe not found: install ffmpeg or set " + FFprobeEnv,
)

func ffprobe(path string, timeout time.Duration) (string, error) {
	if bin := os.Getenv(FFprobeEnv); bin != "" {
		return runFFprobe(bin, path, timeout)
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return "", ErrFFprobeNotFound
	}
	return ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
}

// runFFprobe invokes a specific ffprobe binary with the same arguments
// ffmpeg-go passes to the one on PATH.
func runFFprobe(bin, path string, timeout time.Duration) (string, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return "", err
	}
	return stdout.String(), nil
}
