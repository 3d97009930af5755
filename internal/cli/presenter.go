package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/playback"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/mattn/go-isatty"
)

// terminalPresenter prints caption changes as lines. On a terminal it also
// keeps a progress line that is rewritten in place.
type terminalPresenter struct {
	out         io.Writer
	clock       *playback.WallClock
	interactive bool
	progressLen int
}

func newTerminalPresenter(out io.Writer, clock *playback.WallClock) *terminalPresenter {
	return &terminalPresenter{
		out:         out,
		clock:       clock,
		interactive: isTerminal(out),
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *terminalPresenter) CaptionChanged(entry *subtitle.Entry) {
	p.clearProgress()
	if entry == nil {
		fmt.Fprintln(p.out, "  ...")
		return
	}
	fmt.Fprintf(p.out, "[%s] %s\n", subtitle.FormatTimestamp(entry.StartTime), entry.Text)
}

func (p *terminalPresenter) SeekRequested(pos time.Duration) {
	p.clearProgress()
	if p.clock != nil {
		p.clock.Seek(pos)
	}
	fmt.Fprintf(p.out, "Seeking to %s\n", subtitle.FormatTimestamp(pos))
}

func (p *terminalPresenter) Progress(pos, total time.Duration) {
	if !p.interactive {
		return
	}
	line := subtitle.FormatClock(pos)
	if total > 0 {
		line += " / " + subtitle.FormatClock(total)
	}
	fmt.Fprintf(p.out, "\r%s", line)
	p.progressLen = len(line)
}

func (p *terminalPresenter) clearProgress() {
	if p.progressLen == 0 {
		return
	}
	fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", p.progressLen))
	p.progressLen = 0
}
