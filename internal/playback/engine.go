package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/logging"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/media"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/timeline"
)

var (
	ErrNoTrack        = errors.New("no caption track loaded")
	ErrSeekOutOfRange = errors.New("seek target is beyond the end of the media")
)

type Options struct {
	CaptionInterval  time.Duration
	ProgressInterval time.Duration
	Mode             timeline.Mode
	Media            *media.Info // nil when no media is known
}

func (o Options) mediaDuration() time.Duration {
	if o.Media == nil {
		return 0
	}
	return o.Media.Duration
}

func DefaultOptions() Options {
	return Options{
		CaptionInterval:  200 * time.Millisecond,
		ProgressInterval: 400 * time.Millisecond,
		Mode:             timeline.ModeInterval,
	}
}

type track struct {
	path  string
	index *timeline.Index
}

type Engine struct {
	clock     Clock
	presenter Presenter
	logger    *logging.Logger
	opts      Options

	loadMu sync.Mutex
	parser *subtitle.Parser
	track  atomic.Pointer[track]

	// only touched by Tick
	tracker *Tracker
}

func NewEngine(
	clock Clock,
	presenter Presenter,
	opts Options,
	logger *logging.Logger,
) *Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	defaults := DefaultOptions()
	if opts.CaptionInterval <= 0 {
		opts.CaptionInterval = defaults.CaptionInterval
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = defaults.ProgressInterval
	}
	return &Engine{
		clock:     clock,
		presenter: presenter,
		logger:    logger,
		opts:      opts,
		parser:    subtitle.NewParser(logger),
		tracker:   NewTracker(),
	}
}

// Load parses the SRT file at path and makes it the active track. On failure
// the previously loaded track stays active.
func (e *Engine) Load(path string) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()
	return e.load(path)
}

// Reload rereads the active track from disk, bypassing the parse cache.
func (e *Engine) Reload() error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	current := e.track.Load()
	if current == nil {
		return ErrNoTrack
	}
	e.parser.Invalidate()
	return e.load(current.path)
}

func (e *Engine) load(path string) error {
	start := time.Now()
	entries, cached, err := e.parser.Load(path)
	if err != nil {
		e.logger.Warnw("Keeping previous caption track",
			"path", path,
			"error", err,
		)
		return err
	}
	// the cache only ever holds the active track
	if cached && e.track.Load() != nil {
		e.logger.Debugw("Caption track unchanged", "path", path)
		return nil
	}

	index := timeline.Build(entries, timeline.WithMode(e.opts.Mode))
	e.track.Store(&track{path: path, index: index})

	e.logger.Infow("Loaded caption track",
		"path", path,
		"entries", index.Len(),
		"mode", e.opts.Mode.String(),
		"elapsed", time.Since(start).String(),
	)
	return nil
}

// Unload discards the active track.
func (e *Engine) Unload() {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()
	e.track.Store(nil)
	e.parser.Invalidate()
}

// Index returns the active index, or nil when nothing is loaded.
func (e *Engine) Index() *timeline.Index {
	if current := e.track.Load(); current != nil {
		return current.index
	}
	return nil
}

// Path returns the path of the active track.
func (e *Engine) Path() string {
	if current := e.track.Load(); current != nil {
		return current.path
	}
	return ""
}

// Entries lists the active track in file order.
func (e *Engine) Entries() []subtitle.Entry {
	return e.Index().Entries()
}

// Tick performs one caption poll. It must not be called concurrently with
// itself or with Run.
func (e *Engine) Tick() (Transition, bool) {
	index := e.Index()
	pos := -1
	if index != nil {
		pos = index.Locate(e.clock.Position())
	}

	transition, changed := e.tracker.Observe(index, pos)
	if changed {
		if transition.Entry != nil {
			e.logger.Debugw("Caption active",
				"index", transition.Entry.Index,
				"start", subtitle.FormatTimestamp(transition.Entry.StartTime),
			)
		} else {
			e.logger.Debugw("Caption cleared")
		}
		e.presenter.CaptionChanged(transition.Entry)
	}
	return transition, changed
}

// State is the tracker state after the last Tick.
func (e *Engine) State() State {
	return e.tracker.State()
}

func (e *Engine) reportProgress() {
	if reporter, ok := e.presenter.(ProgressReporter); ok {
		reporter.Progress(e.clock.Position(), e.opts.mediaDuration())
	}
}

// Run polls captions and progress on their own cadences until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	captionTicker := time.NewTicker(e.opts.CaptionInterval)
	defer captionTicker.Stop()
	progressTicker := time.NewTicker(e.opts.ProgressInterval)
	defer progressTicker.Stop()

	e.Tick()
	e.reportProgress()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-captionTicker.C:
			e.Tick()
		case <-progressTicker.C:
			e.reportProgress()
		}
	}
}

// Seek asks the presenter to move playback to the start of entry.
func (e *Engine) Seek(entry subtitle.Entry) (time.Duration, error) {
	index := e.Index()
	if index == nil {
		return 0, ErrNoTrack
	}
	target := index.JumpTarget(entry)
	if !e.opts.Media.CanSeek(target) {
		return 0, fmt.Errorf("%w: %s, media ends at %s",
			ErrSeekOutOfRange,
			subtitle.FormatTimestamp(target),
			subtitle.FormatTimestamp(e.opts.mediaDuration()),
		)
	}
	e.logger.Debugw("Seek requested", "target", subtitle.FormatTimestamp(target))
	e.presenter.SeekRequested(target)
	return target, nil
}

// SeekTo seeks to the entry at list position i (0-based, file order).
func (e *Engine) SeekTo(i int) (time.Duration, error) {
	index := e.Index()
	if index == nil {
		return 0, ErrNoTrack
	}
	entry, ok := index.At(i)
	if !ok {
		return 0, fmt.Errorf("entry %d out of range (0-%d)", i, index.Len()-1)
	}
	return e.Seek(entry)
}

type nopPresenter struct{}

func (nopPresenter) CaptionChanged(*subtitle.Entry) {}

func (nopPresenter) SeekRequested(time.Duration) {}
