package playback

import (
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/timeline"
)

type State int

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Transition describes a change of the active caption.
type Transition struct {
	From  State
	To    State
	Entry *subtitle.Entry // nil when To is StateIdle
}

// Tracker remembers which entry of which index is active. It is owned by a
// single polling goroutine.
type Tracker struct {
	index  *timeline.Index
	active int // parse-order position, -1 when idle
}

func NewTracker() *Tracker {
	return &Tracker{active: -1}
}

func (t *Tracker) State() State {
	if t.active < 0 {
		return StateIdle
	}
	return StateActive
}

// Active returns the active entry, if any.
func (t *Tracker) Active() (subtitle.Entry, bool) {
	if t.active < 0 {
		return subtitle.Entry{}, false
	}
	return t.index.At(t.active)
}

// Observe records the lookup result for one tick and reports whether the
// active caption changed. Switching to a different index always counts as a
// change from the old entry.
func (t *Tracker) Observe(index *timeline.Index, pos int) (Transition, bool) {
	from := t.State()
	if index == t.index && pos == t.active {
		return Transition{}, false
	}

	previouslyIdle := t.active < 0
	t.index = index
	t.active = pos

	if pos < 0 {
		if previouslyIdle {
			return Transition{}, false
		}
		return Transition{From: from, To: StateIdle}, true
	}

	entry, _ := index.At(pos)
	return Transition{From: from, To: StateActive, Entry: &entry}, true
}

// Reset forgets the active entry without reporting a transition.
func (t *Tracker) Reset() {
	t.index = nil
	t.active = -1
}
