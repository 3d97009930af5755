package timeline

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
)

// Mode selects how Lookup resolves a position.
type Mode int

const (
	// ModeInterval returns the entry whose [start, end) range contains the
	// position.
	ModeInterval Mode = iota
	// ModeBucket returns the entry whose start falls in the same whole second
	// as the position, regardless of its end.
	ModeBucket
)

func (m Mode) String() string {
	switch m {
	case ModeInterval:
		return "interval"
	case ModeBucket:
		return "bucket"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a config or flag value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "interval":
		return ModeInterval, nil
	case "bucket":
		return ModeBucket, nil
	default:
		return 0, fmt.Errorf("unsupported lookup mode %q: use interval or bucket", name)
	}
}

type Option func(*Index)

func WithMode(mode Mode) Option {
	return func(x *Index) {
		x.mode = mode
	}
}

type Index struct {
	mode    Mode
	entries []subtitle.Entry // parse order

	// byStart holds entry positions sorted by start time (stable), maxEnd[i]
	// is the latest end among byStart[:i+1].
	byStart []int
	maxEnd  []time.Duration

	buckets map[int64]int
}

// Build indexes entries. The slice is copied; later changes by the caller are
// not observed.
func Build(entries []subtitle.Entry, opts ...Option) *Index {
	x := &Index{
		entries: slices.Clone(entries),
		buckets: make(map[int64]int, len(entries)),
	}
	for _, opt := range opts {
		opt(x)
	}

	for i, entry := range x.entries {
		// later entries overwrite earlier ones in the same second
		x.buckets[BucketOf(entry.StartTime)] = i
	}

	x.byStart = make([]int, len(x.entries))
	for i := range x.byStart {
		x.byStart[i] = i
	}
	sort.SliceStable(x.byStart, func(a, b int) bool {
		return x.entries[x.byStart[a]].StartTime < x.entries[x.byStart[b]].StartTime
	})

	x.maxEnd = make([]time.Duration, len(x.byStart))
	var latest time.Duration
	for i, pos := range x.byStart {
		if end := x.entries[pos].EndTime; end > latest {
			latest = end
		}
		x.maxEnd[i] = latest
	}

	return x
}

// BucketOf is the whole second d falls in.
func BucketOf(d time.Duration) int64 {
	return int64(d / time.Second)
}

func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Entries returns a copy of the indexed entries in parse order.
func (x *Index) Entries() []subtitle.Entry {
	if x == nil {
		return nil
	}
	return slices.Clone(x.entries)
}

// At returns the entry at parse-order position i.
func (x *Index) At(i int) (subtitle.Entry, bool) {
	if x == nil || i < 0 || i >= len(x.entries) {
		return subtitle.Entry{}, false
	}
	return x.entries[i], true
}

// Bucket returns the entry occupying the given whole second, if any.
func (x *Index) Bucket(second int64) (subtitle.Entry, bool) {
	if x == nil {
		return subtitle.Entry{}, false
	}
	pos, ok := x.buckets[second]
	if !ok {
		return subtitle.Entry{}, false
	}
	return x.entries[pos], true
}

// Lookup returns the entry active at pos.
func (x *Index) Lookup(pos time.Duration) (subtitle.Entry, bool) {
	return x.At(x.Locate(pos))
}

// Locate is Lookup returning the parse-order position of the active entry,
// or -1 when no entry is active.
func (x *Index) Locate(pos time.Duration) int {
	if x == nil || len(x.entries) == 0 || pos < 0 {
		return -1
	}
	if x.mode == ModeBucket {
		if i, ok := x.buckets[BucketOf(pos)]; ok {
			return i
		}
		return -1
	}
	return x.locateInterval(pos)
}

// locateInterval picks, among entries containing pos, the one that started
// last so overlapping captions still resolve to a single entry.
func (x *Index) locateInterval(pos time.Duration) int {
	// first sorted slot whose start is after pos
	n := sort.Search(len(x.byStart), func(i int) bool {
		return x.entries[x.byStart[i]].StartTime > pos
	})
	for i := n - 1; i >= 0 && x.maxEnd[i] > pos; i-- {
		if x.entries[x.byStart[i]].Contains(pos) {
			return x.byStart[i]
		}
	}
	return -1
}

// JumpTarget is the position a player seeks to when the entry is chosen.
func (x *Index) JumpTarget(entry subtitle.Entry) time.Duration {
	return entry.StartTime
}
