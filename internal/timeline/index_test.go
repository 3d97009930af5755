package timeline

import (
	"strings"
	"testing"
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func scenarioIndex(t *testing.T, opts ...Option) *Index {
	t.Helper()
	entries, err := subtitle.ParseSRT(strings.NewReader(`1
00:00:01,000 --> 00:00:02,000
Hello

2
00:00:02,000 --> 00:00:03,500
world

3
00:00:05,000 --> 00:00:06,000
Goodbye
`))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	return Build(entries, opts...)
}

func TestLookupScenario(t *testing.T) {
	for _, mode := range []Mode{ModeInterval, ModeBucket} {
		t.Run(mode.String(), func(t *testing.T) {
			x := scenarioIndex(t, WithMode(mode))
			if x.Len() != 2 {
				t.Fatalf("expected 2 entries, got %d", x.Len())
			}

			if mode == ModeInterval {
				got, ok := x.Lookup(ms(2500))
				if !ok || got.Text != "Hello world" {
					t.Errorf("lookup(2.5s) = %+v, %v", got, ok)
				}
			}
			if got, ok := x.Lookup(4 * time.Second); ok {
				t.Errorf("lookup(4s) = %+v, want nothing", got)
			}
			got, ok := x.Lookup(ms(5500))
			if !ok || got.Text != "Goodbye" {
				t.Errorf("lookup(5.5s) = %+v, %v", got, ok)
			}
		})
	}
}

func TestLookupBoundaries(t *testing.T) {
	prev := subtitle.Entry{Index: 1, StartTime: ms(3000), EndTime: ms(4000), Text: "before"}
	target := subtitle.Entry{Index: 2, StartTime: ms(5200), EndTime: ms(7000), Text: "target"}

	for _, mode := range []Mode{ModeInterval, ModeBucket} {
		t.Run(mode.String(), func(t *testing.T) {
			x := Build([]subtitle.Entry{prev, target}, WithMode(mode))

			if got, ok := x.Lookup(ms(5300)); !ok || got != target {
				t.Errorf("lookup(5.3s) = %+v, %v", got, ok)
			}
			if got, ok := x.Lookup(ms(4999)); ok && got == target {
				t.Errorf("lookup(4.999s) returned the later entry")
			}
		})
	}
}

func TestIntervalEndIsExclusive(t *testing.T) {
	x := Build([]subtitle.Entry{
		{Index: 1, StartTime: ms(1000), EndTime: ms(2000), Text: "a"},
	})
	if _, ok := x.Lookup(ms(1999)); !ok {
		t.Error("expected entry just before end")
	}
	if _, ok := x.Lookup(ms(2000)); ok {
		t.Error("expected no entry at end")
	}
}

func TestIntervalMatchesTailAcrossSecondBoundary(t *testing.T) {
	x := Build([]subtitle.Entry{
		{Index: 1, StartTime: ms(1800), EndTime: ms(4200), Text: "long"},
	})
	for _, pos := range []time.Duration{ms(1800), ms(2500), ms(4100)} {
		if _, ok := x.Lookup(pos); !ok {
			t.Errorf("interval lookup(%v) missed", pos)
		}
	}

	bucket := Build(x.Entries(), WithMode(ModeBucket))
	if _, ok := bucket.Lookup(ms(2500)); ok {
		t.Error("bucket lookup should only match the starting second")
	}
}

func TestBucketCollisionLastWriteWins(t *testing.T) {
	earlier := subtitle.Entry{Index: 1, StartTime: ms(12100), EndTime: ms(12500), Text: "earlier"}
	later := subtitle.Entry{Index: 2, StartTime: ms(12600), EndTime: ms(13500), Text: "later"}
	x := Build([]subtitle.Entry{earlier, later}, WithMode(ModeBucket))

	got, ok := x.Bucket(12)
	if !ok || got != later {
		t.Errorf("bucket 12 = %+v, want later entry", got)
	}
	for _, pos := range []time.Duration{ms(12000), ms(12200), ms(12999)} {
		if got, ok := x.Lookup(pos); !ok || got != later {
			t.Errorf("bucket lookup(%v) = %+v, want later entry", pos, got)
		}
	}

	// the earlier entry is still listed and reachable by interval lookup
	if x.Len() != 2 {
		t.Errorf("collision must not drop entries from the list, got %d", x.Len())
	}
	interval := Build(x.Entries())
	if got, _ := interval.Lookup(ms(12200)); got != earlier {
		t.Errorf("interval lookup(12.2s) = %+v, want earlier entry", got)
	}
}

func TestOverlapResolvesToLatestStart(t *testing.T) {
	outer := subtitle.Entry{Index: 1, StartTime: ms(1000), EndTime: ms(9000), Text: "outer"}
	inner := subtitle.Entry{Index: 2, StartTime: ms(3000), EndTime: ms(4000), Text: "inner"}
	after := subtitle.Entry{Index: 3, StartTime: ms(5000), EndTime: ms(6000), Text: "after"}
	x := Build([]subtitle.Entry{outer, inner, after})

	tests := []struct {
		pos  time.Duration
		want string
	}{
		{ms(2000), "outer"},
		{ms(3500), "inner"},
		{ms(4500), "outer"},
		{ms(5500), "after"},
		{ms(8000), "outer"},
	}
	for _, tt := range tests {
		got, ok := x.Lookup(tt.pos)
		if !ok || got.Text != tt.want {
			t.Errorf("lookup(%v) = %q, want %q", tt.pos, got.Text, tt.want)
		}
	}
}

func TestLocateUnsortedInput(t *testing.T) {
	x := Build([]subtitle.Entry{
		{Index: 2, StartTime: ms(5000), EndTime: ms(6000), Text: "second"},
		{Index: 1, StartTime: ms(1000), EndTime: ms(2000), Text: "first"},
	})
	if got := x.Locate(ms(1500)); got != 1 {
		t.Errorf("Locate(1.5s) = %d, want 1", got)
	}
	if got := x.Locate(ms(5500)); got != 0 {
		t.Errorf("Locate(5.5s) = %d, want 0", got)
	}
}

func TestEmptyAndNilIndex(t *testing.T) {
	var nilIndex *Index
	if _, ok := nilIndex.Lookup(time.Second); ok {
		t.Error("nil index returned an entry")
	}
	if nilIndex.Len() != 0 || nilIndex.Entries() != nil {
		t.Error("nil index should be empty")
	}

	empty := Build(nil)
	if got := empty.Locate(time.Second); got != -1 {
		t.Errorf("empty Locate = %d", got)
	}
	if _, ok := scenarioIndex(t).Lookup(-time.Second); ok {
		t.Error("negative position returned an entry")
	}
}

func TestJumpTargetRoundTrip(t *testing.T) {
	x := scenarioIndex(t)
	for _, pos := range []time.Duration{ms(1000), ms(1700), ms(2999), ms(3499)} {
		entry, ok := x.Lookup(pos)
		if !ok {
			t.Fatalf("lookup(%v) missed", pos)
		}
		if got := x.JumpTarget(entry); got != ms(1000) {
			t.Errorf("JumpTarget(lookup(%v)) = %v, want 1s", pos, got)
		}
	}
}

func TestBuildCopiesInput(t *testing.T) {
	entries := []subtitle.Entry{{Index: 1, StartTime: 0, EndTime: time.Second, Text: "a"}}
	x := Build(entries)
	entries[0].Text = "mutated"
	if got, _ := x.At(0); got.Text != "a" {
		t.Errorf("index observed caller mutation: %q", got.Text)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeInterval, false},
		{"Interval", ModeInterval, false},
		{"bucket", ModeBucket, false},
		{"range", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}
