package subtitle

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

const scenarioSRT = `1
00:00:01,000 --> 00:00:02,000
Hello

2
00:00:02,000 --> 00:00:03,500
world

3
00:00:05,000 --> 00:00:06,000
Goodbye
`

func TestParseSRTMergesContiguousBlocks(t *testing.T) {
	entries, err := ParseSRT(strings.NewReader(scenarioSRT))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}

	want := []Entry{
		{Index: 1, StartTime: time.Second, EndTime: 3500 * time.Millisecond, Text: "Hello world"},
		{Index: 3, StartTime: 5 * time.Second, EndTime: 6 * time.Second, Text: "Goodbye"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("got %+v, want %+v", entries, want)
	}
}

func TestParseSRTKeepsOneMillisecondGap(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:01,999
first

2
00:00:02,000 --> 00:00:03,000
second
`
	entries, err := ParseSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "first" || entries[1].Text != "second" {
		t.Errorf("unexpected texts %q, %q", entries[0].Text, entries[1].Text)
	}
}

func TestParseSRTMergesChains(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:02,000
one

2
00:00:02,000 --> 00:00:03,000
two

3
00:00:03,000 --> 00:00:04,000
three
`
	entries, err := ParseSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Text != "one two three" {
		t.Errorf("text: got %q", got.Text)
	}
	if got.StartTime != time.Second || got.EndTime != 4*time.Second {
		t.Errorf("range: got %v-%v", got.StartTime, got.EndTime)
	}
	if got.Index != 1 {
		t.Errorf("index: got %d, want 1", got.Index)
	}
}

func TestParseSRTNormalizesText(t *testing.T) {
	content := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\n  first line \r\nsecond line\r\n\r\n\r\n \r\n" +
		"2\r\n00:00:04.000 --> 00:00:05.000 X1:10 X2:20\r\nthird\r\n"

	entries, err := ParseSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "first line second line" {
		t.Errorf("entry 0: got %q", entries[0].Text)
	}
	if strings.ContainsAny(entries[0].Text, "\r\n") {
		t.Errorf("entry 0 contains line breaks: %q", entries[0].Text)
	}
	if entries[1].StartTime != 4*time.Second {
		t.Errorf("entry 1: expected start 4s, got %v", entries[1].StartTime)
	}
}

func TestParseSRTEmptyTextBlock(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:02,000

2
00:00:02,000 --> 00:00:03,000
after
`
	entries, err := ParseSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Text != "after" {
		t.Errorf("got %q, want %q", entries[0].Text, "after")
	}
}

func TestParseSRTEmptyInput(t *testing.T) {
	entries, err := ParseSRT(strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestParseSRTFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
		reason   string
	}{
		{
			name:     "non numeric sequence",
			content:  "one\n00:00:01,000 --> 00:00:02,000\nhi\n",
			wantLine: 1,
			reason:   "sequence",
		},
		{
			name:     "zero sequence",
			content:  "0\n00:00:01,000 --> 00:00:02,000\nhi\n",
			wantLine: 1,
			reason:   "sequence",
		},
		{
			name:     "signed sequence",
			content:  "+1\n00:00:01,000 --> 00:00:02,000\nhi\n",
			wantLine: 1,
			reason:   "sequence",
		},
		{
			name:     "sequence on second block",
			content:  "1\n00:00:01,000 --> 00:00:02,000\nhi\n\n-2\n00:00:03,000 --> 00:00:04,000\nbye\n",
			wantLine: 5,
			reason:   "sequence",
		},
		{
			name:     "missing arrow",
			content:  "1\n00:00:01,000 00:00:02,000\nhi\n",
			wantLine: 2,
			reason:   "malformed timestamp",
		},
		{
			name:     "blank timestamp line",
			content:  "1\n\nhi\n",
			wantLine: 2,
			reason:   "missing timestamp",
		},
		{
			name:     "timestamp missing at eof",
			content:  "1\n00:00:01,000 --> 00:00:02,000\nhi\n\n2\n",
			wantLine: 6,
			reason:   "missing timestamp",
		},
		{
			name:     "inverted range",
			content:  "1\n00:00:03,000 --> 00:00:02,000\nhi\n",
			wantLine: 2,
			reason:   "precedes",
		},
		{
			name:     "seconds out of range",
			content:  "1\n00:00:75,000 --> 00:01:20,000\nhi\n",
			wantLine: 2,
			reason:   "out of range",
		},
		{
			name:     "second block bad",
			content:  "1\n00:00:01,000 --> 00:00:02,000\nhi\n\nx\n",
			wantLine: 5,
			reason:   "sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseSRT(strings.NewReader(tt.content))
			if err == nil {
				t.Fatalf("expected error, got entries %+v", entries)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T: %v", err, err)
			}
			if fe.Line != tt.wantLine {
				t.Errorf("line: got %d, want %d", fe.Line, tt.wantLine)
			}
			if !strings.Contains(fe.Reason, tt.reason) {
				t.Errorf("reason %q does not mention %q", fe.Reason, tt.reason)
			}
			if entries != nil {
				t.Errorf("expected nil entries on error, got %+v", entries)
			}
		})
	}
}

func TestParseSRTDeterministic(t *testing.T) {
	first, err := ParseSRT(strings.NewReader(scenarioSRT))
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseSRT(strings.NewReader(scenarioSRT))
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parses differ: %+v vs %+v", first, second)
	}
}
