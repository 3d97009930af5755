package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// longest caption line the scanner accepts
const maxLineSize = 1024 * 1024

var sequenceRegex = regexp.MustCompile(`^\d+$`)

var timestampRegex = regexp.MustCompile(
	`^(\d{1,3}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{1,3}):(\d{2}):(\d{2})[,.](\d{3})(?:\s.*)?$`,
)

type blockStep int

const (
	stepSequence blockStep = iota
	stepTimestamp
	stepText
)

// ParseSRT reads SubRip blocks from r and returns them in file order with
// time-contiguous blocks folded together. The whole input is rejected on the
// first malformed block.
func ParseSRT(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		entries   []Entry
		current   Entry
		textLines []string
		step      = stepSequence
		lineNum   = 0
	)

	finishBlock := func() {
		current.Text = joinText(textLines)
		entries = appendMerged(entries, current)
		current = Entry{}
		textLines = nil
		step = stepSequence
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		switch step {
		case stepSequence:
			if trimmed == "" {
				continue
			}
			index, err := strconv.Atoi(trimmed)
			if !sequenceRegex.MatchString(trimmed) || err != nil || index <= 0 {
				return nil, &FormatError{
					Reason: fmt.Sprintf("invalid sequence number %q", trimmed),
					Line:   lineNum,
				}
			}
			current = Entry{Index: index}
			step = stepTimestamp

		case stepTimestamp:
			if trimmed == "" {
				return nil, &FormatError{Reason: "missing timestamp line", Line: lineNum}
			}
			start, end, err := parseTimestampLine(trimmed)
			if err != nil {
				return nil, &FormatError{Reason: err.Error(), Line: lineNum}
			}
			current.StartTime = start
			current.EndTime = end
			step = stepText

		case stepText:
			if trimmed == "" {
				finishBlock()
				continue
			}
			textLines = append(textLines, trimmed)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT data: %w", err)
	}

	switch step {
	case stepTimestamp:
		return nil, &FormatError{Reason: "missing timestamp line", Line: lineNum + 1}
	case stepText:
		finishBlock()
	}

	return entries, nil
}

// appendMerged folds cur into the last entry when the previous caption ends
// exactly where cur begins.
func appendMerged(entries []Entry, cur Entry) []Entry {
	if n := len(entries); n > 0 && entries[n-1].EndTime == cur.StartTime {
		prev := &entries[n-1]
		prev.Text = joinText([]string{prev.Text, cur.Text})
		prev.EndTime = cur.EndTime
		return entries
	}
	return append(entries, cur)
}

func joinText(parts []string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
