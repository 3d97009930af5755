package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/logging"
)

// Parser reads SRT files and remembers the result of the last successful
// parse. The cache holds one track keyed by absolute path only; a file that
// changes on disk keeps returning the old entries until Invalidate is called.
// A Parser is not safe for concurrent use.
type Parser struct {
	logger *logging.Logger

	cached      bool
	lastPath    string
	lastEntries []Entry
}

func NewParser(logger *logging.Logger) *Parser {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Parser{logger: logger}
}

// ParseFile returns the merged entries of the SRT file at path. Parsing the
// same path twice in a row returns a copy of the cached entries without
// touching the filesystem. A failed parse leaves the cache as it was.
func (p *Parser) ParseFile(path string) ([]Entry, error) {
	entries, _, err := p.Load(path)
	return entries, err
}

// Load is ParseFile that also reports whether the entries came from the cache.
func (p *Parser) Load(path string) ([]Entry, bool, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve SRT path: %w", err)
	}

	if p.cached && key == p.lastPath {
		p.logger.Debugw("Reusing parsed caption track", "path", key)
		return slices.Clone(p.lastEntries), true, nil
	}

	file, err := os.Open(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	entries, err := ParseSRT(file)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	p.logger.Debugw("Parsed caption track",
		"path", key,
		"entries", len(entries),
	)

	p.cached = true
	p.lastPath = key
	p.lastEntries = entries
	return slices.Clone(entries), false, nil
}

// Invalidate drops the cached track so the next ParseFile rereads the file.
func (p *Parser) Invalidate() {
	p.cached = false
	p.lastPath = ""
	p.lastEntries = nil
}

// LastPath is the absolute path of the cached track, if any.
func (p *Parser) LastPath() (string, bool) {
	return p.lastPath, p.cached
}
