package subtitle

import (
	"errors"
	"fmt"
)

// FormatError reports a structurally malformed caption block. Line is the
// 1-based line in the source where the problem was detected.
type FormatError struct {
	Reason string
	Line   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed SRT at line %d: %s", e.Line, e.Reason)
}

// IsFormatError reports whether err wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
