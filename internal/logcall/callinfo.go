package logcall

import (
	"fmt"

	"fortio.org/safecast"
)

// CallInfo describes one recognized call site.
type CallInfo struct {
	ID       string
	Level    Level
	Message  *string // nil when no marker comment precedes the call
	FilePath string  // relative to the scan root, slash separated
	Line     uint32  // 1-based
}

// HasMessage reports whether a marker comment was associated with the call.
func (c CallInfo) HasMessage() bool {
	return c.Message != nil
}

// MessageText returns the message or an empty string.
func (c CallInfo) MessageText() string {
	if c.Message == nil {
		return ""
	}
	return *c.Message
}

// Location formats the call site as path:line.
func (c CallInfo) Location() string {
	return fmt.Sprintf("%s:%d", c.FilePath, c.Line)
}

// Message returns a pointer to a copy of s, for populating CallInfo.Message.
func Message(s string) *string {
	return &s
}

// LineNumber converts a 0-based line index into a 1-based line number.
func LineNumber(index int) (uint32, error) {
	n, err := safecast.Conv[uint32](index + 1)
	if err != nil {
		return 0, fmt.Errorf("line index %d overflow: %w", index, err)
	}
	return n, nil
}
