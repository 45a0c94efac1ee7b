package fix

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// LineEdit records one replaced line. Line is 1-based.
type LineEdit struct {
	Line uint32
	Old  string
	New  string
}

// LineBuffer is a copy-on-write view over a file's lines. The original
// slice is never modified; the first effective Set clones it.
type LineBuffer struct {
	original []string
	lines    []string
	changed  map[int]struct{}
}

// NewLineBuffer wraps lines without copying them.
func NewLineBuffer(lines []string) *LineBuffer {
	return &LineBuffer{original: lines}
}

// Len returns the number of lines.
func (b *LineBuffer) Len() int {
	return len(b.original)
}

// Line returns the current text of line i (0-based).
func (b *LineBuffer) Line(i int) string {
	if b.lines != nil {
		return b.lines[i]
	}
	return b.original[i]
}

// Set replaces line i. It reports whether the buffer content changed;
// setting a line to its current text is a no-op.
func (b *LineBuffer) Set(i int, text string) bool {
	if b.Line(i) == text {
		return false
	}
	if b.lines == nil {
		b.lines = append([]string(nil), b.original...)
		b.changed = make(map[int]struct{})
	}
	b.lines[i] = text
	if text == b.original[i] {
		delete(b.changed, i)
	} else {
		b.changed[i] = struct{}{}
	}
	return true
}

// Dirty reports whether any line differs from the original.
func (b *LineBuffer) Dirty() bool {
	return len(b.changed) > 0
}

// EditCount returns the number of lines that differ from the original.
func (b *LineBuffer) EditCount() int {
	return len(b.changed)
}

// Lines returns the current content. The result aliases the original
// when the buffer is clean.
func (b *LineBuffer) Lines() []string {
	if b.lines != nil {
		return b.lines
	}
	return b.original
}

// Original returns the lines the buffer was created with.
func (b *LineBuffer) Original() []string {
	return b.original
}

// Edits lists changed lines in ascending order.
func (b *LineBuffer) Edits() []LineEdit {
	idx := make([]int, 0, len(b.changed))
	for i := range b.changed {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	out := make([]LineEdit, len(idx))
	for k, i := range idx {
		line, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line index overflow: %w", err))
		}
		out[k] = LineEdit{
			Line: line,
			Old:  b.original[i],
			New:  b.lines[i],
		}
	}
	return out
}
