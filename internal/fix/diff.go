package fix

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line-oriented preview of a change: removed lines are
// prefixed with "-", added ones with "+", and unchanged runs are elided.
func Diff(ch FileChange) string {
	before := strings.Join(ch.Before, "\n") + "\n"
	after := strings.Join(ch.After, "\n") + "\n"

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", ch.Path, ch.Path)
	line := 1
	inHunk := false
	for _, d := range diffs {
		chunk := splitChunk(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += len(chunk)
			inHunk = false
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				fmt.Fprintf(&sb, "@@ %d @@\n", line)
				inHunk = true
			}
			for _, l := range chunk {
				sb.WriteString("-" + l + "\n")
			}
			line += len(chunk)
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				fmt.Fprintf(&sb, "@@ %d @@\n", line)
				inHunk = true
			}
			for _, l := range chunk {
				sb.WriteString("+" + l + "\n")
			}
		}
	}
	return sb.String()
}

func splitChunk(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
