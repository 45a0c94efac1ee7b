package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// splitLines splits text into lines and records the terminator that ended
// each one ("\n", "\r\n" or "" for an unterminated last line). A lone '\r'
// stays part of its line.
func splitLines(text string) (lines, terminators []string) {
	lines = make([]string, 0, strings.Count(text, "\n")+1)
	terminators = make([]string, 0, cap(lines))
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			terminators = append(terminators, "")
			break
		}
		line, term := text[:idx], "\n"
		if strings.HasSuffix(line, "\r") {
			line, term = line[:len(line)-1], "\r\n"
		}
		lines = append(lines, line)
		terminators = append(terminators, term)
		text = text[idx+1:]
	}
	return lines, terminators
}

// dominantTerminator returns the most frequent non-empty terminator, "\n" by default.
func dominantTerminator(terminators []string) string {
	crlf, lf := 0, 0
	for _, t := range terminators {
		switch t {
		case "\r\n":
			crlf++
		case "\n":
			lf++
		}
	}
	if crlf > lf {
		return "\r\n"
	}
	return "\n"
}

// joinLines is the inverse of splitLines. Lines without a recorded
// terminator get def; the last line is left unterminated when the file it
// was read from had no final newline.
func joinLines(lines, terminators []string, def string) string {
	finalTerminated := len(terminators) == 0 || terminators[len(terminators)-1] != ""
	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(line)
		term := def
		if i < len(terminators) && terminators[i] != "" {
			term = terminators[i]
		}
		if i == len(lines)-1 && !finalTerminated {
			term = ""
		}
		sb.WriteString(term)
	}
	return sb.String()
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns target relative to baseDir, slash separated. Targets
// outside baseDir fall back to their normalized absolute path.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", target, err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", baseDir, err)
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return normalizePath(absTarget), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// ErrOutsideRoot is returned when a file does not live under its scan root.
var ErrOutsideRoot = errors.New("file is outside the scan root")
