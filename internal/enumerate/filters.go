package enumerate

import (
	"fmt"
	"regexp"
	"strings"

	"logmap/internal/diag"
)

// DefaultExclude skips hidden directories and common build output folders.
var DefaultExclude = []string{`^\.`, `^bin$`, `^obj$`}

// Filters is a set of patterns matched against bare directory names.
type Filters []*regexp.Regexp

// CompileFilters compiles each pattern. Blank patterns are ignored.
func CompileFilters(patterns []string) (Filters, error) {
	out := make(Filters, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &diag.Error{
				Severity: diag.SevError,
				Code:     diag.PrjBadFilter,
				Value:    p,
				Message:  fmt.Sprintf("invalid exclude pattern %q: %v", p, err),
				Err:      err,
			}
		}
		out = append(out, re)
	}
	return out, nil
}

// Excludes reports whether name matches at least one pattern.
func (f Filters) Excludes(name string) bool {
	for _, re := range f {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Patterns returns the source text of each pattern.
func (f Filters) Patterns() []string {
	out := make([]string, len(f))
	for i, re := range f {
		out[i] = re.String()
	}
	return out
}
