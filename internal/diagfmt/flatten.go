package diagfmt

import (
	"errors"
	"path/filepath"

	"logmap/internal/diag"
)

// Flatten expands joined errors into their diagnostics, in order. Errors
// that carry no *diag.Error are reported under the unknown code.
func Flatten(err error) []*diag.Error {
	if err == nil {
		return nil
	}
	var out []*diag.Error
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var de *diag.Error
		if errors.As(e, &de) {
			out = append(out, de)
			return
		}
		out = append(out, &diag.Error{
			Severity: diag.SevError,
			Code:     diag.UnknownCode,
			Message:  e.Error(),
			Err:      e,
		})
	}
	walk(err)
	return out
}

func displayPath(p, root string, mode PathMode) string {
	if p == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if root != "" && !filepath.IsAbs(p) {
			return filepath.Join(root, filepath.FromSlash(p))
		}
	case PathModeBasename:
		return filepath.Base(filepath.FromSlash(p))
	}
	return p
}
