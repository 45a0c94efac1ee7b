package diagfmt

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"logmap/internal/diag"
)

func sourceOf(files map[string][]string) LineSource {
	return func(path string) ([]string, error) {
		lines, ok := files[path]
		if !ok {
			return nil, fs.ErrNotExist
		}
		return lines, nil
	}
}

func TestPrettyHeader(t *testing.T) {
	err := diag.New(diag.LogUnknownLevel, "src/a.cs", 3, "Loud", "unknown log level \"Loud\"")

	var buf bytes.Buffer
	if werr := Pretty(&buf, err, PrettyOpts{}); werr != nil {
		t.Fatalf("Pretty: %v", werr)
	}
	want := "src/a.cs:3: ERROR LOG1001: unknown log level \"Loud\"\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrettyContextCaret(t *testing.T) {
	err := diag.New(diag.LogDuplicateID, "a.cs", 2, "abc", "duplicate id")
	src := sourceOf(map[string][]string{
		"a.cs": {
			"// LogMsg hello",
			`Logger.Log(LogLevel.Info, "abc");`,
		},
	})

	var buf bytes.Buffer
	if werr := Pretty(&buf, err, PrettyOpts{Source: src}); werr != nil {
		t.Fatalf("Pretty: %v", werr)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != ` 2 | Logger.Log(LogLevel.Info, "abc");` {
		t.Fatalf("context line = %q", lines[1])
	}
	// the caret starts under the value
	srcCol := strings.Index(lines[1], "abc")
	caretCol := strings.Index(lines[2], "^~~")
	if srcCol != caretCol {
		t.Fatalf("caret at %d, value at %d:\n%s", caretCol, srcCol, buf.String())
	}
}

func TestPrettySkipsContextWhenSourceMissing(t *testing.T) {
	err := diag.New(diag.LogEmptyID, "gone.cs", 5, "", "empty id")

	var buf bytes.Buffer
	if werr := Pretty(&buf, err, PrettyOpts{Source: sourceOf(nil)}); werr != nil {
		t.Fatalf("Pretty: %v", werr)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("unexpected context:\n%s", buf.String())
	}
}

func TestPrettyJoinedAndPlainErrors(t *testing.T) {
	err := errors.Join(
		diag.New(diag.LogEmptyID, "a.cs", 1, "", "empty id"),
		errors.New("boom"),
	)

	var buf bytes.Buffer
	if werr := Pretty(&buf, err, PrettyOpts{}); werr != nil {
		t.Fatalf("Pretty: %v", werr)
	}
	out := buf.String()
	if !strings.Contains(out, "a.cs:1: ERROR LOG1003: empty id") {
		t.Fatalf("missing first diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "ERROR E0000: boom") {
		t.Fatalf("missing plain error:\n%s", out)
	}
}

func TestPrettyVerboseCause(t *testing.T) {
	cause := fs.ErrPermission
	err := diag.Wrap(diag.IOWriteFile, "a.cs", cause)

	var buf bytes.Buffer
	if werr := Pretty(&buf, err, PrettyOpts{Verbose: true}); werr != nil {
		t.Fatalf("Pretty: %v", werr)
	}
	if !strings.Contains(buf.String(), "caused by: permission denied") {
		t.Fatalf("missing cause:\n%s", buf.String())
	}
}

func TestPrettyPathModes(t *testing.T) {
	err := diag.New(diag.LogEmptyID, "src/deep/a.cs", 1, "", "empty id")
	root := filepath.FromSlash("/work/proj")

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"auto", PathModeAuto, "src/deep/a.cs:1"},
		{"absolute", PathModeAbsolute, filepath.Join(root, "src", "deep", "a.cs") + ":1"},
		{"basename", PathModeBasename, "a.cs:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if werr := Pretty(&buf, err, PrettyOpts{Root: root, PathMode: tt.mode}); werr != nil {
				t.Fatalf("Pretty: %v", werr)
			}
			if !strings.HasPrefix(buf.String(), tt.want+": ") {
				t.Fatalf("got %q, want prefix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettyColorAddsEscapes(t *testing.T) {
	err := diag.New(diag.LogEmptyID, "a.cs", 1, "", "empty id")

	var plain, colored bytes.Buffer
	_ = Pretty(&plain, err, PrettyOpts{})
	_ = Pretty(&colored, err, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
