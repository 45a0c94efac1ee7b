package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	for _, dir := range []string{filepath.Join(base, "nested"), filepath.Join(tmp, "other")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"inside", filepath.Join(base, "nested", "file.cs"), "nested/file.cs"},
		{"root itself", base, "."},
		{"sibling falls back to absolute", filepath.Join(tmp, "other", "file.cs"), normalizePath(filepath.Join(tmp, "other", "file.cs"))},
		{"dot-dot prefix is not outside", filepath.Join(base, "..cache", "x.cs"), "..cache/x.cs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RelativePath(tc.target, base)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("RelativePath(%q) = %q, want %q", tc.target, got, tc.want)
			}
		})
	}
}

func TestSplitLinesRecordsTerminators(t *testing.T) {
	lines, terms := splitLines("a\r\nb\nc")
	wantLines := []string{"a", "b", "c"}
	wantTerms := []string{"\r\n", "\n", ""}
	if len(lines) != len(wantLines) {
		t.Fatalf("expected %d lines, got %d (%q)", len(wantLines), len(lines), lines)
	}
	for i := range wantLines {
		if lines[i] != wantLines[i] || terms[i] != wantTerms[i] {
			t.Errorf("line %d: got %q/%q, want %q/%q", i, lines[i], terms[i], wantLines[i], wantTerms[i])
		}
	}
}

func TestSplitLinesEmptyAndTrailingNewline(t *testing.T) {
	if lines, _ := splitLines(""); len(lines) != 0 {
		t.Fatalf("expected no lines for empty text, got %q", lines)
	}
	lines, terms := splitLines("x\n")
	if len(lines) != 1 || lines[0] != "x" || terms[0] != "\n" {
		t.Fatalf("unexpected split of trailing newline: %q %q", lines, terms)
	}
	lines, _ = splitLines("x\n\n")
	if len(lines) != 2 || lines[1] != "" {
		t.Fatalf("expected blank second line, got %q", lines)
	}
}

func TestJoinLinesRoundTrip(t *testing.T) {
	for _, text := range []string{"", "a", "a\n", "a\r\nb\r\n", "a\nb\r\nc", "\n\n", "lone\rcr\n"} {
		lines, terms := splitLines(text)
		if got := joinLines(lines, terms, dominantTerminator(terms)); got != text {
			t.Errorf("round trip of %q produced %q", text, got)
		}
	}
}

func TestJoinLinesAppendedLinesUseDefault(t *testing.T) {
	_, terms := splitLines("a\r\nb")
	got := joinLines([]string{"a", "b", "c"}, terms, "\r\n")
	if got != "a\r\nb\r\nc" {
		t.Fatalf("unexpected join %q", got)
	}
}

func TestBOMRemoval(t *testing.T) {
	bomContent := []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}
	withoutBOM, hadBOM := removeBOM(bomContent)

	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}

	expected := []byte{'x', '\n'}
	if string(withoutBOM) != string(expected) {
		t.Errorf("Expected content without BOM %q, got %q", string(expected), string(withoutBOM))
	}
}
