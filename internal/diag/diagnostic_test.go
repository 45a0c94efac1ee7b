package diag

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestErrorMessageCarriesLocationAndValue(t *testing.T) {
	err := New(LogDuplicateID, "src/a.cs", 12, "dupId", `duplicate log identifier "dupId"`)
	msg := err.Error()
	for _, want := range []string{"src/a.cs:12", "LOG1002", `"dupId"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	cases := []struct {
		code Code
		want error
	}{
		{LogUnknownLevel, ErrGrammar},
		{LogDuplicateID, ErrDuplicateID},
		{LogEmptyID, ErrEmptyID},
		{LogMissingMessage, ErrMissingMessage},
		{IOReadDir, ErrIO},
		{IOWriteFile, ErrIO},
		{PrjBadFilter, ErrConfig},
	}
	for _, tc := range cases {
		err := fmt.Errorf("scan: %w", New(tc.code, "f", 1, "v", "m"))
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected errors.Is(%v)", tc.code.ID(), tc.want)
		}
		if errors.Is(err, ErrEmptyID) && tc.want != ErrEmptyID {
			t.Errorf("%s: unexpected match with ErrEmptyID", tc.code.ID())
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(IOReadFile, "missing.cs", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if KindOf(err) != KindIO {
		t.Fatalf("expected io kind, got %v", KindOf(err))
	}
	if err.Location() != "missing.cs" {
		t.Fatalf("expected location without line, got %q", err.Location())
	}
}

func TestCodeIDs(t *testing.T) {
	if got := LogEmptyID.ID(); got != "LOG1003" {
		t.Errorf("unexpected id %q", got)
	}
	if got := IOManifest.ID(); got != "IO4004" {
		t.Errorf("unexpected id %q", got)
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("unexpected fallback title %q", got)
	}
}
