package logcall

import (
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, level := range Levels {
		got, err := ParseLevel(level.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", level.String(), err)
		}
		if got != level {
			t.Errorf("ParseLevel(%q) = %v, want %v", level.String(), got, level)
		}
	}
}

func TestParseLevelRejectsUnknownTokens(t *testing.T) {
	for _, token := range []string{"", "error", "ERROR", "Fatal", "0", "Err0r"} {
		if _, err := ParseLevel(token); !errors.Is(err, ErrUnknownLevel) {
			t.Errorf("ParseLevel(%q): expected ErrUnknownLevel, got %v", token, err)
		}
	}
}

func TestLevelTextRoundTrip(t *testing.T) {
	text, err := LevelWarning.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var level Level
	if err := level.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if level != LevelWarning {
		t.Fatalf("expected Warning, got %v", level)
	}
	if _, err := Level(42).MarshalText(); err == nil {
		t.Fatal("expected error for out-of-range level")
	}
}
