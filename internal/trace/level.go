package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // tracing disabled
	LevelError               // nothing is streamed; the ring keeps heartbeats for failure dumps
	LevelPhase               // driver and pass spans
	LevelDetail              // plus one span per file
	LevelDebug               // plus one point per call site
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (want %s)", s, strings.Join(levelNames[:], "|"))
}

// minLevel is the lowest level at which events of scope are recorded.
func minLevel(scope Scope) Level {
	switch scope {
	case ScopeDriver, ScopePass:
		return LevelPhase
	case ScopeFile:
		return LevelDetail
	default:
		return LevelDebug
	}
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	return l >= LevelPhase && l >= minLevel(scope)
}
