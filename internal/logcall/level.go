package logcall

import (
	"errors"
	"fmt"
)

// Level is the severity named in a call site.
type Level uint8

const (
	// LevelError means an error has occurred.
	LevelError Level = iota
	// LevelWarning means an error may have occurred or is likely to occur.
	LevelWarning
	// LevelInfo means something significant has happened.
	LevelInfo
	// LevelDebug means something that might assist debugging has happened.
	LevelDebug
)

// ErrUnknownLevel is returned by ParseLevel for tokens outside the closed set.
var ErrUnknownLevel = errors.New("unknown log level")

// Levels lists every severity in declaration order.
var Levels = []Level{LevelError, LevelWarning, LevelInfo, LevelDebug}

// String returns the level name as written in source.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	case LevelInfo:
		return "Info"
	case LevelDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// ParseLevel converts a level token to a Level. Matching is case-sensitive
// and accepts names only.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "Error":
		return LevelError, nil
	case "Warning":
		return LevelWarning, nil
	case "Info":
		return LevelInfo, nil
	case "Debug":
		return LevelDebug, nil
	default:
		return LevelError, fmt.Errorf("%w: %q (expected: Error|Warning|Info|Debug)", ErrUnknownLevel, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l > LevelDebug {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
