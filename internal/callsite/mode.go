package callsite

import (
	"errors"
	"fmt"
	"strings"
)

// UpdateMode selects which identifiers the analyzer rewrites.
type UpdateMode uint8

const (
	// UpdateNone never rewrites; empty and duplicate identifiers are errors.
	UpdateNone UpdateMode = iota
	// UpdateNonUnique replaces empty and already registered identifiers.
	UpdateNonUnique
	// UpdateAll replaces every identifier.
	UpdateAll
)

// ErrUnknownMode is returned by ParseUpdateMode.
var ErrUnknownMode = errors.New("unknown update mode")

func (m UpdateMode) String() string {
	switch m {
	case UpdateNone:
		return "None"
	case UpdateNonUnique:
		return "NonUnique"
	case UpdateAll:
		return "All"
	default:
		return fmt.Sprintf("UpdateMode(%d)", uint8(m))
	}
}

// ParseUpdateMode accepts None, NonUnique and All in any letter case.
// "non-unique" and "non_unique" are accepted as well.
func ParseUpdateMode(s string) (UpdateMode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "").Replace(norm)
	switch norm {
	case "none":
		return UpdateNone, nil
	case "nonunique":
		return UpdateNonUnique, nil
	case "all":
		return UpdateAll, nil
	}
	return UpdateNone, fmt.Errorf("%w: %q (expected None, NonUnique or All)", ErrUnknownMode, s)
}

// Rewrites reports whether the mode may modify source files.
func (m UpdateMode) Rewrites() bool {
	return m != UpdateNone
}

func (m UpdateMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *UpdateMode) UnmarshalText(text []byte) error {
	v, err := ParseUpdateMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
