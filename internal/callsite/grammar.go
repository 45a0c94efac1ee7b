package callsite

import (
	"regexp"
	"strings"
)

// DefaultMarker is the word that introduces a message comment.
const DefaultMarker = "LogMsg"

// callPattern captures everything through the opening quote, the level
// token, the identifier, and everything from the closing quote on.
var callPattern = regexp.MustCompile(`^(.*Logger\.Log\(\s*LogLevel\.(\w*)\s*,\s*")([^"]*)(".*)$`)

// Match is one call site recognized on a line.
type Match struct {
	Prefix string // up to and including the opening quote
	Level  string // raw level token
	ID     string
	Suffix string // from the closing quote to end of line
}

// MatchCall recognizes a call site on line.
func MatchCall(line string) (Match, bool) {
	m := callPattern.FindStringSubmatch(line)
	if m == nil {
		return Match{}, false
	}
	return Match{Prefix: m[1], Level: m[2], ID: m[3], Suffix: m[4]}, true
}

// Rewrite rebuilds the line with id in place of the matched identifier.
func (m Match) Rewrite(id string) string {
	return m.Prefix + id + m.Suffix
}

// Line rebuilds the original line.
func (m Match) Line() string {
	return m.Rewrite(m.ID)
}

// MessageMatcher recognizes "// <marker> text" comments.
type MessageMatcher struct {
	marker string
	re     *regexp.Regexp
}

// NewMessageMatcher builds a matcher for marker. An empty marker selects
// DefaultMarker.
func NewMessageMatcher(marker string) *MessageMatcher {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		marker = DefaultMarker
	}
	return &MessageMatcher{
		marker: marker,
		re:     regexp.MustCompile(`^\s*//\s*` + regexp.QuoteMeta(marker) + `\s*(.*)$`),
	}
}

// Marker returns the marker word.
func (m *MessageMatcher) Marker() string {
	return m.marker
}

// Match returns the trimmed message text of line.
func (m *MessageMatcher) Match(line string) (string, bool) {
	sub := m.re.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	return strings.TrimSpace(sub[1]), true
}
