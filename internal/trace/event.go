package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one command run
	ScopePass                    // enumerate, prescan, analyze, commit, manifest
	ScopeFile                    // one source file
	ScopeCall                    // one logging call site
)

var scopeNames = [...]string{"unknown", "driver", "pass", "file", "call"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned on emission, monotonic per process
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for top-level spans
	GID      uint64 // emitting goroutine, lets concurrent prescan spans be told apart
	Name     string // "scan", "prescan", "file:src/a.cs", ...
	Detail   string
	Extra    map[string]string
}
