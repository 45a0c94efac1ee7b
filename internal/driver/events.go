package driver

import "time"

// Stage describes a phase of a scan.
type Stage string

const (
	StageEnumerate Stage = "enumerate"
	StageRead      Stage = "read"
	StageAnalyze   Stage = "analyze"
	StageManifest  Stage = "manifest"
)

// Status is where a file stands within its current stage.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusWorking   Status = "working"
	StatusDone      Status = "done"      // analyzed, nothing to rewrite
	StatusRewritten Status = "rewritten" // at least one identifier replaced
	StatusError     Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Calls   int
	Edits   int
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends each event on Ch and blocks until it is received.
// A nil Ch drops events.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// FuncSink calls itself for every event.
type FuncSink func(Event)

func (f FuncSink) OnEvent(ev Event) {
	if f != nil {
		f(ev)
	}
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
