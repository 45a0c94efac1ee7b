package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step of a run. Depth counts the phases that were
// still open when it started, so prescan inside analyze has depth 1.
type Phase struct {
	Name  string
	Depth int
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer records run phases in start order. The zero value is not usable;
// a nil *Timer ignores every call.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	open   int
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Track starts a phase and returns the function that ends it. Calling the
// returned function more than once keeps the first duration.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Depth: t.open, Start: time.Now()})
	t.open++
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.done {
			return
		}
		p.Dur, p.Note, p.done = time.Since(p.Start), note, true
		t.open--
	}
}

// PhaseReport is the serializable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	Depth      int     `json:"depth,omitempty"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report holds every phase and the wall time from the first start to the
// last end. Nested phases are not added to the total twice.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}

	rep := Report{Phases: make([]PhaseReport, len(t.phases))}
	first := t.phases[0].Start
	var last time.Time
	for i, p := range t.phases {
		rep.Phases[i] = PhaseReport{Name: p.Name, Depth: p.Depth, DurationMS: millis(p.Dur), Note: p.Note}
		if end := p.Start.Add(p.Dur); end.After(last) {
			last = end
		}
	}
	rep.TotalMS = millis(last.Sub(first))
	return rep
}

// Summary renders the report as an indented table for --timings.
func (t *Timer) Summary() string {
	rep := t.Report()
	width := len("total")
	for _, p := range rep.Phases {
		width = max(width, 2*p.Depth+len(p.Name))
	}

	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range rep.Phases {
		label := strings.Repeat("  ", p.Depth) + p.Name
		fmt.Fprintf(&sb, "  %-*s %8.2f ms", width, label, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-*s %8.2f ms\n", width, "total", rep.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
