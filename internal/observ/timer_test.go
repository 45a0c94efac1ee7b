package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	end := tm.Track("enumerate")
	end("3 files")
	end("ignored")

	outer := tm.Track("analyze")
	inner := tm.Track("prescan")
	time.Sleep(time.Millisecond)
	inner("")
	outer("")

	rep := tm.Report()
	if len(rep.Phases) != 3 || rep.Phases[0].Name != "enumerate" || rep.Phases[0].Note != "3 files" {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Phases[1].Depth != 0 || rep.Phases[2].Depth != 1 {
		t.Fatalf("depths = %d %d", rep.Phases[1].Depth, rep.Phases[2].Depth)
	}
	sum := rep.Phases[0].DurationMS + rep.Phases[1].DurationMS + rep.Phases[2].DurationMS
	if rep.TotalMS >= sum {
		t.Fatalf("total %.3f counts the nested phase twice (sum %.3f)", rep.TotalMS, sum)
	}

	out := tm.Summary()
	if !strings.Contains(out, "// 3 files") || !strings.Contains(out, "    prescan") || !strings.Contains(out, "total") {
		t.Fatalf("summary:\n%s", out)
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.Track("x")("y")
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("report = %+v", rep)
	}
}
