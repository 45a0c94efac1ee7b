package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePass, "resolve", 0)
	Begin(tr, ScopeFile, "file:a.cs", span.ID()).End("")
	span.WithExtra("files", "2").End("ok")
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "resolve") {
		t.Fatalf("pass span missing:\n%s", out)
	}
	if strings.Contains(out, "file:a.cs") {
		t.Fatalf("file span must be filtered at phase level:\n%s", out)
	}
	if !strings.Contains(out, "(ok) {files=2}") {
		t.Fatalf("end detail missing:\n%s", out)
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeCall, "call", "id1", 7)
	_ = tr.Flush()

	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "call" || got["detail"] != "id1" {
		t.Fatalf("event = %v", got)
	}
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeDriver, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	Begin(multi, ScopeDriver, "scan", 0).End("")
	if err := multi.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("ring=%d stream=%d", len(ring.Snapshot()), buf.Len())
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatal("expected nop tracer")
	}
	ring := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected level parse error")
	}
}

func TestRingOf(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	stream := NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText)

	if RingOf(ring) != ring {
		t.Fatal("RingOf(ring) did not return the ring")
	}
	if RingOf(NewMultiTracer(LevelDebug, stream, ring)) != ring {
		t.Fatal("RingOf(multi) did not find the ring")
	}
	if RingOf(stream) != nil {
		t.Fatal("stream tracer has no ring")
	}
}

func TestStartSpanNestsParents(t *testing.T) {
	ring := NewRingTracer(8, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := StartSpan(ctx, ScopeDriver, "scan")
	if ParentID(ctx) != outer.ID() {
		t.Fatalf("ParentID = %d, want %d", ParentID(ctx), outer.ID())
	}
	inner, innerCtx := StartSpan(ctx, ScopeFile, "file:a.cs")
	inner.End("")
	if ParentID(innerCtx) != inner.ID() {
		t.Fatal("inner span not recorded in context")
	}

	// call scope is below detail: the span is dropped and ctx is unchanged
	dropped, same := StartSpan(innerCtx, ScopeCall, "call")
	if dropped.ID() != 0 || ParentID(same) != inner.ID() {
		t.Fatalf("filtered span changed context: id=%d parent=%d", dropped.ID(), ParentID(same))
	}
	outer.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("events = %d, want 4", len(snap))
	}
	if snap[1].ParentID != outer.ID() {
		t.Fatalf("file span parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
}

func TestRingDumpTail(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeDriver, name, "", 0)
	}
	if ring.Len() != 4 {
		t.Fatalf("Len = %d, want 4", ring.Len())
	}

	var buf bytes.Buffer
	if err := ring.DumpTail(&buf, FormatText, 2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, " c") || !strings.Contains(out, " d") || !strings.Contains(out, " e") {
		t.Fatalf("tail dump:\n%s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("want 2 lines, got:\n%s", out)
	}
}

func TestParseLevelAndMode(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, " Detail ": LevelDetail, "DEBUG": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if m, err := ParseMode("Both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(Both) = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatal("expected mode parse error")
	}
	if LevelPhase.ShouldEmit(ScopeFile) || !LevelDetail.ShouldEmit(ScopeFile) || LevelError.ShouldEmit(ScopeDriver) {
		t.Fatal("unexpected ShouldEmit result")
	}
}
