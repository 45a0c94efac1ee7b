// Package trace records what a logmap run is doing.
//
// Enable tracing via command-line flags:
//
//	logmap scan --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer dumped on failure
//   - MultiTracer: combines multiple tracers
//
// # Levels and scopes
//
// LevelPhase emits driver and pass spans (enumerate, prescan, resolve,
// commit, manifest). LevelDetail adds one span per file. LevelDebug adds a
// point event per call site.
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "scan")
//	defer span.End("")
//
// Worker goroutines that only hold a parent ID use Begin directly:
//
//	s := trace.Begin(t, trace.ScopeFile, "file:"+path, parentID)
package trace
