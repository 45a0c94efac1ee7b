// Package driver runs a complete scan: enumerate, analyze, rewrite and
// write the manifest.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"logmap/internal/callsite"
	"logmap/internal/diag"
	"logmap/internal/enumerate"
	"logmap/internal/fix"
	"logmap/internal/logcall"
	"logmap/internal/manifest"
	"logmap/internal/observ"
	"logmap/internal/project"
	"logmap/internal/source"
	"logmap/internal/trace"
)

// Request describes one run.
type Request struct {
	Root           string
	Extensions     []string
	Exclude        enumerate.Filters
	Mode           callsite.UpdateMode
	RequireMessage bool
	Marker         string

	// ManifestPath is where the registry is written; empty skips it.
	ManifestPath   string
	ManifestFormat manifest.Format

	// Jobs > 1 reads and matches files concurrently.
	Jobs int
	// Atomic holds every rewrite until the whole tree was analyzed.
	Atomic bool
	// DryRun reports changes without touching sources or the manifest.
	DryRun bool

	NewID    func() string
	Dirs     enumerate.DirFunctions
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result summarises a run. On failure it holds whatever was produced
// before the error.
type Result struct {
	Root     string
	Files    []string
	Registry *logcall.Registry
	Changes  []fix.FileChange
	Manifest string
	Digest   project.Digest
	Timings  observ.Report
}

// Calls returns the number of registered call sites.
func (r *Result) Calls() int {
	if r == nil || r.Registry == nil {
		return 0
	}
	return r.Registry.Len()
}

// Edits returns the number of rewritten lines across all files.
func (r *Result) Edits() int {
	n := 0
	for _, ch := range r.Changes {
		n += ch.EditCount
	}
	return n
}

type runner struct {
	req      Request
	tracer   trace.Tracer
	sink     ProgressSink
	timer    *observ.Timer
	stager   *fix.Stager
	analyzer *callsite.Analyzer
	result   *Result
	digests  []project.Digest
}

// Run executes req.
func Run(ctx context.Context, req Request) (*Result, error) {
	root, err := resolveRoot(req.Root)
	if err != nil {
		return &Result{Root: req.Root}, err
	}

	r := &runner{
		req:    req,
		tracer: trace.FromContext(ctx),
		sink:   req.Progress,
		timer:  req.Timer,
		stager: fix.NewStager(policyFor(req)),
		result: &Result{Root: root, Registry: logcall.NewRegistry()},
	}
	if r.sink == nil {
		r.sink = nopSink{}
	}
	if r.timer == nil {
		r.timer = observ.NewTimer()
	}
	r.analyzer = callsite.NewAnalyzer(r.result.Registry, callsite.Options{
		Mode:           req.Mode,
		RequireMessage: req.RequireMessage,
		Marker:         req.Marker,
		NewID:          req.NewID,
		Stager:         r.stager,
	})

	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "scan")
	err = r.run(ctx, span.ID())
	r.result.Changes = r.stager.Changes()
	r.result.Timings = r.timer.Report()
	if err != nil {
		span.WithExtra("error", diag.KindOf(err).String()).End(err.Error())
		return r.result, err
	}
	span.WithExtra("files", fmt.Sprint(len(r.result.Files))).
		WithExtra("calls", fmt.Sprint(r.result.Calls())).
		End("")
	return r.result, nil
}

func (r *runner) run(ctx context.Context, parent uint64) error {
	files, err := r.enumerate(parent)
	if err != nil {
		return err
	}

	if err := r.analyze(ctx, files, parent); err != nil {
		r.stager.Discard()
		return err
	}

	if r.stager.Policy() == fix.PolicyDeferred {
		end := r.timer.Track("commit")
		span := trace.Begin(r.tracer, trace.ScopePass, "commit", parent)
		err := r.stager.Commit()
		span.End("")
		end(fmt.Sprintf("%d files", len(r.stager.Changes())))
		if err != nil {
			return err
		}
	}

	r.result.Digest = project.Combine(project.HashLines(r.result.Files), r.digests...)

	if r.req.DryRun || r.req.ManifestPath == "" {
		return nil
	}
	return r.writeManifest(ctx, parent)
}

func (r *runner) enumerate(parent uint64) ([]source.File, error) {
	end := r.timer.Track("enumerate")
	span := trace.Begin(r.tracer, trace.ScopePass, "enumerate", parent)
	r.sink.OnEvent(Event{Stage: StageEnumerate, Status: StatusWorking})

	en := enumerate.New(r.req.Dirs, enumerate.Options{
		Extensions: r.req.Extensions,
		Exclude:    r.req.Exclude,
	})
	paths, err := en.SourceFiles(r.result.Root)
	if err != nil {
		span.End(err.Error())
		end("failed")
		r.sink.OnEvent(Event{Stage: StageEnumerate, Status: StatusError, Err: err})
		return nil, err
	}

	files := make([]source.File, 0, len(paths))
	for _, p := range paths {
		f, err := source.NewDiskFile(p, r.result.Root)
		if err != nil {
			span.End(err.Error())
			end("failed")
			return nil, diag.Wrap(diag.IOReadFile, p, err)
		}
		files = append(files, f)
		r.result.Files = append(r.result.Files, f.Path())
	}
	span.WithExtra("files", fmt.Sprint(len(files))).End("")
	end(fmt.Sprintf("%d files", len(files)))
	r.sink.OnEvent(Event{Stage: StageEnumerate, Status: StatusDone})
	for _, f := range files {
		r.sink.OnEvent(Event{File: f.Path(), Stage: StageRead, Status: StatusQueued})
	}
	return files, nil
}

func (r *runner) analyze(ctx context.Context, files []source.File, parent uint64) error {
	end := r.timer.Track("analyze")
	span := trace.Begin(r.tracer, trace.ScopePass, "analyze", parent)

	var (
		scans []scanOutcome
		err   error
	)
	if r.req.Jobs > 1 && len(files) > 1 {
		scans, err = r.prescan(ctx, files, span.ID())
		if err != nil {
			span.End(err.Error())
			end("cancelled")
			return err
		}
	}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			span.End(err.Error())
			end("cancelled")
			return err
		}
		var scanned *callsite.Scanned
		var scanErr error
		if scans != nil {
			scanned, scanErr = scans[i].scanned, scans[i].err
		} else {
			scanned, scanErr = r.analyzer.Scan(f)
		}
		if err := r.resolveFile(f, scanned, scanErr, span.ID()); err != nil {
			span.End(err.Error())
			end(fmt.Sprintf("failed at %s", f.Path()))
			return err
		}
	}
	span.End("")
	end(fmt.Sprintf("%d files, %d calls", len(files), r.result.Calls()))
	return nil
}

func (r *runner) resolveFile(f source.File, scanned *callsite.Scanned, scanErr error, parent uint64) error {
	started := time.Now()
	span := trace.Begin(r.tracer, trace.ScopeFile, "file:"+f.Path(), parent)
	r.sink.OnEvent(Event{File: f.Path(), Stage: StageAnalyze, Status: StatusWorking})

	fail := func(err error) error {
		span.End(err.Error())
		r.sink.OnEvent(Event{File: f.Path(), Stage: StageAnalyze, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return err
	}
	if scanErr != nil {
		return fail(scanErr)
	}

	res, err := r.analyzer.Resolve(scanned)
	if err != nil {
		return fail(err)
	}
	for _, info := range res.Calls {
		trace.Point(r.tracer, trace.ScopeCall, "call", info.ID+" "+info.Location(), span.ID())
	}
	if err := r.analyzer.Apply(res); err != nil {
		return fail(err)
	}
	r.digests = append(r.digests, project.HashLines(res.Buffer.Lines()))

	status := StatusDone
	if res.Rewritten() {
		status = StatusRewritten
	}
	span.WithExtra("calls", fmt.Sprint(len(res.Calls))).
		WithExtra("edits", fmt.Sprint(res.Buffer.EditCount())).
		End("")
	r.sink.OnEvent(Event{
		File:    f.Path(),
		Stage:   StageAnalyze,
		Status:  status,
		Calls:   len(res.Calls),
		Edits:   res.Buffer.EditCount(),
		Elapsed: time.Since(started),
	})
	return nil
}

func (r *runner) writeManifest(ctx context.Context, parent uint64) error {
	end := r.timer.Track("manifest")
	span := trace.Begin(r.tracer, trace.ScopePass, "manifest", parent)
	r.sink.OnEvent(Event{Stage: StageManifest, Status: StatusWorking})

	path := r.req.ManifestPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.result.Root, path)
	}
	doc := manifest.FromRegistry(r.result.Registry)
	if err := manifest.Write(ctx, path, doc, manifest.Options{Format: r.req.ManifestFormat}); err != nil {
		span.End(err.Error())
		end("failed")
		r.sink.OnEvent(Event{Stage: StageManifest, Status: StatusError, Err: err})
		return err
	}
	r.result.Manifest = path
	span.End("")
	end(fmt.Sprintf("%d records", len(doc.Calls)))
	r.sink.OnEvent(Event{Stage: StageManifest, Status: StatusDone, Calls: len(doc.Calls)})
	return nil
}

func policyFor(req Request) fix.Policy {
	switch {
	case req.DryRun:
		return fix.PolicyDiscard
	case req.Atomic:
		return fix.PolicyDeferred
	default:
		return fix.PolicyImmediate
	}
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", badRoot(root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", badRoot(root, err)
	}
	if !info.IsDir() {
		return "", badRoot(root, errors.New("not a directory"))
	}
	return abs, nil
}

func badRoot(root string, err error) error {
	return &diag.Error{
		Severity: diag.SevError,
		Code:     diag.PrjBadRoot,
		Path:     root,
		Message:  fmt.Sprintf("invalid scan root: %v", err),
		Err:      err,
	}
}
