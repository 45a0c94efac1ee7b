package driver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"logmap/internal/callsite"
	"logmap/internal/source"
	"logmap/internal/trace"
)

type scanOutcome struct {
	scanned *callsite.Scanned
	err     error
}

// prescan reads and matches files concurrently. Per-file failures are kept
// in the outcome so they surface in traversal order during resolution;
// only cancellation aborts the prescan.
func (r *runner) prescan(ctx context.Context, files []source.File, parent uint64) ([]scanOutcome, error) {
	end := r.timer.Track("prescan")
	span := trace.Begin(r.tracer, trace.ScopePass, "prescan", parent)
	started := time.Now()

	out := make([]scanOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.req.Jobs, len(files)))

	for i, f := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r.sink.OnEvent(Event{File: f.Path(), Stage: StageRead, Status: StatusWorking})
			scanned, err := r.analyzer.Scan(f)
			out[i] = scanOutcome{scanned: scanned, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.End(err.Error())
		end("cancelled")
		return nil, err
	}
	span.WithExtra("jobs", fmt.Sprint(r.req.Jobs)).End("")
	end(fmt.Sprintf("%d files in %s", len(files), time.Since(started).Round(time.Millisecond)))
	return out, nil
}
