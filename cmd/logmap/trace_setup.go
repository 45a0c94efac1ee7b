package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"logmap/internal/trace"
)

// failureDumpEvents caps how much of the ring is printed after a failed run.
const failureDumpEvents = 256

// traceConfig turns the --trace* root flags into a tracer config. Naming an
// output without a level implies phase tracing; stream modes without an
// output write to stderr.
func traceConfig(pf *pflag.FlagSet) (cfg trace.Config, heartbeat time.Duration, err error) {
	output, _ := pf.GetString("trace")
	levelName, _ := pf.GetString("trace-level")
	modeName, _ := pf.GetString("trace-mode")
	formatName, _ := pf.GetString("trace-format")
	ringSize, _ := pf.GetInt("trace-ring-size")
	heartbeat, _ = pf.GetDuration("trace-heartbeat")

	if cfg.Level, err = trace.ParseLevel(levelName); err != nil {
		return cfg, 0, err
	}
	if cfg.Level == trace.LevelOff {
		if output == "" {
			return cfg, 0, nil
		}
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(modeName); err != nil {
		return cfg, 0, err
	}
	if cfg.Format, err = trace.ParseFormat(formatName); err != nil {
		return cfg, 0, err
	}
	if cfg.Mode != trace.ModeRing && output == "" {
		output = "-"
	}
	cfg.OutputPath, cfg.RingSize = output, ringSize
	return cfg, heartbeat, nil
}

// setupTracing installs the configured tracer in the command context. The
// returned cleanup stops the heartbeat, dumps the newest ring events to
// stderr if the run failed in ring mode, and closes the tracer.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	cfg, interval, err := traceConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	if !tracer.Enabled() {
		return func(bool) {}, nil
	}

	heartbeat := trace.StartHeartbeat(tracer, interval)
	return func(failed bool) {
		heartbeat.Stop()
		if failed && cfg.Mode == trace.ModeRing {
			dumpRing(trace.RingOf(tracer))
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: %v\n", err)
		}
	}, nil
}

func dumpRing(ring *trace.RingTracer) {
	if ring == nil || ring.Len() == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "trace: last %d of %d events before failure\n", min(ring.Len(), failureDumpEvents), ring.Len())
	if err := ring.DumpTail(os.Stderr, trace.FormatText, failureDumpEvents); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump: %v\n", err)
	}
}
