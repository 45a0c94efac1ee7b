package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"logmap/internal/prof"
)

// session holds the process-wide helpers started before a command runs.
type session struct {
	stopTrace func(failed bool)
	profiler  *prof.Session
	done      bool
}

var current session

func startSession(cmd *cobra.Command, _ []string) error {
	current = session{}
	if err := applyColor(cmd); err != nil {
		return err
	}
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	current.stopTrace = stopTrace

	profiler, err := setupProfiling(cmd)
	if err != nil {
		stopTrace(true)
		current.stopTrace = nil
		return err
	}
	current.profiler = profiler
	return nil
}

func stopSession(*cobra.Command, []string) error {
	finishSession(nil)
	return nil
}

// finishSession runs once, either after a successful command or from main
// when the command failed.
func finishSession(runErr error) {
	if current.done {
		return
	}
	current.done = true
	if err := current.profiler.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	if current.stopTrace != nil {
		current.stopTrace(runErr != nil)
	}
}

func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	opts := prof.Options{CPU: cpuProfile, Mem: memProfile, Trace: tracePath}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

// applyColor resolves --color and sets the global fatih/color switch.
func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != ""
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

func verbose(cmd *cobra.Command) bool {
	v, err := cmd.Root().PersistentFlags().GetBool("verbose")
	return err == nil && v
}
