package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"logmap/internal/callsite"
	"logmap/internal/driver"
	"logmap/internal/enumerate"
	"logmap/internal/observ"
	"logmap/internal/project"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-run scan whenever a source file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	addScanFlags(watchCmd.Flags(), scanFlags{write: true})
	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "quiet period before a re-run")
}

// watcher re-runs a scan after source changes settle.
type watcher struct {
	cmd      *cobra.Command
	req      driver.Request
	enum     *enumerate.Enumerator
	fsw      *fsnotify.Watcher
	debounce time.Duration
	manifest string
	last     project.Digest // zero until the first successful run
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return reportFailure(cmd, "", err)
	}
	req, err := s.request()
	if err != nil {
		return reportFailure(cmd, "", err)
	}
	req.DryRun, _ = cmd.Flags().GetBool("dry-run")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fsw.Close()

	w := &watcher{
		cmd:      cmd,
		req:      req,
		enum:     enumerate.New(nil, enumerate.Options{Extensions: req.Extensions, Exclude: req.Exclude}),
		fsw:      fsw,
		debounce: debounce,
	}
	if req.ManifestPath != "" {
		w.manifest = req.ManifestPath
		if !filepath.IsAbs(w.manifest) {
			w.manifest = filepath.Join(s.root, w.manifest)
		}
	}
	if err := w.enum.WalkDirs(s.root, fsw.Add); err != nil {
		return reportFailure(cmd, s.root, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.rerun(ctx)
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", s.root)
	}
	return w.loop(ctx)
}

func (w *watcher) loop(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.track(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.cmd.ErrOrStderr(), "watch: %v\n", err)
		case <-timer.C:
			w.rerun(ctx)
		}
	}
}

// track starts watching new directories and reports whether ev concerns a
// source file.
func (w *watcher) track(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.enum.Excluded(ev.Name) {
				return false
			}
			if err := w.enum.WalkDirs(ev.Name, w.fsw.Add); err != nil {
				fmt.Fprintf(w.cmd.ErrOrStderr(), "watch: %v\n", err)
			}
			return true
		}
	}
	if ev.Name == w.manifest || ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	return w.enum.Matches(ev.Name)
}

// rerun scans once. Runs whose content digest matches the previous run are
// not reported; that includes the run triggered by our own rewrites.
// Update mode all applies to the first successful run only; later runs
// repair duplicates.
func (w *watcher) rerun(ctx context.Context) {
	timer := observ.NewTimer()
	req := w.req
	req.Timer = timer
	res, err := driver.Run(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		_ = reportFailure(w.cmd, req.Root, err)
		w.last = project.Digest{}
		return
	}
	if w.req.Mode == callsite.UpdateAll && !req.DryRun {
		// every identifier is now fresh and unique; regenerating again would
		// rewrite the files we are watching and retrigger forever
		w.req.Mode = callsite.UpdateNonUnique
	}
	if !w.last.IsZero() && res.Digest == w.last {
		return
	}
	w.last = res.Digest
	if quiet(w.cmd) {
		return
	}
	out := w.cmd.OutOrStdout()
	fmt.Fprintf(out, "[%s] ", time.Now().Format("15:04:05"))
	if verbose(w.cmd) {
		fmt.Fprintf(out, "tree %s: ", res.Digest.Short())
	}
	printSummary(out, res, req.DryRun)
	if diff, _ := w.cmd.Flags().GetBool("diff"); diff {
		printDiffs(out, res.Changes)
	}
	if timingsEnabled(w.cmd) {
		printTimings(out, timer)
	}
}
