package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"logmap/internal/diagfmt"
	"logmap/internal/driver"
	"logmap/internal/fix"
)

// reportedError marks an error that was already rendered for the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reportFailure renders err as diagnostics on stderr.
func reportFailure(cmd *cobra.Command, root string, err error) error {
	if err == nil {
		return nil
	}
	opts := diagfmt.PrettyOpts{
		Color:   !color.NoColor,
		Root:    root,
		Verbose: verbose(cmd),
	}
	if root != "" {
		opts.Source = lineSource(root)
	}
	if werr := diagfmt.Pretty(cmd.ErrOrStderr(), err, opts); werr != nil {
		return err
	}
	return &reportedError{err: err}
}

var (
	summaryLabel = color.New(color.FgGreen, color.Bold)
	changeLabel  = color.New(color.FgYellow)
	diffAdd      = color.New(color.FgGreen)
	diffDel      = color.New(color.FgRed)
	diffHunk     = color.New(color.FgCyan)
)

func printSummary(out io.Writer, res *driver.Result, dryRun bool) {
	verb := "rewrote"
	if dryRun {
		verb = "would rewrite"
	}
	fmt.Fprintf(out, "%s %d files, %d call sites\n",
		summaryLabel.Sprint("scanned"), len(res.Files), res.Calls())
	for _, ch := range res.Changes {
		fmt.Fprintf(out, "  %s %s (%s)\n", changeLabel.Sprint(verb), ch.Path, plural(ch.EditCount, "line"))
	}
	if len(res.Changes) > 0 {
		fmt.Fprintf(out, "%s %s in %s\n", verb, plural(res.Edits(), "line"), plural(len(res.Changes), "file"))
	}
	if res.Manifest != "" {
		fmt.Fprintf(out, "manifest: %s\n", res.Manifest)
	}
}

func printDiffs(out io.Writer, changes []fix.FileChange) {
	for _, ch := range changes {
		for _, line := range strings.SplitAfter(fix.Diff(ch), "\n") {
			switch {
			case line == "":
			case strings.HasPrefix(line, "@@"):
				fmt.Fprint(out, diffHunk.Sprint(line))
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				fmt.Fprint(out, line)
			case strings.HasPrefix(line, "+"):
				fmt.Fprint(out, diffAdd.Sprint(line))
			case strings.HasPrefix(line, "-"):
				fmt.Fprint(out, diffDel.Sprint(line))
			default:
				fmt.Fprint(out, line)
			}
		}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
