package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"logmap/internal/observ"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a source tree, repair identifiers and write the manifest",
	Long: `Scan every source file under dir (default: the current directory) for
Logger.Log call sites. Depending on --update, duplicate or all identifiers
are regenerated in place. The manifest lists every call site found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	addScanFlags(scanCmd.Flags(), scanFlags{write: true})
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return reportFailure(cmd, "", err)
	}
	req, err := s.request()
	if err != nil {
		return reportFailure(cmd, "", err)
	}
	fs := cmd.Flags()
	req.DryRun, _ = fs.GetBool("dry-run")
	showDiff, _ := fs.GetBool("diff")

	timer := observ.NewTimer()
	req.Timer = timer

	withUI, err := useTUI(cmd)
	if err != nil {
		return err
	}
	res, runErr := runScan(cmd.Context(), "logmap scan", req, withUI)

	out := cmd.OutOrStdout()
	if showDiff && res != nil {
		printDiffs(out, res.Changes)
	}
	if runErr != nil {
		if res != nil && len(res.Changes) > 0 && !req.DryRun && !req.Atomic {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %d files were rewritten before the failure\n", len(res.Changes))
		}
		return reportFailure(cmd, s.root, runErr)
	}
	if !quiet(cmd) {
		printSummary(out, res, req.DryRun)
	}
	if timingsEnabled(cmd) {
		printTimings(out, timer)
	}
	return nil
}
