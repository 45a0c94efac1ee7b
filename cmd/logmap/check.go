package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"logmap/internal/callsite"
	"logmap/internal/diagfmt"
	"logmap/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Verify call sites without modifying anything",
	Long: `Check runs a scan in update mode none and writes no manifest. It fails on
duplicate or empty identifiers, unknown levels and, with --require-message,
calls without a message comment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	addScanFlags(checkCmd.Flags(), scanFlags{})
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("max-diagnostics", 0, "limit JSON output to this many diagnostics (0 = all)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	s, err := loadSettings(cmd, args)
	if err == nil {
		err = checkScan(cmd, s, format == "pretty")
	}
	root := ""
	if s != nil {
		root = s.root
	}

	if format == "json" {
		if jerr := diagfmt.JSON(cmd.OutOrStdout(), err, diagfmt.JSONOpts{Root: root, Max: maxDiagnostics, Indent: true}); jerr != nil {
			return jerr
		}
		if err != nil {
			return &reportedError{err: err}
		}
		return nil
	}
	return reportFailure(cmd, root, err)
}

func checkScan(cmd *cobra.Command, s *settings, chatty bool) error {
	req, err := s.request()
	if err != nil {
		return err
	}
	req.Mode = callsite.UpdateNone
	req.ManifestPath = ""
	req.DryRun = true
	timer := observ.NewTimer()
	req.Timer = timer

	withUI := false
	if chatty {
		if withUI, err = useTUI(cmd); err != nil {
			return err
		}
	}
	res, err := runScan(cmd.Context(), "logmap check", req, withUI)
	if err != nil {
		return err
	}
	if chatty && !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d files, %d call sites\n", summaryLabel.Sprint("ok"), len(res.Files), res.Calls())
	}
	if chatty && timingsEnabled(cmd) {
		printTimings(cmd.OutOrStdout(), timer)
	}
	return nil
}
