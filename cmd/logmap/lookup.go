package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"logmap/internal/manifest"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <id>",
	Short: "Find the call site registered under an identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().StringP("map", "m", "", "manifest to read (default: the configured manifest)")
	lookupCmd.Flags().String("map-format", "", "manifest format (default: by extension)")
	lookupCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var lookupID = color.New(color.FgCyan, color.Bold)

func runLookup(cmd *cobra.Command, args []string) error {
	id := args[0]
	fs := cmd.Flags()
	outFormat, _ := fs.GetString("format")
	outFormat = strings.ToLower(outFormat)
	if outFormat != "pretty" && outFormat != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", outFormat)
	}

	path, _ := fs.GetString("map")
	formatName, _ := fs.GetString("map-format")
	if path == "" || formatName == "" {
		s, err := loadSettings(cmd, nil)
		if err != nil {
			return reportFailure(cmd, "", err)
		}
		if path == "" {
			path = s.cfg.Manifest.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(s.root, path)
			}
		}
		if formatName == "" && !fs.Changed("map") {
			formatName = s.cfg.Manifest.Format
		}
	}
	format, err := manifest.ParseFormat(formatName)
	if err != nil {
		return err
	}

	doc, err := manifest.Load(cmd.Context(), path, manifest.Options{Format: format})
	if err != nil {
		return reportFailure(cmd, "", err)
	}
	rec, ok := doc.Find(id)
	if !ok {
		return fmt.Errorf("%s: no call site with id %q", path, id)
	}

	out := cmd.OutOrStdout()
	if outFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	fmt.Fprintf(out, "%s %s %s:%d\n", lookupID.Sprint(rec.ID), rec.Level, rec.FilePath, rec.Line)
	if rec.Message != nil {
		fmt.Fprintf(out, "  %s\n", *rec.Message)
	}
	return nil
}
