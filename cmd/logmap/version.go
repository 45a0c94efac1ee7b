package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"logmap/internal/version"
)

// buildField is one optional piece of build metadata selectable by flag.
type buildField struct {
	flag  string
	usage string
	label string
	field func(*version.Info) *string
}

var buildFields = []buildField{
	{"hash", "include git commit hash", "commit", func(i *version.Info) *string { return &i.GitCommit }},
	{"message", "include git commit message", "message", func(i *version.Info) *string { return &i.GitMessage }},
	{"date", "include build timestamp", "built", func(i *version.Info) *string { return &i.BuildDate }},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show logmap build fingerprints",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	for _, f := range buildFields {
		versionCmd.Flags().Bool(f.flag, false, f.usage)
	}
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	full, _ := cmd.Flags().GetBool("full")
	var selected []string
	for _, f := range buildFields {
		if on, _ := cmd.Flags().GetBool(f.flag); on || full {
			selected = append(selected, f.flag)
		}
	}
	info := selectBuildInfo(version.Current(), selected...)

	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), info)
		return nil
	case "json":
		return renderVersionJSON(cmd.OutOrStdout(), info)
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

// selectBuildInfo keeps only the named metadata fields. Selected fields
// that the build did not record read "unknown".
func selectBuildInfo(info version.Info, flags ...string) version.Info {
	out := version.Info{Version: strings.TrimSpace(info.Version)}
	for _, f := range buildFields {
		for _, name := range flags {
			if name != f.flag {
				continue
			}
			v := strings.TrimSpace(*f.field(&info))
			if v == "" {
				v = "unknown"
			}
			*f.field(&out) = v
		}
	}
	return out
}

func renderVersionPretty(out io.Writer, info version.Info) {
	fmt.Fprintf(out, "logmap %s\n", version.Colored())
	for _, f := range buildFields {
		if v := *f.field(&info); v != "" {
			fmt.Fprintf(out, "%-8s %s\n", f.label+":", v)
		}
	}
}

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func renderVersionJSON(out io.Writer, info version.Info) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{Tool: "logmap", Info: info})
}
