package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"logmap/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a logmap.toml template",
	Long: `Write a commented logmap.toml into dir (default: the current directory).
The directory is created when it does not exist.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing logmap.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, statErr := os.Stat(target); statErr == nil && !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	force, _ := cmd.Flags().GetBool("force")
	path, err := project.WriteTemplate(target, force)
	if errors.Is(err, project.ErrConfigExists) {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		rel := path
		if wd, wdErr := os.Getwd(); wdErr == nil {
			if r, relErr := filepath.Rel(wd, path); relErr == nil {
				rel = r
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", rel)
	}
	return nil
}
