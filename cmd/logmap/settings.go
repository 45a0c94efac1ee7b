package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"logmap/internal/callsite"
	"logmap/internal/driver"
	"logmap/internal/enumerate"
	"logmap/internal/manifest"
	"logmap/internal/project"
	"logmap/internal/source"
)

// scanFlags selects which of the shared scan flags a command registers.
type scanFlags struct {
	write bool // manifest, update mode, atomic, dry-run, diff
}

func addScanFlags(fs *pflag.FlagSet, sel scanFlags) {
	fs.StringSlice("ext", nil, "source file extensions (default .cs)")
	fs.StringArray("exclude", nil, "additional directory name regexp to skip (repeatable)")
	fs.Bool("no-default-exclude", false, "drop the configured directory filters")
	fs.String("marker", "", "message comment marker (default LogMsg)")
	fs.Bool("require-message", false, "fail on calls without a message comment")
	fs.Int("jobs", 0, "files read and matched concurrently (0 = config, 1 = sequential)")
	if !sel.write {
		return
	}
	fs.StringP("map", "m", "", "manifest path (default logmap.xml in the scan root)")
	fs.String("map-format", "", "manifest format (auto|xml|json|toml|msgpack|sqlite)")
	fs.StringP("update", "u", "", "identifier update mode (none|nonunique|all)")
	fs.Bool("atomic", false, "write rewritten files only after the whole tree was analyzed")
	fs.Bool("dry-run", false, "report changes without writing sources or the manifest")
	fs.Bool("diff", false, "print a diff of every rewritten file")
}

// settings is the merged configuration of one command invocation.
type settings struct {
	root       string
	configPath string
	cfg        project.Config
}

// loadSettings merges defaults, logmap.toml, environment and flags, in
// increasing precedence.
func loadSettings(cmd *cobra.Command, args []string) (*settings, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", root, err)
	}

	s := &settings{root: absRoot, cfg: project.Default()}

	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		found, ok, findErr := project.FindConfig(absRoot)
		if findErr != nil {
			return nil, findErr
		}
		if ok {
			configPath = found
		}
	}
	envDir := absRoot
	if configPath != "" {
		loaded, loadErr := project.LoadConfig(configPath)
		if loadErr != nil {
			return nil, loadErr
		}
		s.configPath = loaded.Path
		s.cfg = loaded.Config
		envDir = loaded.Dir
	}

	env, err := project.LoadEnv(envDir)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(env[project.EnvMap]); v != "" {
		if env[project.EnvMap], err = filepath.Abs(v); err != nil {
			return nil, err
		}
	}
	if err := s.cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	if err := s.applyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return s, s.cfg.Validate()
}

func (s *settings) applyFlags(fs *pflag.FlagSet) error {
	scan := &s.cfg.Scan
	if fs.Changed("ext") {
		exts, err := fs.GetStringSlice("ext")
		if err != nil {
			return err
		}
		if len(exts) == 0 {
			return fmt.Errorf("--ext must name at least one extension")
		}
		scan.Extensions = exts
	}
	if fs.Changed("no-default-exclude") {
		if drop, _ := fs.GetBool("no-default-exclude"); drop {
			scan.Exclude = nil
		}
	}
	if fs.Changed("exclude") {
		extra, err := fs.GetStringArray("exclude")
		if err != nil {
			return err
		}
		scan.Exclude = append(scan.Exclude, extra...)
	}
	if fs.Changed("marker") {
		scan.Marker, _ = fs.GetString("marker")
	}
	if fs.Changed("require-message") {
		scan.RequireMessage, _ = fs.GetBool("require-message")
	}
	if fs.Changed("jobs") {
		if jobs, _ := fs.GetInt("jobs"); jobs > 0 {
			scan.Jobs = jobs
		}
	}
	if fs.Lookup("update") != nil && fs.Changed("update") {
		scan.Update, _ = fs.GetString("update")
	}
	if fs.Lookup("atomic") != nil && fs.Changed("atomic") {
		scan.Atomic, _ = fs.GetBool("atomic")
	}
	if fs.Lookup("map") != nil && fs.Changed("map") {
		p, _ := fs.GetString("map")
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		s.cfg.Manifest.Path = abs
	}
	if fs.Lookup("map-format") != nil && fs.Changed("map-format") {
		s.cfg.Manifest.Format, _ = fs.GetString("map-format")
	}
	return nil
}

// request builds the driver request for the merged settings.
func (s *settings) request() (driver.Request, error) {
	mode, err := callsite.ParseUpdateMode(s.cfg.Scan.Update)
	if err != nil {
		return driver.Request{}, err
	}
	filters, err := enumerate.CompileFilters(s.cfg.Scan.Exclude)
	if err != nil {
		return driver.Request{}, err
	}
	format, err := manifest.ParseFormat(s.cfg.Manifest.Format)
	if err != nil {
		return driver.Request{}, err
	}
	return driver.Request{
		Root:           s.root,
		Extensions:     s.cfg.Scan.Extensions,
		Exclude:        filters,
		Mode:           mode,
		RequireMessage: s.cfg.Scan.RequireMessage,
		Marker:         s.cfg.Scan.Marker,
		ManifestPath:   s.cfg.Manifest.Path,
		ManifestFormat: format,
		Jobs:           s.cfg.Scan.Jobs,
		Atomic:         s.cfg.Scan.Atomic,
	}, nil
}

// lineSource reads a file recorded relative to root, for diagnostic context.
func lineSource(root string) func(string) ([]string, error) {
	return func(rel string) ([]string, error) {
		p := rel
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, filepath.FromSlash(rel))
		}
		f, err := source.NewDiskFile(p, root)
		if err != nil {
			return nil, err
		}
		return f.ReadAllLines()
	}
}
