package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"logmap/internal/callsite"
	"logmap/internal/diag"
	"logmap/internal/enumerate"
	"logmap/internal/manifest"
)

// DefaultManifest is the manifest written when none is configured.
const DefaultManifest = "logmap.xml"

// Config is the content of logmap.toml.
type Config struct {
	Scan     ScanConfig     `toml:"scan"`
	Manifest ManifestConfig `toml:"manifest"`
}

// ScanConfig is the [scan] section.
type ScanConfig struct {
	Extensions     []string `toml:"extensions"`
	Exclude        []string `toml:"exclude"`
	Marker         string   `toml:"marker"`
	RequireMessage bool     `toml:"require_message"`
	Update         string   `toml:"update"`
	Jobs           int      `toml:"jobs"`
	Atomic         bool     `toml:"atomic"`
}

// ManifestConfig is the [manifest] section.
type ManifestConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: []string{enumerate.DefaultExtension},
			Exclude:    append([]string(nil), enumerate.DefaultExclude...),
			Marker:     callsite.DefaultMarker,
			Update:     callsite.UpdateNone.String(),
			Jobs:       1,
		},
		Manifest: ManifestConfig{
			Path:   DefaultManifest,
			Format: manifest.FormatAuto.String(),
		},
	}
}

// LoadedConfig is a parsed logmap.toml.
type LoadedConfig struct {
	Path   string
	Dir    string
	Config Config
}

// LoadConfig parses path over the defaults. Keys that are not part of the
// schema are rejected. A relative [manifest].path is resolved against the
// directory holding the file.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, configError(path, fmt.Errorf("failed to parse TOML: %w", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, configError(path, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}
	if meta.IsDefined("manifest", "path") && strings.TrimSpace(cfg.Manifest.Path) == "" {
		return nil, configError(path, fmt.Errorf("[manifest].path must not be empty"))
	}
	if meta.IsDefined("scan", "extensions") && len(cfg.Scan.Extensions) == 0 {
		return nil, configError(path, fmt.Errorf("[scan].extensions must not be empty"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(path, err)
	}

	dir := filepath.Dir(path)
	if !filepath.IsAbs(cfg.Manifest.Path) {
		cfg.Manifest.Path = filepath.Join(dir, filepath.FromSlash(cfg.Manifest.Path))
	}
	return &LoadedConfig{Path: path, Dir: dir, Config: cfg}, nil
}

// Validate checks that every value parses.
func (c Config) Validate() error {
	if _, err := callsite.ParseUpdateMode(c.Scan.Update); err != nil {
		return fmt.Errorf("[scan].update: %w", err)
	}
	if _, err := manifest.ParseFormat(c.Manifest.Format); err != nil {
		return fmt.Errorf("[manifest].format: %w", err)
	}
	if _, err := enumerate.CompileFilters(c.Scan.Exclude); err != nil {
		return fmt.Errorf("[scan].exclude: %w", err)
	}
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("[scan].jobs must not be negative, got %d", c.Scan.Jobs)
	}
	return nil
}

func configError(path string, err error) error {
	return &diag.Error{
		Severity: diag.SevError,
		Code:     diag.PrjBadConfig,
		Path:     path,
		Message:  err.Error(),
		Err:      err,
	}
}
