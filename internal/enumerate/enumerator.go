// Package enumerate lists candidate source files under a scan root.
package enumerate

import (
	"path/filepath"
	"sort"
	"strings"

	"logmap/internal/diag"
)

// DefaultExtension is the source file extension scanned when none is configured.
const DefaultExtension = ".cs"

// Options configures an Enumerator.
type Options struct {
	Extensions []string
	Exclude    Filters
}

// Enumerator recursively collects source files, pruning excluded
// directories before they are listed.
type Enumerator struct {
	dirs       DirFunctions
	extensions map[string]struct{}
	exclude    Filters
}

// New creates an Enumerator. A nil dirs uses the host file system.
func New(dirs DirFunctions, opts Options) *Enumerator {
	if dirs == nil {
		dirs = OSDirFunctions{}
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{DefaultExtension}
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return &Enumerator{dirs: dirs, extensions: set, exclude: opts.Exclude}
}

// SourceFiles returns matching files under root. Files of a directory come
// before its subdirectories; both are sorted lexicographically. The first
// listing failure aborts the walk.
func (e *Enumerator) SourceFiles(root string) ([]string, error) {
	files := make([]string, 0)
	if err := e.collect(root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Walk calls fn for each matching file in SourceFiles order and stops at
// the first error.
func (e *Enumerator) Walk(root string, fn func(path string) error) error {
	files, err := e.SourceFiles(root)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Enumerator) collect(dir string, files *[]string) error {
	entries, err := e.dirs.Files(dir)
	if err != nil {
		return diag.Wrap(diag.IOReadDir, dir, err)
	}
	sort.Strings(entries)
	for _, f := range entries {
		if e.Matches(f) {
			*files = append(*files, f)
		}
	}

	subdirs, err := e.dirs.Directories(dir)
	if err != nil {
		return diag.Wrap(diag.IOReadDir, dir, err)
	}
	sort.Strings(subdirs)
	for _, sub := range subdirs {
		if e.exclude.Excludes(filepath.Base(sub)) {
			continue
		}
		if err := e.collect(sub, files); err != nil {
			return err
		}
	}
	return nil
}

// WalkDirs calls fn for root and every directory below it that survives
// the exclusion filters, parents first.
func (e *Enumerator) WalkDirs(root string, fn func(dir string) error) error {
	if err := fn(root); err != nil {
		return err
	}
	subdirs, err := e.dirs.Directories(root)
	if err != nil {
		return diag.Wrap(diag.IOReadDir, root, err)
	}
	sort.Strings(subdirs)
	for _, sub := range subdirs {
		if e.exclude.Excludes(filepath.Base(sub)) {
			continue
		}
		if err := e.WalkDirs(sub, fn); err != nil {
			return err
		}
	}
	return nil
}

// Matches reports whether path has one of the configured extensions.
func (e *Enumerator) Matches(path string) bool {
	_, ok := e.extensions[filepath.Ext(path)]
	return ok
}

// Excluded reports whether a directory named like dir is skipped.
func (e *Enumerator) Excluded(dir string) bool {
	return e.exclude.Excludes(filepath.Base(dir))
}
