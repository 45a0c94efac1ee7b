package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskFile is a source file on disk. It remembers the encoding and line
// terminators seen by the last ReadAllLines so WriteAllLines reproduces
// unchanged lines byte for byte.
type DiskFile struct {
	absPath     string
	path        string
	flags       FileFlags
	terminators []string
}

// NewDiskFile binds absPath to a scan root. The file must exist and live
// under root.
func NewDiskFile(absPath, root string) (*DiskFile, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", absPath)
	}
	rel, err := RelativePath(absPath, root)
	if err != nil {
		return nil, err
	}
	if filepath.IsAbs(filepath.FromSlash(rel)) || strings.HasPrefix(rel, "../") {
		return nil, fmt.Errorf("%s: %w %s", absPath, ErrOutsideRoot, root)
	}
	return &DiskFile{absPath: absPath, path: rel}, nil
}

// Path returns the root-relative path.
func (f *DiskFile) Path() string {
	return f.path
}

// AbsPath returns the path the file was opened with.
func (f *DiskFile) AbsPath() string {
	return f.absPath
}

// Flags reports encoding metadata from the last read.
func (f *DiskFile) Flags() FileFlags {
	return f.flags
}

// ReadAllLines reads the file, strips any BOM, decodes UTF-16 and splits
// into lines.
func (f *DiskFile) ReadAllLines() ([]string, error) {
	// #nosec G304 -- path is provided by the enumerator
	content, err := os.ReadFile(f.absPath)
	if err != nil {
		return nil, err
	}
	text, flags, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	lines, terminators := splitLines(text)
	if dominantTerminator(terminators) == "\r\n" {
		flags |= FileHadCRLF
	}
	f.flags = flags
	f.terminators = terminators
	return lines, nil
}

// WriteAllLines overwrites the file, keeping the encoding, BOM, terminators
// and file mode observed on read.
func (f *DiskFile) WriteAllLines(lines []string) error {
	def := "\n"
	if f.flags&FileHadCRLF != 0 {
		def = "\r\n"
	}
	text := joinLines(lines, f.terminators, def)
	out, err := encode(text, f.flags)
	if err != nil {
		return fmt.Errorf("%s: %w", f.path, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.absPath); err == nil {
		mode = info.Mode()
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(f.absPath, out, mode); err != nil {
		return err
	}
	_, f.terminators = splitLines(text)
	return nil
}
