package enumerate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DirFunctions lists directory contents. Returned paths include dir.
type DirFunctions interface {
	// Files returns the non-directory entries of dir.
	Files(dir string) ([]string, error)
	// Directories returns the subdirectories of dir.
	Directories(dir string) ([]string, error)
}

// OSDirFunctions reads the host file system. Symlinks to directories are
// reported as neither files nor directories so the walk cannot loop.
type OSDirFunctions struct{}

func (OSDirFunctions) Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue // dangling link
			}
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				continue
			}
		}
		out = append(out, path)
	}
	return out, nil
}

func (OSDirFunctions) Directories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}
