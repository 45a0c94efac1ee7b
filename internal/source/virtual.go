package source

import "sync"

// VirtualFile is an in-memory File. It counts writes so callers can check
// that unchanged files are never rewritten.
type VirtualFile struct {
	mu       sync.Mutex
	path     string
	lines    []string
	writes   int
	err      error
	writeErr error
}

// NewVirtualFile creates an in-memory file with the given lines.
func NewVirtualFile(path string, lines ...string) *VirtualFile {
	return &VirtualFile{
		path:  normalizePath(path),
		lines: append([]string(nil), lines...),
	}
}

// FailReads makes every subsequent ReadAllLines return err.
func (f *VirtualFile) FailReads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// FailWrites makes every subsequent WriteAllLines return err.
func (f *VirtualFile) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

func (f *VirtualFile) Path() string {
	return f.path
}

func (f *VirtualFile) ReadAllLines() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.lines...), nil
}

func (f *VirtualFile) WriteAllLines(lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.lines = append([]string(nil), lines...)
	f.writes++
	return nil
}

// Lines returns the current content.
func (f *VirtualFile) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

// Writes returns how many times WriteAllLines was called.
func (f *VirtualFile) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Flags always reports FileVirtual.
func (f *VirtualFile) Flags() FileFlags {
	return FileVirtual
}
