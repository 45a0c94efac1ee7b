package source

type (
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file lives in memory (test, dry run).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileUTF16LE
	FileUTF16BE
	FileHadCRLF
)

// File is one source file of a scan.
type File interface {
	// Path is relative to the scan root and slash separated.
	Path() string
	// ReadAllLines returns the content split into lines without terminators.
	ReadAllLines() ([]string, error)
	// WriteAllLines overwrites the file with exactly the given lines.
	WriteAllLines(lines []string) error
}
