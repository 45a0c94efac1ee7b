package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths as recorded (relative to the scan root).
	PathModeAuto PathMode = iota
	// PathModeAbsolute joins recorded paths onto the root.
	PathModeAbsolute
	PathModeBasename
)

// LineSource returns the lines of a file recorded relative to the scan root.
type LineSource func(path string) ([]string, error)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Root     string
	PathMode PathMode
	// Source enables the context line with a caret under the offending
	// value. Nil disables context.
	Source LineSource
	// Verbose prints the underlying error chain below each diagnostic.
	Verbose bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Root     string
	PathMode PathMode
	Max      int // 0 - unlimited
	Indent   bool
}
