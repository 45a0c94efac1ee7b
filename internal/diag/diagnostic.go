package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a located failure. Path is relative to the scan root when the
// failure concerns a source file; Line is 1-based and zero when the failure
// is not tied to a line.
type Error struct {
	Severity Severity
	Code     Code
	Path     string
	Line     uint32
	Value    string
	Message  string
	Err      error
}

// New creates an error-severity diagnostic for a source location.
func New(code Code, path string, line uint32, value, msg string) *Error {
	return &Error{
		Severity: SevError,
		Code:     code,
		Path:     path,
		Line:     line,
		Value:    value,
		Message:  msg,
	}
}

// Wrap attaches a code and path to an underlying error.
func Wrap(code Code, path string, err error) *Error {
	msg := code.Title()
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Severity: SevError,
		Code:     code,
		Path:     path,
		Message:  msg,
		Err:      err,
	}
}

// Location formats path[:line].
func (e *Error) Location() string {
	if e.Line == 0 {
		return e.Path
	}
	return fmt.Sprintf("%s:%d", e.Path, e.Line)
}

func (e *Error) Error() string {
	var sb strings.Builder
	if loc := e.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Code.ID())
	sb.WriteString(": ")
	if e.Message != "" {
		sb.WriteString(e.Message)
	} else {
		sb.WriteString(e.Code.Title())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels (ErrIO, ErrGrammar, ...).
func (e *Error) Is(target error) bool {
	k, ok := target.(kindSentinel)
	if !ok {
		return false
	}
	return e.Code.Kind() == Kind(k)
}

type kindSentinel Kind

func (k kindSentinel) Error() string {
	return Kind(k).String() + " error"
}

// Sentinels for errors.Is checks against *Error values.
var (
	ErrIO             error = kindSentinel(KindIO)
	ErrGrammar        error = kindSentinel(KindGrammar)
	ErrDuplicateID    error = kindSentinel(KindDuplicateID)
	ErrEmptyID        error = kindSentinel(KindEmptyID)
	ErrMissingMessage error = kindSentinel(KindMissingMessage)
	ErrConfig         error = kindSentinel(KindConfig)
)

// KindOf reports the failure class of err, or KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Code.Kind()
	}
	return KindUnknown
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
