// Package diag defines the located failure model shared by the scanner,
// the analyzer and the manifest writer.
//
// # Data model
//
// Error is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Path and Line – the root-relative file and 1-based line of the finding.
//   - Value – the offending token or identifier, quoted in messages.
//   - Err – the wrapped cause for I/O failures.
//
// Every Error produced during a scan is fatal: the run stops at the first one
// and reports it to the caller. Codes are grouped into kinds (io, grammar,
// duplicate-id, empty-id, missing-message, config) so callers can branch
// with errors.Is against ErrIO, ErrGrammar and friends without matching on
// individual codes.
//
// # Scope
//
// Package diag does not perform any formatting beyond Error(). Rendering with
// source context and color lives in internal/diagfmt.
package diag
