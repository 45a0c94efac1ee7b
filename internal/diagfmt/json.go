package diagfmt

import (
	"encoding/json"
	"io"

	"logmap/internal/diag"
)

// LocationJSON is the position of a diagnostic.
type LocationJSON struct {
	File string `json:"file,omitempty"`
	Line uint32 `json:"line,omitempty"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Kind     string       `json:"kind"`
	Message  string       `json:"message"`
	Value    string       `json:"value,omitempty"`
	Location LocationJSON `json:"location"`
	Cause    string       `json:"cause,omitempty"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput converts err into its JSON form.
func BuildDiagnosticsOutput(err error, opts JSONOpts) DiagnosticsOutput {
	all := Flatten(err)
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(all)),
		Count:       len(all),
	}
	for i, d := range all {
		if opts.Max > 0 && i >= opts.Max {
			out.Truncated = true
			break
		}
		out.Diagnostics = append(out.Diagnostics, toJSON(d, opts))
	}
	return out
}

func toJSON(d *diag.Error, opts JSONOpts) DiagnosticJSON {
	msg := d.Message
	if msg == "" {
		msg = d.Code.Title()
	}
	dj := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Kind:     d.Code.Kind().String(),
		Message:  msg,
		Value:    d.Value,
		Location: LocationJSON{
			File: displayPath(d.Path, opts.Root, opts.PathMode),
			Line: d.Line,
		},
	}
	if d.Err != nil && d.Err.Error() != msg {
		dj.Cause = d.Err.Error()
	}
	return dj
}

// JSON writes the diagnostics of err as a single JSON document.
func JSON(w io.Writer, err error, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildDiagnosticsOutput(err, opts))
}
