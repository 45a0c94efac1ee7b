package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"logmap/internal/diag"
)

type palette struct {
	location *color.Color
	err      *color.Color
	warn     *color.Color
	info     *color.Color
	code     *color.Color
	gutter   *color.Color
	caret    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		err:      color.New(color.FgRed, color.Bold),
		warn:     color.New(color.FgYellow, color.Bold),
		info:     color.New(color.FgCyan, color.Bold),
		code:     color.New(color.Faint),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.err, p.warn, p.info, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevWarning:
		return p.warn
	case diag.SevInfo:
		return p.info
	}
	return p.err
}

// Pretty renders every diagnostic in err as
//
//	<path>:<line>: <SEV> <CODE>: <message>
//
// followed by the source line with a caret under the offending value when
// opts.Source is set.
func Pretty(w io.Writer, err error, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range Flatten(err) {
		if werr := prettyOne(w, d, opts, p); werr != nil {
			return werr
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Error, opts PrettyOpts, p palette) error {
	var sb strings.Builder
	if loc := location(d, opts.Root, opts.PathMode); loc != "" {
		sb.WriteString(p.location.Sprint(loc))
		sb.WriteString(": ")
	}
	sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteByte(' ')
	sb.WriteString(p.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	if d.Message != "" {
		sb.WriteString(d.Message)
	} else {
		sb.WriteString(d.Code.Title())
	}
	sb.WriteByte('\n')

	if opts.Source != nil && d.Line > 0 && d.Path != "" {
		if lines, err := opts.Source(d.Path); err == nil && int(d.Line) <= len(lines) {
			writeContext(&sb, lines[d.Line-1], d.Line, d.Value, p)
		}
	}

	if opts.Verbose {
		for cause := d.Err; cause != nil; cause = errors.Unwrap(cause) {
			fmt.Fprintf(&sb, "  caused by: %v\n", cause)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeContext(sb *strings.Builder, text string, line uint32, value string, p palette) {
	num := fmt.Sprintf("%d", line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), text)

	if value == "" {
		return
	}
	idx := strings.Index(text, value)
	if idx < 0 {
		return
	}
	// keep tabs so the caret lines up with the source as rendered
	var lead strings.Builder
	for _, r := range text[:idx] {
		if r == '\t' {
			lead.WriteByte('\t')
			continue
		}
		lead.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(value), 1)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), lead.String(), p.caret.Sprint(marker))
}

func location(d *diag.Error, root string, mode PathMode) string {
	path := displayPath(d.Path, root, mode)
	if path == "" {
		return ""
	}
	if d.Line == 0 {
		return path
	}
	return fmt.Sprintf("%s:%d", path, d.Line)
}
