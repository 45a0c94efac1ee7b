// Package callsite recognizes logging call sites in source lines and keeps
// their identifiers unique across a run.
package callsite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"logmap/internal/diag"
	"logmap/internal/fix"
	"logmap/internal/logcall"
	"logmap/internal/source"
)

// maxIDAttempts bounds identifier regeneration before giving up.
const maxIDAttempts = 100

// Options configures an Analyzer.
type Options struct {
	Mode           UpdateMode
	RequireMessage bool
	// Marker introduces message comments; DefaultMarker when empty.
	Marker string
	// NewID generates replacement identifiers; uuid.NewString when nil.
	NewID func() string
	// Stager receives rewritten files; an immediate stager when nil.
	Stager *fix.Stager
}

// Site is a call site found by Scan. Err holds a grammar or missing
// message failure that Resolve reports when it reaches the site.
type Site struct {
	Index   int
	Match   Match
	Level   logcall.Level
	Message *string
	Err     error
}

// Scanned is the registry-independent part of a file's analysis.
type Scanned struct {
	File  source.File
	Lines []string
	Sites []Site
}

// Result is the outcome of analyzing one file.
type Result struct {
	File   source.File
	Calls  []logcall.CallInfo
	Buffer *fix.LineBuffer
}

// Rewritten reports whether any line of the file changed.
func (r *Result) Rewritten() bool {
	return r.Buffer != nil && r.Buffer.Dirty()
}

// Analyzer processes files against one shared registry. Scan is safe for
// concurrent use; Resolve, Apply and Analyze are not.
type Analyzer struct {
	reg     *logcall.Registry
	opts    Options
	message *MessageMatcher
	newID   func() string
	stager  *fix.Stager
}

// NewAnalyzer creates an Analyzer that records call sites into reg.
func NewAnalyzer(reg *logcall.Registry, opts Options) *Analyzer {
	if reg == nil {
		reg = logcall.NewRegistry()
	}
	a := &Analyzer{
		reg:     reg,
		opts:    opts,
		message: NewMessageMatcher(opts.Marker),
		newID:   opts.NewID,
		stager:  opts.Stager,
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}
	if a.stager == nil {
		a.stager = fix.NewStager(fix.PolicyImmediate)
	}
	return a
}

// Registry returns the registry the analyzer fills.
func (a *Analyzer) Registry() *logcall.Registry {
	return a.reg
}

// Stager returns the stager rewritten files are handed to.
func (a *Analyzer) Stager() *fix.Stager {
	return a.stager
}

// Mode returns the configured update mode.
func (a *Analyzer) Mode() UpdateMode {
	return a.opts.Mode
}

// Analyze scans, resolves and stages one file.
func (a *Analyzer) Analyze(file source.File) (*Result, error) {
	scanned, err := a.Scan(file)
	if err != nil {
		return nil, err
	}
	res, err := a.Resolve(scanned)
	if err != nil {
		return nil, err
	}
	if err := a.Apply(res); err != nil {
		return res, err
	}
	return res, nil
}

// Scan reads file and recognizes its call sites. Only read failures are
// returned; per-site failures are kept on the Site.
func (a *Analyzer) Scan(file source.File) (*Scanned, error) {
	lines, err := file.ReadAllLines()
	if err != nil {
		if _, ok := diag.As(err); ok {
			return nil, err
		}
		return nil, diag.Wrap(diag.IOReadFile, file.Path(), err)
	}

	out := &Scanned{File: file, Lines: lines}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, ok := MatchCall(line)
		if !ok {
			continue
		}
		site := Site{Index: i, Match: m}
		site.Level, site.Err = a.parseLevel(file.Path(), i, m.Level)
		if site.Err == nil {
			site.Message, site.Err = a.lookupMessage(file.Path(), lines, i)
		}
		out.Sites = append(out.Sites, site)
	}
	return out, nil
}

// Resolve applies the update mode to every site in line order, registers
// the final identifiers and builds the rewritten buffer. The first failing
// site aborts the file.
func (a *Analyzer) Resolve(s *Scanned) (*Result, error) {
	path := s.File.Path()
	res := &Result{
		File:   s.File,
		Calls:  make([]logcall.CallInfo, 0, len(s.Sites)),
		Buffer: fix.NewLineBuffer(s.Lines),
	}
	for _, site := range s.Sites {
		if site.Err != nil {
			return res, site.Err
		}
		line, err := logcall.LineNumber(site.Index)
		if err != nil {
			return res, diag.Wrap(diag.IOReadFile, path, err)
		}
		info := logcall.CallInfo{
			ID:       site.Match.ID,
			Level:    site.Level,
			Message:  site.Message,
			FilePath: path,
			Line:     line,
		}

		regenerate := false
		switch a.opts.Mode {
		case UpdateNone:
			if info.ID == "" {
				return res, diag.New(diag.LogEmptyID, path, line, "", "empty identifier")
			}
			if prev, ok := a.reg.Get(info.ID); ok {
				e := diag.New(diag.LogDuplicateID, path, line, info.ID,
					fmt.Sprintf("duplicate identifier %q (first seen at %s)", info.ID, prev.Location()))
				e.Err = logcall.ErrDuplicateID
				return res, e
			}
		case UpdateNonUnique:
			regenerate = info.ID == "" || a.reg.Contains(info.ID)
		case UpdateAll:
			regenerate = true
		default:
			return res, diag.New(diag.PrjBadMode, path, line, a.opts.Mode.String(), "unsupported update mode")
		}

		if regenerate {
			id, err := a.freshID()
			if err != nil {
				e := diag.New(diag.LogIDExhausted, path, line, info.ID, err.Error())
				e.Err = err
				return res, e
			}
			info.ID = id
			res.Buffer.Set(site.Index, site.Match.Rewrite(id))
		}

		if err := a.reg.Add(info); err != nil {
			e := diag.New(diag.LogDuplicateID, path, line, info.ID, err.Error())
			e.Err = err
			return res, e
		}
		res.Calls = append(res.Calls, info)
	}
	return res, nil
}

// Apply hands a rewritten buffer to the stager. Clean results are ignored.
func (a *Analyzer) Apply(res *Result) error {
	if !res.Rewritten() {
		return nil
	}
	_, err := a.stager.Stage(res.File, res.Buffer)
	return err
}

var errIDExhausted = errors.New("could not generate a unique identifier")

func (a *Analyzer) freshID() (string, error) {
	for range maxIDAttempts {
		id := a.newID()
		if id == "" || strings.ContainsAny(id, "\"\r\n") || a.reg.Contains(id) {
			continue
		}
		return id, nil
	}
	return "", fmt.Errorf("%w after %d attempts", errIDExhausted, maxIDAttempts)
}

func (a *Analyzer) parseLevel(path string, index int, token string) (logcall.Level, error) {
	lvl, err := logcall.ParseLevel(token)
	if err == nil {
		return lvl, nil
	}
	line, _ := logcall.LineNumber(index)
	e := diag.New(diag.LogUnknownLevel, path, line, token, fmt.Sprintf("unknown log level %q", token))
	e.Err = err
	return 0, e
}

func (a *Analyzer) lookupMessage(path string, lines []string, index int) (*string, error) {
	prev := ""
	if index > 0 {
		prev = lines[index-1]
	}
	if msg, ok := a.message.Match(prev); ok {
		return logcall.Message(msg), nil
	}
	if a.opts.RequireMessage {
		line, _ := logcall.LineNumber(index)
		return nil, diag.New(diag.LogMissingMessage, path, line, "",
			fmt.Sprintf("call site has no preceding %q comment", a.message.Marker()))
	}
	return nil, nil
}
