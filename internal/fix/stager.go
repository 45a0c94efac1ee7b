package fix

import (
	"errors"
	"fmt"

	"logmap/internal/diag"
	"logmap/internal/source"
)

// Policy controls when staged rewrites reach the disk.
type Policy uint8

const (
	// PolicyImmediate writes each file as soon as it is staged.
	PolicyImmediate Policy = iota
	// PolicyDeferred holds every rewrite until Commit.
	PolicyDeferred
	// PolicyDiscard never writes; changes are only reported.
	PolicyDiscard
)

func (p Policy) String() string {
	switch p {
	case PolicyImmediate:
		return "immediate"
	case PolicyDeferred:
		return "deferred"
	case PolicyDiscard:
		return "discard"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	Edits     []LineEdit
	Before    []string
	After     []string
	Written   bool
}

type staged struct {
	file   source.File
	change int
}

// Stager collects rewritten files and writes them according to its policy.
type Stager struct {
	policy  Policy
	pending []staged
	changes []FileChange
}

// NewStager creates a Stager.
func NewStager(policy Policy) *Stager {
	return &Stager{policy: policy}
}

// Policy returns the configured policy.
func (s *Stager) Policy() Policy {
	return s.policy
}

// Stage registers buf as the new content of file. Clean buffers are
// ignored and reported as false.
func (s *Stager) Stage(file source.File, buf *LineBuffer) (bool, error) {
	if buf == nil || !buf.Dirty() {
		return false, nil
	}
	s.changes = append(s.changes, FileChange{
		Path:      file.Path(),
		EditCount: buf.EditCount(),
		Edits:     buf.Edits(),
		Before:    buf.Original(),
		After:     buf.Lines(),
	})
	idx := len(s.changes) - 1

	switch s.policy {
	case PolicyImmediate:
		if err := write(file, s.changes[idx].After); err != nil {
			return true, err
		}
		s.changes[idx].Written = true
	case PolicyDeferred:
		s.pending = append(s.pending, staged{file: file, change: idx})
	}
	return true, nil
}

// Pending returns the number of files waiting for Commit.
func (s *Stager) Pending() int {
	return len(s.pending)
}

// Commit writes every deferred file in staging order. When a write fails,
// files already written by this Commit are restored to their original
// lines and the write error is returned joined with any restore errors.
func (s *Stager) Commit() error {
	pending := s.pending
	s.pending = nil
	for k, p := range pending {
		ch := &s.changes[p.change]
		if err := write(p.file, ch.After); err != nil {
			return errors.Join(err, s.rollback(pending[:k]))
		}
		ch.Written = true
	}
	return nil
}

// Discard drops deferred rewrites without writing them.
func (s *Stager) Discard() {
	s.pending = nil
}

// Changes returns the staged changes in staging order.
func (s *Stager) Changes() []FileChange {
	return append([]FileChange(nil), s.changes...)
}

func (s *Stager) rollback(done []staged) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		ch := &s.changes[done[i].change]
		if err := write(done[i].file, ch.Before); err != nil {
			errs = append(errs, err)
			continue
		}
		ch.Written = false
	}
	return errors.Join(errs...)
}

func write(file source.File, lines []string) error {
	if err := file.WriteAllLines(lines); err != nil {
		if _, ok := diag.As(err); ok {
			return err
		}
		return diag.Wrap(diag.IOWriteFile, file.Path(), err)
	}
	return nil
}
