package logcall

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Registry.Add when the identifier is already present.
var ErrDuplicateID = errors.New("duplicate identifier")

// Registry maps identifiers to call sites for a single run. Entries keep
// insertion order so the manifest follows traversal order.
type Registry struct {
	order   []string
	entries map[string]CallInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		order:   make([]string, 0),
		entries: make(map[string]CallInfo),
	}
}

// Add stores info under info.ID.
func (r *Registry) Add(info CallInfo) error {
	if prev, ok := r.entries[info.ID]; ok {
		return fmt.Errorf("%w %q at %s (first seen at %s)", ErrDuplicateID, info.ID, info.Location(), prev.Location())
	}
	r.entries[info.ID] = info
	r.order = append(r.order, info.ID)
	return nil
}

// Contains reports whether id has been registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Get returns the call site registered under id.
func (r *Registry) Get(id string) (CallInfo, bool) {
	info, ok := r.entries[id]
	return info, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.order)
}

// Items returns the entries in insertion order. The slice is a copy.
func (r *Registry) Items() []CallInfo {
	out := make([]CallInfo, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// IDs returns the identifiers in insertion order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}
