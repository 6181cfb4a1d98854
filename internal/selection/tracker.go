package selection

import (
	"errors"
	"sort"
)

// ErrScopeMismatch indicates a confirmation against a scope the tracker does
// not own. The state machine makes this unreachable in normal flows; hitting
// it means a programming error upstream.
var ErrScopeMismatch = errors.New("selection scope mismatch")

// State describes how much of the owning collection is selected.
type State int

const (
	Empty State = iota
	Partial
	AllSelected
)

// Tracker holds the multi-select state for one collection view. A selection
// belongs to exactly one scope; changing scope always resets it, because a
// selection computed against one collection must never be applied to another.
// Tracker is not safe for concurrent use; Registry provides locking.
type Tracker struct {
	scope string
	ids   map[string]struct{}
}

// NewTracker creates an empty tracker bound to the scope.
func NewTracker(scope string) *Tracker {
	return &Tracker{scope: scope, ids: make(map[string]struct{})}
}

// Scope returns the collection this selection belongs to.
func (t *Tracker) Scope() string {
	return t.scope
}

// Rescope moves the tracker to a different collection, forcing the selection
// back to empty. Rescoping to the current scope is a no-op.
func (t *Tracker) Rescope(scope string) {
	if t.scope == scope {
		return
	}
	t.scope = scope
	t.ids = make(map[string]struct{})
}

// Toggle flips one identifier in or out of the selection.
func (t *Tracker) Toggle(id string) {
	if _, ok := t.ids[id]; ok {
		delete(t.ids, id)
		return
	}
	t.ids[id] = struct{}{}
}

// SelectAll replaces the selection with the given identifiers.
func (t *Tracker) SelectAll(ids []string) {
	t.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		t.ids[id] = struct{}{}
	}
}

// Clear empties the selection without changing scope.
func (t *Tracker) Clear() {
	t.ids = make(map[string]struct{})
}

// Has reports whether the identifier is selected.
func (t *Tracker) Has(id string) bool {
	_, ok := t.ids[id]
	return ok
}

// Selected returns the selected identifiers in stable order.
func (t *Tracker) Selected() []string {
	out := make([]string, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// State classifies the selection against the collection's size.
func (t *Tracker) State(collectionSize int) State {
	switch {
	case len(t.ids) == 0:
		return Empty
	case collectionSize > 0 && len(t.ids) >= collectionSize:
		return AllSelected
	default:
		return Partial
	}
}

// Confirm checks that a deletion request built from this selection still
// belongs to the tracker's scope.
func (t *Tracker) Confirm(scope string) error {
	if scope != t.scope {
		return ErrScopeMismatch
	}
	return nil
}

// RemoveConfirmed drops only the identifiers a deletion actually removed,
// leaving failed ones selected for retry. It never adds identifiers.
func (t *Tracker) RemoveConfirmed(ids []string) {
	for _, id := range ids {
		delete(t.ids, id)
	}
}
