package selection

import "sync"

// Registry holds one active tracker per admin session. Fetching a tracker
// for a different scope rescopes it, which resets the selection.
type Registry struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{trackers: make(map[string]*Tracker)}
}

// Toggle flips one identifier in the session's selection for the scope.
func (r *Registry) Toggle(session, scope, id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tracker(session, scope)
	t.Toggle(id)
	return t.Selected()
}

// SelectAll replaces the session's selection for the scope.
func (r *Registry) SelectAll(session, scope string, ids []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tracker(session, scope)
	t.SelectAll(ids)
	return t.Selected()
}

// Clear empties the session's selection for the scope.
func (r *Registry) Clear(session, scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracker(session, scope).Clear()
}

// Selected returns the session's current selection for the scope.
func (r *Registry) Selected(session, scope string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tracker(session, scope).Selected()
}

// Confirm validates that the session's active selection matches the scope a
// deletion request was built against.
func (r *Registry) Confirm(session, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trackers[session]
	if !ok {
		return ErrScopeMismatch
	}
	return t.Confirm(scope)
}

// ClearConfirmed removes confirmed-deleted identifiers from every session
// currently tracking the scope. Identifiers that failed deletion stay
// selected so the user can retry them.
func (r *Registry) ClearConfirmed(scope string, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.trackers {
		if t.Scope() == scope {
			t.RemoveConfirmed(ids)
		}
	}
}

// tracker returns the session's tracker rescoped to the requested scope.
func (r *Registry) tracker(session, scope string) *Tracker {
	t, ok := r.trackers[session]
	if !ok {
		t = NewTracker(scope)
		r.trackers[session] = t
		return t
	}
	t.Rescope(scope)
	return t
}
