// Package registry is the authoritative store mapping pane identity to
// logical editor state and the global pane ordering other subsystems consume
// (tab cycling, "most recent pane"). Split containers must mirror every
// structural reorder into this registry within the same operation.
//
// The registry is driven from the single-threaded event loop; it holds no
// locks.
package registry

import "github.com/rs/xid"

// EditorState is the logical state behind an editor pane. The layout engine
// clones it on split and restores the scroll offset into the new pane.
type EditorState struct {
	Path       string
	CursorLine int
	CursorCol  int
	ScrollX    int
	ScrollY    int
}

// Clone returns a copy of the state.
func (s *EditorState) Clone() *EditorState {
	cp := *s
	return &cp
}

// Registry tracks editor pane states and their logical order.
type Registry struct {
	states     map[string]*EditorState
	order      []string
	lastActive string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{states: make(map[string]*EditorState)}
}

// NewID returns a fresh pane identity, unique within the process.
func NewID() string {
	return xid.New().String()
}

// Get returns the state for a pane identity.
func (r *Registry) Get(id string) (*EditorState, bool) {
	s, ok := r.states[id]
	return s, ok
}

// Insert registers a pane state. The identity is appended to the order; a
// following SetOrder from the owning container establishes the real position.
func (r *Registry) Insert(id string, s *EditorState) {
	if _, ok := r.states[id]; !ok {
		r.order = append(r.order, id)
	}
	r.states[id] = s
}

// Remove drops a pane state and its order entry.
func (r *Registry) Remove(id string) {
	delete(r.states, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.lastActive == id {
		r.lastActive = ""
	}
}

// Tracks reports whether the identity is registered.
func (r *Registry) Tracks(id string) bool {
	_, ok := r.states[id]
	return ok
}

// SetOrder replaces the logical order with the container's child order.
// Identities not tracked by the registry are ignored.
func (r *Registry) SetOrder(ids []string) {
	order := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := r.states[id]; ok {
			order = append(order, id)
		}
	}
	r.order = order
}

// Order returns the logical pane order.
func (r *Registry) Order() []string {
	return r.order
}

// SetLastActive records the most recently focused registry-tracked pane.
func (r *Registry) SetLastActive(id string) {
	if _, ok := r.states[id]; ok {
		r.lastActive = id
	}
}

// LastActive returns the most recently focused pane, if it is still tracked.
func (r *Registry) LastActive() (string, bool) {
	if r.lastActive == "" {
		return "", false
	}
	return r.lastActive, true
}
