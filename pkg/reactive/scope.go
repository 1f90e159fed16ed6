package reactive

import (
	"sync"
	"sync/atomic"
)

// Scope is a cancellable grouping of reactive computations.
// Effects created while a Scope is active (see Run) are owned by it and are
// disposed when the Scope is stopped. Scopes form a hierarchy: stopping a
// parent stops its children first, in reverse creation order.
type Scope struct {
	id uint64

	// parent is nil for a root Scope.
	parent *Scope

	// children are nested scopes.
	children   []*Scope
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups are manual cleanup functions registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// stopped indicates whether this Scope has been stopped.
	stopped atomic.Bool
}

// NewScope creates a Scope with the given parent.
// A nil parent creates a root Scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(s)
	}

	return s
}

// ID returns the unique identifier for this Scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent Scope, or nil for a root Scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsStopped reports whether Stop has been called.
func (s *Scope) IsStopped() bool {
	return s.stopped.Load()
}

// Run executes fn with this Scope active, so that any effect fn creates is
// owned by the Scope. The previous active scope is restored afterwards, even
// if fn panics.
func (s *Scope) Run(fn func()) {
	old := setCurrentScope(s)
	defer setCurrentScope(old)
	fn()
}

// OnCleanup registers fn to run when the Scope is stopped.
// If the Scope is already stopped, fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.stopped.Load() {
		fn()
		return
	}

	s.cleanupsMu.Lock()
	defer s.cleanupsMu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// addChild registers a child Scope.
func (s *Scope) addChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	s.children = append(s.children, child)
}

// removeChild removes a child Scope.
func (s *Scope) removeChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()

	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// registerEffect adds an effect to this Scope.
// The effect is disposed when the Scope is stopped.
func (s *Scope) registerEffect(e *Effect) {
	if s.stopped.Load() {
		return
	}

	s.effectsMu.Lock()
	defer s.effectsMu.Unlock()
	s.effects = append(s.effects, e)
}

// Stop stops this Scope and all its children, effects, and cleanups.
// Children are stopped in reverse creation order, then effects are disposed,
// then cleanups run in reverse registration order. Stopping an already
// stopped Scope is a no-op.
func (s *Scope) Stop() {
	if s.stopped.Swap(true) {
		return
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	s.childrenMu.Lock()
	children := make([]*Scope, len(s.children))
	copy(children, s.children)
	s.children = nil
	s.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Stop()
	}

	s.effectsMu.Lock()
	effects := s.effects
	s.effects = nil
	s.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	s.cleanupsMu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
