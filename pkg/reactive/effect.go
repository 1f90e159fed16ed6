package reactive

import (
	"sync"
	"sync/atomic"
)

// Cleanup is a function returned by an effect body to undo its side effects.
// It runs before the effect re-runs and when the effect is disposed.
type Cleanup func()

// Effect is a reactive side effect that re-runs when its dependencies change.
// Effects run immediately on creation and re-run synchronously whenever a
// signal they read changes.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup from the last run.
	cleanup Cleanup

	// sources are the signals this effect currently depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// scope owns this effect, nil when created outside any scope.
	scope *Scope

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// NewEffect creates an effect owned by the currently active scope and runs
// it immediately. If fn returns a Cleanup it is called before each re-run
// and on disposal.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		scope: CurrentScope(),
	}

	if e.scope != nil {
		e.scope.registerEffect(e)
	}

	e.run()
	return e
}

// ID returns the unique identifier for this effect.
// Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// MarkDirty re-runs the effect. Implements Listener.
// With no render loop to defer to, dependency changes re-run synchronously.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	e.run()
}

// run executes the effect body and re-tracks its dependencies.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from the previous run's sources.
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	old := setCurrentListener(e)
	defer setCurrentListener(old)
	e.cleanup = e.fn()
}

// addSource records a signal dependency.
// Called by signals read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// IsDisposed reports whether the effect has been disposed.
func (e *Effect) IsDisposed() bool {
	return e.disposed.Load()
}

// Dispose stops the effect, runs its cleanup, and unsubscribes from all
// sources. Disposing twice is a no-op.
func (e *Effect) Dispose() {
	e.dispose()
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}
