package plugin

import (
	"sync"

	"github.com/vango-dev/routerplugin/pkg/reactive"
	"github.com/vango-dev/routerplugin/pkg/router"
)

// registry maps each router to its lifecycle state. Pointers are identity
// keys, so no handle indirection is needed.
var registry = struct {
	mu sync.Mutex
	m  map[*router.Router]*routerState
}{m: make(map[*router.Router]*routerState)}

// stateFor returns the lifecycle state for r, creating it on first access.
// Repeated calls for the same router return the same record.
func stateFor(r *router.Router) *routerState {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	st, ok := registry.m[r]
	if !ok {
		st = &routerState{router: r}
		registry.m[r] = st
	}
	return st
}

// routerState is the single source of truth for one router's plugin
// lifecycle. All capability closures handed to plugins delegate here, so the
// queue and flag invariants live in one place.
type routerState struct {
	router *router.Router

	mu sync.Mutex

	// attached reports whether the router has been installed on an
	// application. Reset only by a full unmount.
	attached bool

	// app is the application handle, set at attachment, cleared at unmount.
	app router.App

	// scope is the shared effect scope for every plugin on this router.
	// Created lazily on first use; replaced after a stop so an
	// unmount-and-recreate cycle starts fresh.
	scope *reactive.Scope

	// pending holds context callbacks registered before attachment, already
	// wrapped to run inside the scope and the application context. Drained
	// in order at attachment and left empty afterwards.
	pending []func(router.App)

	// uninstall accumulates teardown callbacks until unmount drains it.
	uninstall []func()

	// installWrapped guards the one-time install-hook override.
	installWrapped bool

	// unmountWrapped guards the one-time unmount-hook override per
	// attachment. Reset at unmount so the next attachment wraps the next
	// application's hook.
	unmountWrapped bool

	// installed counts completed plugin installs, for introspection.
	installed int

	observers  []observerEntry
	observerID uint64
}

// ensureScope returns the shared scope, creating or replacing it as needed.
func (st *routerState) ensureScope() *reactive.Scope {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.scope == nil || st.scope.IsStopped() {
		st.scope = reactive.NewScope(nil)
	}
	return st.scope
}

// runWithApp runs fn with the application handle, inside the application
// context and the shared scope. Before attachment the call is queued; after
// attachment it runs immediately and synchronously.
func (st *routerState) runWithApp(fn func(app router.App)) {
	invoke := func(app router.App) {
		app.RunWithContext(func() {
			st.ensureScope().Run(func() {
				fn(app)
			})
		})
	}

	st.mu.Lock()
	if !st.attached {
		st.pending = append(st.pending, invoke)
		st.mu.Unlock()
		return
	}
	app := st.app
	st.mu.Unlock()

	invoke(app)
}

// onUninstall appends fn to the uninstall list. Callbacks are never
// deduplicated; each registration fires independently at unmount.
func (st *routerState) onUninstall(fn func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.uninstall = append(st.uninstall, fn)
}

// markAttached records the attachment bookkeeping without running the attach
// sequence. Used by the application-side install path, where the native
// attachment already happened.
func (st *routerState) markAttached(app router.App) {
	st.mu.Lock()
	st.attached = true
	st.app = app
	st.mu.Unlock()
}

// attach is the wrapped install hook's behavior: record the application,
// run the native attachment, flush queued context callbacks in registration
// order, and intercept the application's unmount.
func (st *routerState) attach(app router.App, native func(router.App)) {
	st.markAttached(app)
	st.emit(Event{Type: EventAttached, Router: st.router})

	native(app)

	st.mu.Lock()
	pending := st.pending
	st.pending = nil
	st.mu.Unlock()

	for _, fn := range pending {
		fn(app)
	}
	if len(pending) > 0 {
		st.emit(Event{Type: EventFlushed, Router: st.router, Count: len(pending)})
	}

	st.interceptUnmount(app)
}

// interceptUnmount wraps the application's unmount hook so the plugin
// lifecycle tears down before the native unmount. Wrapped at most once per
// attachment; both the router-path attach and the application-path install
// call this, whichever comes first wins. The wrapper restores the native
// hook when it fires, so a reused application is wrapped fresh on
// re-attachment.
func (st *routerState) interceptUnmount(app router.App) {
	st.mu.Lock()
	if st.unmountWrapped {
		st.mu.Unlock()
		return
	}
	st.unmountWrapped = true
	st.mu.Unlock()

	nativeUnmount := app.UnmountHook()
	app.SetUnmountHook(func() {
		st.unmount()
		app.SetUnmountHook(nativeUnmount)
		nativeUnmount()
	})
}

// unmount stops the shared scope, then fires uninstall callbacks in
// registration order, then resets the attachment state. The scope stops
// first, so uninstall callbacks must not rely on live reactive effects.
func (st *routerState) unmount() {
	st.mu.Lock()
	scope := st.scope
	callbacks := st.uninstall
	st.uninstall = nil
	st.attached = false
	st.unmountWrapped = false
	st.app = nil
	st.mu.Unlock()

	if scope != nil {
		scope.Stop()
	}

	// Observers hear about the unmount before uninstall callbacks run, since
	// those callbacks commonly remove the observers themselves.
	st.emit(Event{Type: EventUnmounted, Router: st.router, Count: len(callbacks)})

	for _, fn := range callbacks {
		fn()
	}
}

// =============================================================================
// Introspection
// =============================================================================

// Attached reports whether r has been installed on an application.
func Attached(r *router.Router) bool {
	st := stateFor(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.attached
}

// InstalledCount returns how many plugin installs completed on r.
func InstalledCount(r *router.Router) int {
	st := stateFor(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.installed
}

// PendingCount returns how many context callbacks are queued on r.
// Always zero once the router is attached.
func PendingCount(r *router.Router) int {
	st := stateFor(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.pending)
}

// UninstallCount returns how many uninstall callbacks are registered on r.
func UninstallCount(r *router.Router) int {
	st := stateFor(r)
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.uninstall)
}
