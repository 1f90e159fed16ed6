package plugin

import "github.com/vango-dev/routerplugin/pkg/router"

// New constructs a router and installs plugins on it in list order.
// Each plugin's Setup runs to completion before the next starts, and before
// New returns. Context callbacks registered through RunWithApp stay queued
// until the router is installed on an application.
func New(opts router.Options, plugins ...Plugin) *router.Router {
	r := router.New(opts)
	for _, p := range plugins {
		ensureInstallHook(r)
		install(r, p)
	}
	return r
}

// InstallAll installs plugins on an existing router in list order.
// Equivalent to wrapping each plugin and installing it against the router.
func InstallAll(r *router.Router, plugins ...Plugin) {
	for _, p := range plugins {
		Wrap(p).InstallRouter(r)
	}
}

// install runs one plugin against a fresh Context, inside the router's
// shared effect scope. Panics from the plugin body propagate to the caller;
// there is no containment here.
func install(r *router.Router, p Plugin) {
	st := stateFor(r)
	ctx := &Context{Router: r, state: st}

	st.ensureScope().Run(func() {
		p.Setup(ctx)
	})

	st.mu.Lock()
	st.installed++
	st.mu.Unlock()

	st.emit(Event{Type: EventInstalled, Router: r})
}

// ensureInstallHook wraps the router's install hook exactly once so that
// attachment runs the plugin lifecycle sequence. Calling it again after the
// hook is wrapped is a no-op; there is no un-wrap.
func ensureInstallHook(r *router.Router) {
	st := stateFor(r)

	st.mu.Lock()
	if st.installWrapped {
		st.mu.Unlock()
		return
	}
	st.installWrapped = true
	st.mu.Unlock()

	native := r.InstallHook()
	r.SetInstallHook(func(app router.App) {
		st.attach(app, native)
	})
}
