package plugin

import "github.com/vango-dev/routerplugin/pkg/router"

// Context is the capability object handed to a plugin's Setup.
// One Context is created per plugin per install and is never shared between
// plugins. The methods remain valid after Setup returns: they delegate to
// the per-router state, not to the Context itself.
type Context struct {
	// Router is the router the plugin is being installed on. Plugins register
	// navigation guards and hooks directly on it.
	Router *router.Router

	state *routerState
}

// RunWithApp schedules fn to run with the application handle, inside the
// application's context and the router's shared effect scope.
//
// If the router is already installed on an application, fn runs immediately
// and synchronously. Otherwise it is queued and flushed at attachment time,
// in registration order across all plugins.
func (c *Context) RunWithApp(fn func(app router.App)) {
	c.state.runWithApp(fn)
}

// OnUninstall registers fn to run at application unmount, after the shared
// effect scope has been stopped. Callbacks fire in registration order across
// all plugins. Registering the same function twice fires it twice.
func (c *Context) OnUninstall(fn func()) {
	c.state.onUninstall(fn)
}
