// Package routerplugin provides the public API for the router plugin
// lifecycle system.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/routerplugin"
//
// Usage:
//
//	r := routerplugin.New(router.Options{Routes: routes},
//	    analyticsPlugin,
//	    metrics.New(),
//	)
//	a := app.New()
//	a.UseRouter(r)
//	a.Mount()
package routerplugin

import (
	"github.com/vango-dev/routerplugin/pkg/plugin"
	"github.com/vango-dev/routerplugin/pkg/router"
)

// =============================================================================
// Core types (re-export from pkg/plugin)
// =============================================================================

// Plugin customizes a router instance at install time.
type Plugin = plugin.Plugin

// Func adapts a plain function to the Plugin interface.
type Func = plugin.Func

// Context is the capability object handed to a plugin's Setup.
type Context = plugin.Context

// Wrapped is a plugin installable against either a router or an application.
type Wrapped = plugin.Wrapped

// Event describes one lifecycle transition on a router.
type Event = plugin.Event

// EventType identifies a lifecycle event.
type EventType = plugin.EventType

// Lifecycle event types.
const (
	EventInstalled = plugin.EventInstalled
	EventAttached  = plugin.EventAttached
	EventFlushed   = plugin.EventFlushed
	EventUnmounted = plugin.EventUnmounted
)

// Sentinel errors.
var (
	// ErrRouterNotInstalled reports an application-path install before the
	// router was installed on the application.
	ErrRouterNotInstalled = plugin.ErrRouterNotInstalled

	// ErrInvalidTarget reports a duck-typed install against an unsupported
	// target.
	ErrInvalidTarget = plugin.ErrInvalidTarget
)

// =============================================================================
// Entry points (re-export from pkg/plugin)
// =============================================================================

// New constructs a router and installs plugins on it in list order.
func New(opts router.Options, plugins ...Plugin) *router.Router {
	return plugin.New(opts, plugins...)
}

// Wrap makes a plugin installable against either a router or an application.
// Idempotent: wrapping a wrapped plugin returns it unchanged.
func Wrap(p Plugin) *Wrapped {
	return plugin.Wrap(p)
}

// InstallAll installs plugins on an existing router in list order.
func InstallAll(r *router.Router, plugins ...Plugin) {
	plugin.InstallAll(r, plugins...)
}

// Observe registers an observer for a router's lifecycle events.
func Observe(r *router.Router, fn func(Event)) func() {
	return plugin.Observe(r, fn)
}

// Attached reports whether the router has been installed on an application.
func Attached(r *router.Router) bool {
	return plugin.Attached(r)
}

// InstalledCount returns how many plugin installs completed on the router.
func InstalledCount(r *router.Router) int {
	return plugin.InstalledCount(r)
}
