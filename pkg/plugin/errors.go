package plugin

import "errors"

// ErrRouterNotInstalled is returned when a plugin is installed through an
// application that has no router yet. The router must be installed on the
// application (App.UseRouter) before router plugins can reach it that way.
//
// Callers should treat this as a startup misconfiguration: the deferred
// plugin would otherwise silently never run.
var ErrRouterNotInstalled = errors.New(
	"routerplugin: application has no router installed; call UseRouter before installing router plugins through the application")

// ErrInvalidTarget is returned by the duck-typed install entry point when the
// target is neither a *router.Router nor a router.App.
var ErrInvalidTarget = errors.New(
	"routerplugin: install target must be a *router.Router or a router.App")
