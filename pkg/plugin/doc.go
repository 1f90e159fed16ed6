// Package plugin coordinates the lifecycle of router plugins: independently
// authored extensions that register navigation hooks and application-context
// side effects against a router.
//
// The package guarantees three things regardless of how many plugins are
// installed or in what order:
//
//   - Deterministic ordering. Plugins run in installation order, queued
//     context callbacks flush in registration order, and uninstall callbacks
//     fire in registration order.
//   - Deferred context execution. Work that needs the application's context
//     (RunWithApp) is queued until the router is installed on an application,
//     then flushed; after that point it runs immediately.
//   - Reliable teardown. Every reactive computation a plugin creates lives in
//     one shared scope per router. Application unmount stops the scope first,
//     then fires uninstall callbacks, then runs the application's own
//     unmount.
//
// Nothing here recovers from plugin failures: a panic in a plugin body or a
// queued callback propagates to whoever triggered it. This is a startup-time
// configuration layer, and misconfiguration is meant to fail loudly.
package plugin
