// Package reactive provides the reactive primitives the plugin system is
// built on: signals, effects, and cancellable scopes.
//
// A Scope groups every reactive computation created while it is active.
// Stopping the scope disposes all of them at once, which is how the plugin
// lifecycle guarantees that nothing a plugin created survives application
// unmount.
//
// Unlike a full rendering runtime, this package re-runs effects synchronously
// when a dependency changes. There is no render loop to defer to.
package reactive
