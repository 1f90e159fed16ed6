// Package app provides the application handle that routers and plugins
// attach to: app-level provided values, mount/unmount lifecycle with a
// replaceable unmount hook, and a goroutine-local "current application"
// established by RunWithContext so context-dependent code can resolve
// injections.
package app
