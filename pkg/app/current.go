package app

import (
	"runtime"
	"sync"
)

// currentApps stores the per-goroutine current application, established by
// RunWithContext.
var currentApps sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack.
// The stack header has the form "goroutine <id> ...".
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// Current returns the application active on this goroutine, or nil outside
// RunWithContext.
func Current() *App {
	if a, ok := currentApps.Load(goroutineID()); ok {
		return a.(*App)
	}
	return nil
}

// setCurrent installs a as the goroutine's current application and returns
// the previous one.
func setCurrent(a *App) *App {
	gid := goroutineID()

	var old *App
	if prev, ok := currentApps.Load(gid); ok {
		old = prev.(*App)
	}

	if a == nil {
		currentApps.Delete(gid)
	} else {
		currentApps.Store(gid, a)
	}
	return old
}
