package reactive

import (
	"runtime"
	"sync"
)

// Listener is anything that can be notified when a signal it read changes.
type Listener interface {
	// ID returns a unique identifier, used to deduplicate subscriptions.
	ID() uint64

	// MarkDirty notifies the listener that a dependency changed.
	MarkDirty()
}

// trackingContext holds the reactive state for one goroutine.
// Each goroutine gets its own so concurrent callers don't observe each
// other's tracking state.
type trackingContext struct {
	// currentScope owns newly created effects and receives cleanups.
	currentScope *Scope

	// currentListener is subscribed to every signal read while it is set.
	// nil means reads don't create subscriptions.
	currentListener Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

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

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *trackingContext {
	gid := goroutineID()

	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}

	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

// currentListener returns the active listener, or nil when no tracking is on.
func currentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener installs l as the active listener and returns the
// previous one so the caller can restore it.
func setCurrentListener(l Listener) Listener {
	tc := getTrackingContext()
	old := tc.currentListener
	tc.currentListener = l
	return old
}

// CurrentScope returns the scope that owns reactive primitives created on
// this goroutine right now, or nil if none is active.
func CurrentScope() *Scope {
	return getTrackingContext().currentScope
}

// setCurrentScope installs s as the active scope and returns the previous one.
func setCurrentScope(s *Scope) *Scope {
	tc := getTrackingContext()
	old := tc.currentScope
	tc.currentScope = s
	return old
}
