package plugin

import "github.com/vango-dev/routerplugin/pkg/router"

// EventType identifies a lifecycle event.
type EventType string

const (
	// EventInstalled fires after a plugin's Setup completes.
	EventInstalled EventType = "installed"

	// EventAttached fires when the router is installed on an application.
	EventAttached EventType = "attached"

	// EventFlushed fires after queued context callbacks drain at attachment.
	EventFlushed EventType = "flushed"

	// EventUnmounted fires at unmount, after the shared scope stops and
	// before uninstall callbacks run.
	EventUnmounted EventType = "unmounted"
)

// Event describes one lifecycle transition on a router.
type Event struct {
	Type   EventType
	Router *router.Router

	// Count carries the number of flushed callbacks for EventFlushed and the
	// number of uninstall callbacks fired for EventUnmounted.
	Count int
}

type observerEntry struct {
	id uint64
	fn func(Event)
}

// Observe registers fn to receive lifecycle events for r.
// Observers run synchronously at the point the event occurs and are not
// shielded from panics, like everything else in this package. The returned
// function removes the observer.
func Observe(r *router.Router, fn func(Event)) func() {
	st := stateFor(r)

	st.mu.Lock()
	st.observerID++
	id := st.observerID
	st.observers = append(st.observers, observerEntry{id: id, fn: fn})
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		for i, e := range st.observers {
			if e.id == id {
				st.observers = append(st.observers[:i], st.observers[i+1:]...)
				return
			}
		}
	}
}

// emit delivers ev to every observer. Copy-before-notify so the state lock
// is never held while observers run.
func (st *routerState) emit(ev Event) {
	st.mu.Lock()
	observers := make([]observerEntry, len(st.observers))
	copy(observers, st.observers)
	st.mu.Unlock()

	for _, o := range observers {
		o.fn(ev)
	}
}
