package router

import (
	"fmt"
	"sync"

	"github.com/vango-dev/routerplugin/pkg/reactive"
)

// App is the application handle the router attaches to.
// It is defined here, not in the app package, so coordination layers built on
// the router (the plugin system in particular) never depend on a concrete
// application type.
type App interface {
	// Router returns the router attached to this application, or nil before
	// any router has been installed.
	Router() *Router

	// RunWithContext runs fn with the application's context active, so that
	// context lookups made inside fn resolve against this application.
	RunWithContext(fn func())

	// UnmountHook returns the application's current unmount operation.
	UnmountHook() func()

	// SetUnmountHook replaces the application's unmount operation.
	// Callers wrapping the hook are expected to invoke the previous one.
	SetUnmountHook(fn func())
}

// Guard runs before a navigation commits. Returning a non-nil error aborts
// the navigation and propagates to the Push caller.
type Guard func(to, from *Route) error

// Hook runs after a navigation has committed.
type Hook func(to, from *Route)

// Router manages route records, the reactive current route, and navigation
// guards. It attaches to an application through its install hook.
type Router struct {
	opts Options

	mu      sync.Mutex
	records []RouteRecord
	before  []guardEntry
	after   []hookEntry
	nextReg uint64

	// installHook is the attachment operation. It starts as the native
	// install behavior and may be replaced (wrapped) via SetInstallHook.
	installHook func(App)

	// app is the application this router is installed on, nil before install.
	app App

	// current is the reactive current route.
	current *reactive.Signal[*Route]
}

type guardEntry struct {
	id uint64
	fn Guard
}

type hookEntry struct {
	id uint64
	fn Hook
}

// New creates a router from the given options.
func New(opts Options) *Router {
	if opts.InitialPath == "" {
		opts.InitialPath = "/"
	}

	r := &Router{
		opts:    opts,
		records: append([]RouteRecord(nil), opts.Routes...),
		current: reactive.NewSignal[*Route](nil),
	}
	r.installHook = r.nativeInstall
	return r
}

// Options returns the options the router was constructed with.
func (r *Router) Options() Options {
	return r.opts
}

// AddRoute registers an additional route record.
func (r *Router) AddRoute(record RouteRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

// CurrentRoute returns the current route, nil before the first navigation.
// Reading it inside an effect subscribes the effect to navigation changes.
func (r *Router) CurrentRoute() *Route {
	return r.current.Get()
}

// BeforeEach registers a guard to run before every navigation.
// The returned function removes the guard.
func (r *Router) BeforeEach(g Guard) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextReg++
	id := r.nextReg
	r.before = append(r.before, guardEntry{id: id, fn: g})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.before {
			if e.id == id {
				r.before = append(r.before[:i], r.before[i+1:]...)
				return
			}
		}
	}
}

// AfterEach registers a hook to run after every committed navigation.
// The returned function removes the hook.
func (r *Router) AfterEach(h Hook) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextReg++
	id := r.nextReg
	r.after = append(r.after, hookEntry{id: id, fn: h})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.after {
			if e.id == id {
				r.after = append(r.after[:i], r.after[i+1:]...)
				return
			}
		}
	}
}

// Resolve matches a path against the route records without navigating.
func (r *Router) Resolve(path string) *Route {
	r.mu.Lock()
	records := append([]RouteRecord(nil), r.records...)
	r.mu.Unlock()

	for _, record := range records {
		if params, ok := matchRecord(record, path); ok {
			return &Route{
				Path:    path,
				Name:    record.Name,
				Params:  params,
				Matched: true,
			}
		}
	}

	return &Route{Path: path, Params: map[string]string{}}
}

// Push navigates to path. Before-guards run first, in registration order;
// the first guard error aborts the navigation and is returned wrapped.
// On commit the current route updates, then after-hooks run in order.
func (r *Router) Push(path string) error {
	to := r.Resolve(path)
	from := r.current.Peek()

	r.mu.Lock()
	before := make([]guardEntry, len(r.before))
	copy(before, r.before)
	r.mu.Unlock()

	for _, e := range before {
		if err := e.fn(to, from); err != nil {
			return fmt.Errorf("router: navigation to %q aborted: %w", path, err)
		}
	}

	r.current.Set(to)

	r.mu.Lock()
	after := make([]hookEntry, len(r.after))
	copy(after, r.after)
	r.mu.Unlock()

	for _, e := range after {
		e.fn(to, from)
	}
	return nil
}

// Install attaches the router to an application by invoking the current
// install hook. Applications call this once during setup; plugin layers may
// have wrapped the hook to observe the attachment.
func (r *Router) Install(app App) {
	r.mu.Lock()
	hook := r.installHook
	r.mu.Unlock()
	hook(app)
}

// InstallHook returns the current attachment operation.
func (r *Router) InstallHook() func(App) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installHook
}

// SetInstallHook replaces the attachment operation.
// The replacement is expected to invoke the previous hook to preserve the
// native attach behavior.
func (r *Router) SetInstallHook(fn func(App)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.installHook = fn
}

// App returns the application this router is installed on, nil before
// installation.
func (r *Router) App() App {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.app
}

// nativeInstall is the router's own attachment behavior: remember the
// application and resolve the initial route.
func (r *Router) nativeInstall(app App) {
	r.mu.Lock()
	r.app = app
	r.mu.Unlock()

	r.current.Set(r.Resolve(r.opts.InitialPath))
}
