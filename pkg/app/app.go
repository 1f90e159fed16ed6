package app

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/routerplugin/pkg/router"
)

// Installer is anything that can be registered on an application through
// Use. The plugin system's wrapped plugins satisfy it.
type Installer interface {
	Install(target any) error
}

// App is an application handle. It implements router.App, so a router can be
// installed on it with UseRouter.
type App struct {
	logger *slog.Logger

	mu       sync.Mutex
	provides map[any]any
	router   *router.Router
	mounted  bool

	// unmountHook is the unmount operation. It starts as the native unmount
	// behavior and may be replaced (wrapped) via SetUnmountHook.
	unmountHook func()
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New creates an application handle.
func New(opts ...Option) *App {
	a := &App{
		provides: make(map[any]any),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.unmountHook = a.nativeUnmount
	return a
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Provide stores an application-level value available to Inject.
func (a *App) Provide(key, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provides[key] = value
}

// Inject returns the value provided under key, or nil.
func (a *App) Inject(key any) any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.provides[key]
}

// UseRouter installs r on this application. This is the attachment event:
// the application records the router, then invokes the router's install
// hook with itself.
func (a *App) UseRouter(r *router.Router) *App {
	a.mu.Lock()
	a.router = r
	a.mu.Unlock()

	r.Install(a)
	return a
}

// Use registers an installer (typically a wrapped plugin) against this
// application. The installer decides how to install itself; errors
// propagate unchanged.
func (a *App) Use(p Installer) error {
	return p.Install(a)
}

// Router returns the router installed on this application, or nil.
// Implements router.App.
func (a *App) Router() *router.Router {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.router
}

// RunWithContext runs fn with this application as the goroutine's current
// application, restoring the previous one afterwards even if fn panics.
// Implements router.App.
func (a *App) RunWithContext(fn func()) {
	old := setCurrent(a)
	defer setCurrent(old)
	fn()
}

// Mount marks the application as mounted.
func (a *App) Mount() {
	a.mu.Lock()
	a.mounted = true
	a.mu.Unlock()

	a.logger.Debug("app mounted")
}

// IsMounted reports whether Mount has been called and Unmount has not.
func (a *App) IsMounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

// Unmount tears the application down by invoking the current unmount hook.
// Plugin layers may have wrapped the hook to run teardown work first.
func (a *App) Unmount() {
	a.mu.Lock()
	hook := a.unmountHook
	a.mu.Unlock()
	hook()
}

// UnmountHook returns the current unmount operation. Implements router.App.
func (a *App) UnmountHook() func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unmountHook
}

// SetUnmountHook replaces the unmount operation. The replacement is expected
// to invoke the previous hook. Implements router.App.
func (a *App) SetUnmountHook(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unmountHook = fn
}

// nativeUnmount is the application's own teardown behavior.
func (a *App) nativeUnmount() {
	a.mu.Lock()
	a.mounted = false
	a.mu.Unlock()

	a.logger.Debug("app unmounted")
}
