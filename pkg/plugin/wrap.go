package plugin

import (
	"fmt"

	"github.com/vango-dev/routerplugin/pkg/router"
)

// Wrapped is a plugin that can be installed two ways: directly against a
// router, or through an application's own registration mechanism (the app
// package's Use). It still behaves as the original plugin wherever a Plugin
// is expected.
type Wrapped struct {
	p Plugin
}

// Wrap makes p installable through either pathway. Wrapping an already
// wrapped plugin returns it unchanged, so defensive re-wrapping never stacks.
func Wrap(p Plugin) *Wrapped {
	if w, ok := p.(*Wrapped); ok {
		return w
	}
	return &Wrapped{p: p}
}

// Setup implements Plugin by delegating to the wrapped plugin.
func (w *Wrapped) Setup(ctx *Context) {
	w.p.Setup(ctx)
}

// InstallRouter installs the plugin directly on r: the install hook is
// wrapped (once) so attachment is observed, then the plugin runs.
func (w *Wrapped) InstallRouter(r *router.Router) {
	ensureInstallHook(r)
	install(r, w.p)
}

// InstallApp installs the plugin through an application the router is
// already installed on. The native attachment already ran in that case, so
// the attachment bookkeeping and unmount interception are recorded before
// the plugin runs, and context callbacks execute immediately rather than
// queueing.
//
// Returns ErrRouterNotInstalled, with nothing registered, if the application
// has no router.
func (w *Wrapped) InstallApp(a router.App) error {
	r := a.Router()
	if r == nil {
		return ErrRouterNotInstalled
	}

	// Wrap the install hook too, so an unmount-and-recreate cycle still
	// observes the next attachment.
	ensureInstallHook(r)

	st := stateFor(r)
	st.markAttached(a)
	st.interceptUnmount(a)
	install(r, w.p)
	return nil
}

// Install is the single duck-typed entry point: a *router.Router target
// takes the router path, anything implementing router.App takes the
// application path. Other targets fail with ErrInvalidTarget.
func (w *Wrapped) Install(target any) error {
	switch t := target.(type) {
	case *router.Router:
		w.InstallRouter(t)
		return nil
	case router.App:
		return w.InstallApp(t)
	default:
		return fmt.Errorf("%w (got %T)", ErrInvalidTarget, target)
	}
}
