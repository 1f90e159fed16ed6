package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/routerplugin/pkg/router"
)

func TestProvideInject(t *testing.T) {
	type key struct{}

	a := New()
	a.Provide(key{}, "value")

	if got := a.Inject(key{}); got != "value" {
		t.Errorf("Inject = %v, want %q", got, "value")
	}
	if got := a.Inject("missing"); got != nil {
		t.Errorf("Inject(missing) = %v, want nil", got)
	}
}

func TestRunWithContext(t *testing.T) {
	a := New()

	if Current() != nil {
		t.Fatal("no application should be current initially")
	}

	var inside *App
	a.RunWithContext(func() {
		inside = Current()
	})

	if inside != a {
		t.Error("Current inside RunWithContext should be the app")
	}
	if Current() != nil {
		t.Error("RunWithContext should restore the previous current app")
	}
}

func TestRunWithContextNested(t *testing.T) {
	outer := New()
	inner := New()

	outer.RunWithContext(func() {
		inner.RunWithContext(func() {
			if Current() != inner {
				t.Error("inner app should be current")
			}
		})
		if Current() != outer {
			t.Error("outer app should be restored")
		}
	})
}

func TestMountUnmount(t *testing.T) {
	a := New()

	a.Mount()
	if !a.IsMounted() {
		t.Fatal("app should be mounted")
	}

	a.Unmount()
	if a.IsMounted() {
		t.Error("app should be unmounted")
	}
}

func TestUnmountHookWrapping(t *testing.T) {
	a := New()
	a.Mount()

	var order []string
	native := a.UnmountHook()
	a.SetUnmountHook(func() {
		order = append(order, "teardown")
		native()
	})

	a.Unmount()

	want := []string{"teardown"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if a.IsMounted() {
		t.Error("wrapped hook should still run the native unmount")
	}
}

func TestUseRouterAttaches(t *testing.T) {
	r := router.New(router.Options{
		Routes: []router.RouteRecord{{Path: "/", Name: "home"}},
	})

	a := New()
	a.UseRouter(r)

	if a.Router() != r {
		t.Error("app should record the router")
	}
	if r.App() != router.App(a) {
		t.Error("router should record the app")
	}
	if route := r.CurrentRoute(); route == nil || route.Name != "home" {
		t.Errorf("initial route = %+v, want home", route)
	}
}

// failingInstaller always fails; Use must propagate the error unchanged.
type failingInstaller struct{ err error }

func (f failingInstaller) Install(target any) error { return f.err }

func TestUsePropagatesError(t *testing.T) {
	sentinel := errors.New("install failed")

	if err := New().Use(failingInstaller{err: sentinel}); !errors.Is(err, sentinel) {
		t.Errorf("Use error = %v, want sentinel", err)
	}
}
