package router

import (
	"errors"
	"reflect"
	"testing"
)

func testRouter() *Router {
	return New(Options{
		Routes: []RouteRecord{
			{Path: "/", Name: "home"},
			{Path: "/users/:id", Name: "user"},
			{Path: "/users/:id/posts/:post", Name: "post"},
			{Path: "/docs/*rest", Name: "docs"},
		},
	})
}

func TestResolve(t *testing.T) {
	r := testRouter()

	tests := []struct {
		path    string
		name    string
		matched bool
		params  map[string]string
	}{
		{"/", "home", true, map[string]string{}},
		{"/users/42", "user", true, map[string]string{"id": "42"}},
		{"/users/42/posts/7", "post", true, map[string]string{"id": "42", "post": "7"}},
		{"/docs/guide/intro", "docs", true, map[string]string{"rest": "guide/intro"}},
		{"/docs", "docs", true, map[string]string{"rest": ""}},
		{"/missing", "", false, map[string]string{}},
		{"/users", "", false, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route := r.Resolve(tt.path)
			if route.Matched != tt.matched {
				t.Fatalf("Matched = %v, want %v", route.Matched, tt.matched)
			}
			if route.Name != tt.name {
				t.Errorf("Name = %q, want %q", route.Name, tt.name)
			}
			if !reflect.DeepEqual(route.Params, tt.params) {
				t.Errorf("Params = %v, want %v", route.Params, tt.params)
			}
		})
	}
}

func TestPushUpdatesCurrentRoute(t *testing.T) {
	r := testRouter()

	if r.CurrentRoute() != nil {
		t.Fatal("current route should be nil before any navigation")
	}

	if err := r.Push("/users/9"); err != nil {
		t.Fatal(err)
	}

	route := r.CurrentRoute()
	if route == nil || route.Name != "user" || route.Params["id"] != "9" {
		t.Errorf("current route = %+v", route)
	}
}

func TestGuardsRunInOrderAndAbort(t *testing.T) {
	r := testRouter()
	var order []string

	r.BeforeEach(func(to, from *Route) error {
		order = append(order, "first")
		return nil
	})

	sentinel := errors.New("denied")
	r.BeforeEach(func(to, from *Route) error {
		order = append(order, "second")
		return sentinel
	})

	r.BeforeEach(func(to, from *Route) error {
		order = append(order, "third")
		return nil
	})

	err := r.Push("/users/1")
	if !errors.Is(err, sentinel) {
		t.Fatalf("Push error = %v, want wrapped sentinel", err)
	}

	want := []string{"first", "second"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("guard order = %v, want %v", order, want)
	}
	if r.CurrentRoute() != nil {
		t.Error("aborted navigation must not commit")
	}
}

func TestAfterEachRunsOnCommit(t *testing.T) {
	r := testRouter()
	var seen []string

	r.AfterEach(func(to, from *Route) {
		seen = append(seen, to.Name)
	})

	if err := r.Push("/"); err != nil {
		t.Fatal(err)
	}
	if err := r.Push("/users/2"); err != nil {
		t.Fatal(err)
	}

	want := []string{"home", "user"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("after hooks saw %v, want %v", seen, want)
	}
}

func TestGuardRemoval(t *testing.T) {
	r := testRouter()
	calls := 0

	remove := r.BeforeEach(func(to, from *Route) error {
		calls++
		return nil
	})

	if err := r.Push("/"); err != nil {
		t.Fatal(err)
	}
	remove()
	if err := r.Push("/users/1"); err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Errorf("removed guard ran %d times, want 1", calls)
	}
}

// fakeApp is a minimal router.App for install tests.
type fakeApp struct {
	router  *Router
	unmount func()
	context int
}

func newFakeApp() *fakeApp {
	a := &fakeApp{}
	a.unmount = func() {}
	return a
}

func (a *fakeApp) Router() *Router          { return a.router }
func (a *fakeApp) RunWithContext(fn func()) { a.context++; fn() }
func (a *fakeApp) UnmountHook() func()      { return a.unmount }
func (a *fakeApp) SetUnmountHook(fn func()) { a.unmount = fn }

func TestInstallResolvesInitialRoute(t *testing.T) {
	r := testRouter()
	a := newFakeApp()
	a.router = r

	r.Install(a)

	if r.App() != App(a) {
		t.Error("router should record the application")
	}
	route := r.CurrentRoute()
	if route == nil || route.Name != "home" {
		t.Errorf("initial route = %+v, want home", route)
	}
}

func TestSetInstallHook(t *testing.T) {
	r := testRouter()

	var order []string
	native := r.InstallHook()
	r.SetInstallHook(func(a App) {
		order = append(order, "wrapper")
		native(a)
		order = append(order, "after")
	})

	r.Install(newFakeApp())

	want := []string{"wrapper", "after"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if r.CurrentRoute() == nil {
		t.Error("wrapped hook should still run the native install")
	}
}
