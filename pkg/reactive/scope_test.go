package reactive

import (
	"reflect"
	"testing"
)

func TestScopeBasic(t *testing.T) {
	s := NewScope(nil)

	if s.ID() == 0 {
		t.Error("scope should have non-zero ID")
	}
	if s.Parent() != nil {
		t.Error("root scope should have nil parent")
	}
	if s.IsStopped() {
		t.Error("new scope should not be stopped")
	}
}

func TestScopeStopIdempotent(t *testing.T) {
	s := NewScope(nil)

	cleanups := 0
	s.OnCleanup(func() { cleanups++ })

	s.Stop()
	s.Stop()

	if !s.IsStopped() {
		t.Error("scope should be stopped")
	}
	if cleanups != 1 {
		t.Errorf("cleanup ran %d times, want 1", cleanups)
	}
}

func TestScopeStopOrder(t *testing.T) {
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	root := NewScope(nil)
	child1 := NewScope(root)
	child2 := NewScope(root)

	root.OnCleanup(record("root"))
	child1.OnCleanup(record("child1"))
	child2.OnCleanup(record("child2"))

	root.Stop()

	if !child1.IsStopped() || !child2.IsStopped() {
		t.Fatal("children should stop with the root")
	}

	// Children in reverse creation order, then the root's own cleanups.
	want := []string{"child2", "child1", "root"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("stop order = %v, want %v", order, want)
	}
}

func TestScopeCleanupReverseOrder(t *testing.T) {
	var order []string

	s := NewScope(nil)
	s.OnCleanup(func() { order = append(order, "first") })
	s.OnCleanup(func() { order = append(order, "second") })
	s.Stop()

	want := []string{"second", "first"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("cleanup order = %v, want %v", order, want)
	}
}

func TestScopeCleanupAfterStopRunsImmediately(t *testing.T) {
	s := NewScope(nil)
	s.Stop()

	ran := false
	s.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after stop should run immediately")
	}
}

func TestScopeRunCapturesEffects(t *testing.T) {
	s := NewScope(nil)

	sig := NewSignal(0)
	runs := 0

	s.Run(func() {
		NewEffect(func() Cleanup {
			sig.Get()
			runs++
			return nil
		})
	})

	if CurrentScope() != nil {
		t.Error("Run should restore the previous scope")
	}

	sig.Set(1)
	if runs != 2 {
		t.Fatalf("effect runs = %d, want 2", runs)
	}

	s.Stop()
	sig.Set(2)
	if runs != 2 {
		t.Errorf("effect ran after scope stop, runs = %d", runs)
	}
}

func TestScopeRunRestoresOnPanic(t *testing.T) {
	s := NewScope(nil)

	func() {
		defer func() { recover() }()
		s.Run(func() { panic("boom") })
	}()

	if CurrentScope() != nil {
		t.Error("Run should restore the previous scope after a panic")
	}
}
