package reactive

import (
	"reflect"
	"testing"
)

func TestEffectRunsImmediately(t *testing.T) {
	ran := false
	NewEffect(func() Cleanup {
		ran = true
		return nil
	})

	if !ran {
		t.Error("effect should run on creation")
	}
}

func TestEffectRerunsOnChange(t *testing.T) {
	sig := NewSignal("a")
	var seen []string

	NewEffect(func() Cleanup {
		seen = append(seen, sig.Get())
		return nil
	})

	sig.Set("b")
	sig.Set("c")

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("seen = %v, want %v", seen, want)
	}
}

func TestEffectSkipsUnchangedValue(t *testing.T) {
	sig := NewSignal(1)
	runs := 0

	NewEffect(func() Cleanup {
		sig.Get()
		runs++
		return nil
	})

	sig.Set(1)
	if runs != 1 {
		t.Errorf("effect re-ran for an unchanged value, runs = %d", runs)
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	sig := NewSignal(0)
	var order []string

	NewEffect(func() Cleanup {
		sig.Get()
		order = append(order, "run")
		return func() { order = append(order, "cleanup") }
	})

	sig.Set(1)

	want := []string{"run", "cleanup", "run"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestEffectDispose(t *testing.T) {
	sig := NewSignal(0)
	runs := 0
	cleaned := false

	e := NewEffect(func() Cleanup {
		sig.Get()
		runs++
		return func() { cleaned = true }
	})

	e.Dispose()
	if !e.IsDisposed() {
		t.Error("effect should report disposed")
	}
	if !cleaned {
		t.Error("dispose should run the cleanup")
	}

	sig.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect re-ran, runs = %d", runs)
	}
}

func TestEffectPanicRestoresTracking(t *testing.T) {
	func() {
		defer func() { recover() }()
		NewEffect(func() Cleanup { panic("boom") })
	}()

	if currentListener() != nil {
		t.Fatal("effect body panic should restore the previous listener")
	}

	// A later read on this goroutine must not subscribe the dead effect,
	// which would re-run (and re-panic) it here.
	sig := NewSignal(0)
	sig.Get()
	sig.Set(1)
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	sig := NewSignal(0)
	runs := 0

	NewEffect(func() Cleanup {
		sig.Peek()
		runs++
		return nil
	})

	sig.Set(1)
	if runs != 1 {
		t.Errorf("Peek created a subscription, runs = %d", runs)
	}
}

func TestSignalUpdate(t *testing.T) {
	sig := NewSignal(10)
	sig.Update(func(v int) int { return v + 5 })

	if got := sig.Peek(); got != 15 {
		t.Errorf("value = %d, want 15", got)
	}
}

func TestSignalWithEquals(t *testing.T) {
	// Treat all values with the same parity as equal.
	sig := NewSignal(2).WithEquals(func(a, b int) bool {
		return a%2 == b%2
	})

	notified := 0
	NewEffect(func() Cleanup {
		sig.Get()
		notified++
		return nil
	})

	sig.Set(4) // same parity: no notification
	if notified != 1 {
		t.Errorf("custom equality ignored, notifications = %d", notified)
	}

	sig.Set(5)
	if notified != 2 {
		t.Errorf("changed value not notified, notifications = %d", notified)
	}
}
