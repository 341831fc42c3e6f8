package schedule

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCollapsesTriggers(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(clock, DefaultDelay)

	var runs, last int
	for i := 1; i <= 10; i++ {
		i := i
		d.Trigger(func() { runs++; last = i })
		clock.Advance(20 * time.Millisecond)
	}

	if runs != 0 {
		t.Fatalf("task ran %d times inside the window", runs)
	}
	if clock.Pending() != 1 {
		t.Errorf("expected 1 armed timer, got %d", clock.Pending())
	}

	clock.Advance(DefaultDelay)
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}
	if last != 10 {
		t.Errorf("latest trigger should win, ran #%d", last)
	}
	if d.Pending() {
		t.Error("nothing should be pending after the run")
	}
}

func TestDebouncerRestartsWindow(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(clock, 300*time.Millisecond)

	runs := 0
	d.Trigger(func() { runs++ })
	clock.Advance(299 * time.Millisecond)
	d.Trigger(func() { runs++ })
	clock.Advance(299 * time.Millisecond)
	if runs != 0 {
		t.Fatalf("re-armed timer fired early")
	}
	clock.Advance(time.Millisecond)
	if runs != 1 {
		t.Errorf("expected 1 run after settling, got %d", runs)
	}
}

func TestDebouncerSeparateWindows(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(clock, 300*time.Millisecond)

	runs := 0
	d.Trigger(func() { runs++ })
	clock.Advance(time.Second)
	d.Trigger(func() { runs++ })
	clock.Advance(time.Second)

	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestDebouncerFlushAndCancel(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(clock, 300*time.Millisecond)

	runs := 0
	if d.Flush() {
		t.Error("Flush with nothing pending should report false")
	}

	d.Trigger(func() { runs++ })
	if !d.Flush() || runs != 1 {
		t.Fatalf("Flush should run the pending task, runs=%d", runs)
	}
	clock.Advance(time.Second)
	if runs != 1 {
		t.Errorf("flushed task ran again, runs=%d", runs)
	}

	d.Trigger(func() { runs++ })
	d.Cancel()
	clock.Advance(time.Second)
	if runs != 1 {
		t.Errorf("cancelled task ran, runs=%d", runs)
	}
}

func TestDebouncerRealClock(t *testing.T) {
	d := NewDebouncer(nil, 20*time.Millisecond)

	var runs atomic.Int32
	done := make(chan struct{}, 1)
	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			runs.Add(1)
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced task never ran")
	}
	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("expected 1 run, got %d", got)
	}
}

func TestManualClockOrder(t *testing.T) {
	clock := NewManualClock()
	var order []int
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	stopped := clock.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })

	if !stopped.Stop() {
		t.Fatal("Stop on an armed timer should report true")
	}
	clock.Advance(time.Second)

	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("run order = %v, want [1 3]", order)
	}
	if clock.Now() != time.Second {
		t.Errorf("Now() = %v", clock.Now())
	}
	if stopped.Stop() {
		t.Error("second Stop should report false")
	}
}
