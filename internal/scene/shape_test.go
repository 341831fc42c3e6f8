package scene

import (
	"math"
	"testing"
	"time"
)

func TestTransitionProgress(t *testing.T) {
	tr := &Transition{Delay: 100 * time.Millisecond, Duration: 200 * time.Millisecond}

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{100 * time.Millisecond, 0},
		{200 * time.Millisecond, 0.5},
		{300 * time.Millisecond, 1},
		{time.Second, 1},
	}
	for _, tt := range tests {
		if got := tr.Progress(tt.elapsed); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Progress(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}

	var none *Transition
	if none.Progress(0) != 1 || none.End() != 0 {
		t.Error("nil transition should be settled")
	}
}

func TestShapeAtDoesNotMutate(t *testing.T) {
	s := Shape{
		Attrs:      Attrs{"r": 0, "cx": 10},
		Transition: &Transition{Duration: time.Second, To: Attrs{"r": 6}},
	}
	final := s.Final()
	if final["r"] != 6 || final["cx"] != 10 {
		t.Errorf("Final() = %v", final)
	}
	if s.Attrs["r"] != 0 {
		t.Error("At() must not modify the initial attributes")
	}
}
