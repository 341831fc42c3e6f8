package layout

import (
	"math"
	"testing"
)

func TestLinearMapInvert(t *testing.T) {
	s := NewLinear(-0.5, 3, 450, 20)
	for _, v := range []float64{-0.5, 0, 1, 2.75, 3} {
		if got := s.Invert(s.Map(v)); math.Abs(got-v) > 1e-12 {
			t.Errorf("Invert(Map(%v)) = %v", v, got)
		}
	}
	if s.Map(-0.5) != 450 || s.Map(3) != 20 {
		t.Errorf("endpoints map to %v, %v", s.Map(-0.5), s.Map(3))
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name  string
		scale Linear
		count int
		want  []float64
	}{
		{"unit", NewLinear(0, 1, 0, 100), 10, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{"symmetric", NewLinear(-1.2, 1.2, 0, 100), 10, []float64{-1.2, -1, -0.8, -0.6, -0.4, -0.2, 0, 0.2, 0.4, 0.6, 0.8, 1, 1.2}},
		{"inverted range", NewLinear(-0.5, 3, 450, 20), 10, []float64{-0.5, 0, 0.5, 1, 1.5, 2, 2.5, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.scale.Ticks(tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("tick %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
