package layout

import "math"

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map projects a domain value to the range. Values outside the domain are
// extrapolated.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Invert projects a range value back to the domain.
func (s Linear) Invert(px float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return (s.D0 + s.D1) / 2
	}
	return s.D0 + (px-s.R0)/span*(s.D1-s.D0)
}

// Contains reports whether a range value lies strictly inside the range.
func (s Linear) Contains(px float64) bool {
	lo, hi := math.Min(s.R0, s.R1), math.Max(s.R0, s.R1)
	return px > lo && px < hi
}

// Ticks returns roughly count evenly spaced values inside the domain, on
// 1, 2 or 5 × 10ⁿ boundaries.
func (s Linear) Ticks(count int) []float64 {
	lo, hi := math.Min(s.D0, s.D1), math.Max(s.D0, s.D1)
	if count <= 0 || lo == hi {
		return []float64{lo}
	}

	step := tickStep(lo, hi, count)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return []float64{lo}
	}

	const eps = 1e-9
	first := math.Ceil(lo/step - eps)
	last := math.Floor(hi/step + eps)
	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		v := i * step
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	switch ratio := raw / magnitude; {
	case ratio >= math.Sqrt(50):
		return 10 * magnitude
	case ratio >= math.Sqrt(10):
		return 5 * magnitude
	case ratio >= math.Sqrt(2):
		return 2 * magnitude
	}
	return magnitude
}
