package field

import "math"

// CoulombK is the Coulomb constant in N·m²/C².
const CoulombK = 8.98755e9

// Result is the field magnitude at the measurement point.
type Result struct {
	Magnitude float64 // N/C
}

func (r Result) KiloNewtons() float64 {
	return r.Magnitude / 1000
}

// Compute evaluates the field on the perpendicular bisector. On invalid
// parameters it returns a zero Result and an ErrInvalidParameter error.
func Compute(p Parameters) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	return Result{Magnitude: magnitude(p.ChargeDensity, p.Length, p.Distance)}, nil
}

func magnitude(lambda, length, a float64) float64 {
	return (CoulombK * lambda / a) * (length / math.Sqrt(a*a+length*length/4))
}

// InfiniteRodLimit is the field of an infinite line charge, 2kλ/a. The finite
// rod approaches it when L ≫ a.
func InfiniteRodLimit(p Parameters) float64 {
	return 2 * CoulombK * p.ChargeDensity / p.Distance
}

// PointChargeLimit treats the rod as a point charge λL, valid when a ≫ L.
func PointChargeLimit(p Parameters) float64 {
	return CoulombK * p.ChargeDensity * p.Length / (p.Distance * p.Distance)
}

// Sample is one point of a distance profile.
type Sample struct {
	Distance  float64 // m
	Magnitude float64 // N/C
}

// Profile samples the magnitude at n distances evenly spread over
// [from, to] meters, keeping the rest of p fixed.
func Profile(p Parameters, from, to float64, n int) ([]Sample, error) {
	if n < 2 {
		return nil, invalid("samples", "", "need at least 2 samples")
	}
	if !(from > 0) || !(to > from) {
		return nil, invalid(FieldDistance, "", "profile range must satisfy 0 < from < to")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	samples := make([]Sample, n)
	step := (to - from) / float64(n-1)
	for i := range samples {
		a := from + float64(i)*step
		samples[i] = Sample{Distance: a, Magnitude: magnitude(p.ChargeDensity, p.Length, a)}
	}
	return samples, nil
}

// Magnitudes extracts the magnitude column of a profile.
func Magnitudes(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Magnitude
	}
	return out
}
