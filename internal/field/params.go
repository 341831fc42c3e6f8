package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Editable parameter names accepted by Apply.
const (
	FieldChargeDensity = "chargeDensity"
	FieldLength        = "length"
	FieldDistance      = "distance"
	FieldUnit          = "unitSystem"
)

// MinDisplayed is the clamp floor for length and distance, in the displayed unit.
const MinDisplayed = 0.1

const (
	DefaultChargeDensity = 1e-6
	DefaultLength        = 2.0
	DefaultDistance      = 1.0
)

// Parameters holds the rod and measurement geometry in SI units.
type Parameters struct {
	ChargeDensity float64 // C/m
	Length        float64 // m
	Distance      float64 // m
	Unit          Unit
}

func DefaultParameters() Parameters {
	return Parameters{
		ChargeDensity: DefaultChargeDensity,
		Length:        DefaultLength,
		Distance:      DefaultDistance,
		Unit:          Meters,
	}
}

// Fields lists the numeric fields in display order.
func Fields() []string {
	return []string{FieldChargeDensity, FieldLength, FieldDistance}
}

// Validate reports whether the geometry can be used by Compute.
func (p Parameters) Validate() error {
	if !(p.Length > 0) || math.IsInf(p.Length, 0) {
		return invalid(FieldLength, "", "must be greater than zero")
	}
	if !(p.Distance > 0) || math.IsInf(p.Distance, 0) {
		return invalid(FieldDistance, "", "must be greater than zero")
	}
	if math.IsNaN(p.ChargeDensity) || math.IsInf(p.ChargeDensity, 0) {
		return invalid(FieldChargeDensity, "", "must be a finite number")
	}
	return nil
}

// WithUnit switches the display unit. Lengths are held in meters, so the
// physical geometry is unchanged and only displayed values move.
func (p Parameters) WithUnit(u Unit) Parameters {
	p.Unit = u
	return p
}

// Display returns a field's value in the displayed unit.
func (p Parameters) Display(name string) (float64, error) {
	switch name {
	case FieldChargeDensity:
		return DensityToDisplay(p.ChargeDensity, p.Unit), nil
	case FieldLength:
		return FromMeters(p.Length, p.Unit), nil
	case FieldDistance:
		return FromMeters(p.Distance, p.Unit), nil
	}
	return 0, invalid(name, "", "not a numeric field")
}

// Apply parses a raw value for the named field, as typed by the user in the
// displayed unit, and returns the updated parameters. Length and distance
// are clamped to MinDisplayed before conversion to meters.
func (p Parameters) Apply(name, raw string) (Parameters, error) {
	if name == FieldUnit {
		u, err := ParseUnit(raw)
		if err != nil {
			return p, err
		}
		return p.WithUnit(u), nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return p, invalid(name, raw, "not a number")
	}

	switch name {
	case FieldChargeDensity:
		p.ChargeDensity = DensityFromDisplay(v, p.Unit)
	case FieldLength:
		p.Length = ToMeters(math.Max(MinDisplayed, v), p.Unit)
	case FieldDistance:
		p.Distance = ToMeters(math.Max(MinDisplayed, v), p.Unit)
	default:
		return p, invalid(name, raw, "unknown field")
	}
	return p, nil
}

// Set assigns a displayed value directly, with the same clamping as Apply.
func (p Parameters) Set(name string, v float64) (Parameters, error) {
	return p.Apply(name, strconv.FormatFloat(v, 'g', -1, 64))
}

func (p Parameters) String() string {
	return fmt.Sprintf("λ=%g %s L=%g%s a=%g%s",
		DensityToDisplay(p.ChargeDensity, p.Unit), p.Unit.DensityLabel(),
		FromMeters(p.Length, p.Unit), p.Unit.Suffix(),
		FromMeters(p.Distance, p.Unit), p.Unit.Suffix())
}
