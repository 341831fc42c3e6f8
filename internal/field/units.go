package field

import (
	"fmt"
	"strings"
)

type Unit int

const (
	Meters Unit = iota
	Centimeters
)

// Factor is the number of display units per meter.
func (u Unit) Factor() float64 {
	if u == Centimeters {
		return 100
	}
	return 1
}

// Suffix is the axis/label suffix for lengths.
func (u Unit) Suffix() string {
	if u == Centimeters {
		return "cm"
	}
	return "m"
}

// DensityLabel is the display unit of charge density.
func (u Unit) DensityLabel() string {
	return "μC/" + u.Suffix()
}

func (u Unit) String() string {
	if u == Centimeters {
		return "centimeters"
	}
	return "meters"
}

// Toggle returns the other unit system.
func (u Unit) Toggle() Unit {
	if u == Centimeters {
		return Meters
	}
	return Centimeters
}

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "meter", "meters", "metre", "metres":
		return Meters, nil
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return Centimeters, nil
	}
	return Meters, invalid(FieldUnit, s, fmt.Sprintf("unknown unit system (want %s or %s)", Meters, Centimeters))
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ToMeters converts a displayed length to meters.
func ToMeters(v float64, u Unit) float64 {
	return v / u.Factor()
}

// FromMeters converts meters to the displayed length.
func FromMeters(v float64, u Unit) float64 {
	return v * u.Factor()
}

// Charge density display scale: μC/m is 1e6 per C/m, μC/cm is 1e4 per C/m.
const (
	microPerMeter      = 1e6
	microPerCentimeter = 1e4
)

func densityScale(u Unit) float64 {
	if u == Centimeters {
		return microPerCentimeter
	}
	return microPerMeter
}

// DensityToDisplay converts C/m to the displayed micro-unit.
func DensityToDisplay(cPerM float64, u Unit) float64 {
	return cPerM * densityScale(u)
}

// DensityFromDisplay converts the displayed micro-unit to C/m.
func DensityFromDisplay(v float64, u Unit) float64 {
	return v / densityScale(u)
}
