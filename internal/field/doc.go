// Package field computes the electrostatic field of a finite, uniformly
// charged rod.
//
// The field is evaluated on the rod's perpendicular bisector at distance a
// from its midpoint:
//
//	E = (k·λ / a) · (L / sqrt(a² + L²/4))
//
// Quantities are always held in SI units inside [Parameters]. The [Unit]
// only changes how lengths and charge density are displayed and parsed:
//
//   - [Meters]: lengths in m, charge density in μC/m
//   - [Centimeters]: lengths in cm, charge density in μC/cm
//
// # Example
//
//	p := field.DefaultParameters()
//	p, _ = p.Apply(field.FieldLength, "4")
//	res, err := field.Compute(p)
//	if errors.Is(err, field.ErrInvalidParameter) {
//	    // show err.Error()
//	}
package field
