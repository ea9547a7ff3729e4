// Package data provides the geometry, options and layer types shared by all
// pipeline stages.
package data

import "math"

// Micrometer is the fixed-point unit used for all in-plane geometry.
// Working in integer micrometers keeps polygon offset/boolean operations
// (backed by github.com/aligator/go.clipper, which itself works in
// integers) free of floating-point drift across hundreds of layers.
type Micrometer int64

// Millimeter is the unit used at the edges of the system: job parameters,
// mesh coordinates and G-code coordinates are all expressed in millimeters.
type Millimeter float64

// ToMicrometer converts a millimeter value to the internal fixed-point unit.
func (m Millimeter) ToMicrometer() Micrometer {
	return Micrometer(math.Round(float64(m) * 1000))
}

// ToMillimeter converts back to millimeters for G-code emission.
func (m Micrometer) ToMillimeter() Millimeter {
	return Millimeter(m) / 1000
}

// ToRadians converts a degree value to radians.
func ToRadians(degree float64) float64 {
	return degree * math.Pi / 180
}

// ToDegrees converts a radian value to degrees.
func ToDegrees(radian float64) float64 {
	return radian * 180 / math.Pi
}

// Abs returns the absolute value of m.
func (m Micrometer) Abs() Micrometer {
	if m < 0 {
		return -m
	}
	return m
}
