package data

import "math"

// MicroVec3 is a point or vector in three dimensions, in micrometers.
// It is used for mesh-space quantities (model bounds, face points);
// in-plane geometry uses the two-dimensional MicroPoint instead.
type MicroVec3 struct {
	x, y, z Micrometer
}

// NewMicroVec3 creates a MicroVec3 from its components.
func NewMicroVec3(x, y, z Micrometer) MicroVec3 {
	return MicroVec3{x: x, y: y, z: z}
}

func (v MicroVec3) X() Micrometer { return v.x }
func (v MicroVec3) Y() Micrometer { return v.y }
func (v MicroVec3) Z() Micrometer { return v.z }

func (v *MicroVec3) SetX(x Micrometer) { v.x = x }
func (v *MicroVec3) SetY(y Micrometer) { v.y = y }
func (v *MicroVec3) SetZ(z Micrometer) { v.z = z }

func (v MicroVec3) Add(o MicroVec3) MicroVec3 {
	return MicroVec3{v.x + o.x, v.y + o.y, v.z + o.z}
}

func (v MicroVec3) Sub(o MicroVec3) MicroVec3 {
	return MicroVec3{v.x - o.x, v.y - o.y, v.z - o.z}
}

// To2D drops the z component, used when projecting mesh points onto a layer.
func (v MicroVec3) To2D() MicroPoint {
	return NewMicroPoint(v.x, v.y)
}

// MicroPoint is a point in the XY plane, in micrometers. It is the unit of
// currency for every polygon/path operation in the core.
type MicroPoint struct {
	x, y Micrometer
}

// NewMicroPoint creates a MicroPoint from its components.
func NewMicroPoint(x, y Micrometer) MicroPoint {
	return MicroPoint{x: x, y: y}
}

func (p MicroPoint) X() Micrometer { return p.x }
func (p MicroPoint) Y() Micrometer { return p.y }

func (p *MicroPoint) SetX(x Micrometer) { p.x = x }
func (p *MicroPoint) SetY(y Micrometer) { p.y = y }

func (p MicroPoint) Add(o MicroPoint) MicroPoint {
	return MicroPoint{p.x + o.x, p.y + o.y}
}

func (p MicroPoint) Sub(o MicroPoint) MicroPoint {
	return MicroPoint{p.x - o.x, p.y - o.y}
}

func (p MicroPoint) Mul(f float64) MicroPoint {
	return MicroPoint{Micrometer(float64(p.x) * f), Micrometer(float64(p.y) * f)}
}

// Size returns the magnitude (distance from origin) of the point treated
// as a vector.
func (p MicroPoint) Size() Micrometer {
	return Micrometer(math.Hypot(float64(p.x), float64(p.y)))
}

// ShorterThan reports whether the vector's magnitude is strictly shorter
// than d. It avoids a sqrt by comparing squared magnitudes.
func (p MicroPoint) ShorterThan(d Micrometer) bool {
	dist := float64(p.x)*float64(p.x) + float64(p.y)*float64(p.y)
	return dist < float64(d)*float64(d)
}

// ShorterThanOrEqual reports whether the vector's magnitude is shorter than
// or equal to d.
func (p MicroPoint) ShorterThanOrEqual(d Micrometer) bool {
	dist := float64(p.x)*float64(p.x) + float64(p.y)*float64(p.y)
	return dist <= float64(d)*float64(d)
}

// Dot returns the dot product of p and o.
func (p MicroPoint) Dot(o MicroPoint) float64 {
	return float64(p.x)*float64(o.x) + float64(p.y)*float64(o.y)
}

// Rotate rotates p around the origin by the given angle in degrees.
func (p MicroPoint) Rotate(degrees float64) MicroPoint {
	rad := ToRadians(degrees)
	sin, cos := math.Sin(rad), math.Cos(rad)
	x := float64(p.x)*cos - float64(p.y)*sin
	y := float64(p.x)*sin + float64(p.y)*cos
	return MicroPoint{Micrometer(x), Micrometer(y)}
}

// RotateAround rotates p around origin o by the given angle in degrees.
func (p MicroPoint) RotateAround(o MicroPoint, degrees float64) MicroPoint {
	return p.Sub(o).Rotate(degrees).Add(o)
}
