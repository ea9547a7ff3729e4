package data

import "math"

// defaultSimplifyDistance and defaultSimplifyMaxDeviation are used when
// Simplify is called with a negative argument, mirroring the teacher's
// Simplify(-1, -1) call sites.
const (
	defaultSimplifyDistance     Micrometer = 10
	defaultSimplifyMaxDeviation Micrometer = 50
)

// Path is an ordered list of points. Depending on context it represents a
// closed polygon ring or an open polyline.
type Path []MicroPoint

// Paths is a set of independent Path values, e.g. the rings of a polygon
// with holes, or the collection of scan lines produced by an infill pattern.
type Paths []Path

// Bounds returns the axis-aligned bounding box of the path.
func (p Path) Bounds() (min, max MicroPoint) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X() < min.X() {
			min.SetX(pt.X())
		}
		if pt.Y() < min.Y() {
			min.SetY(pt.Y())
		}
		if pt.X() > max.X() {
			max.SetX(pt.X())
		}
		if pt.Y() > max.Y() {
			max.SetY(pt.Y())
		}
	}
	return
}

// Size returns the bounding box of the path, like Bounds, kept as a
// separate name to match call sites that read like "paths.Outline().Size()".
func (p Path) Size() (min, max MicroPoint) {
	return p.Bounds()
}

// Length returns the total length of the path treated as an open polyline.
func (p Path) Length() Micrometer {
	var total Micrometer
	for i := 1; i < len(p); i++ {
		total += p[i].Sub(p[i-1]).Size()
	}
	return total
}

// ClosedLength returns the total length of the path treated as a closed
// ring (i.e. including the segment from the last point back to the first).
func (p Path) ClosedLength() Micrometer {
	if len(p) < 2 {
		return 0
	}
	return p.Length() + p[len(p)-1].Sub(p[0]).Size()
}

// SignedArea returns twice the signed area enclosed by the path treated as
// a closed ring. Positive indicates a counter-clockwise (exterior) ring,
// negative a clockwise (hole) ring.
func (p Path) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i := range p {
		j := (i + 1) % len(p)
		sum += float64(p[i].X())*float64(p[j].Y()) - float64(p[j].X())*float64(p[i].Y())
	}
	return sum
}

// IsCCW reports whether the path winds counter-clockwise.
func (p Path) IsCCW() bool {
	return p.SignedArea() > 0
}

// IsAlmostFinished reports whether the distance between the last and first
// point of the path is within snapDistance, i.e. the path can be closed by
// dropping a trailing near-duplicate point.
func (p Path) IsAlmostFinished(snapDistance Micrometer) bool {
	if len(p) < 2 {
		return false
	}
	return p[len(p)-1].Sub(p[0]).ShorterThanOrEqual(snapDistance)
}

// Simplify removes points which contribute less than minDistance of
// progress or less than maxDeviation of perpendicular deviation from the
// path, using a single forward pass (Douglas-Peucker-lite, matching the
// cheap simplification the teacher relies on after stitching). Negative
// arguments fall back to the package defaults.
func (p Path) Simplify(minDistance, maxDeviation Micrometer) Path {
	if minDistance < 0 {
		minDistance = defaultSimplifyDistance
	}
	if maxDeviation < 0 {
		maxDeviation = defaultSimplifyMaxDeviation
	}
	if len(p) < 3 {
		return p
	}

	result := Path{p[0]}
	last := p[0]
	for i := 1; i < len(p)-1; i++ {
		if p[i].Sub(last).ShorterThan(minDistance) {
			continue
		}
		if pointLineDeviation(p[i], last, p[i+1]) < maxDeviation {
			continue
		}
		result = append(result, p[i])
		last = p[i]
	}
	result = append(result, p[len(p)-1])
	return result
}

// pointLineDeviation returns the perpendicular distance from pt to the
// infinite line through a and b (not clamped to the segment a-b).
func pointLineDeviation(pt, a, b MicroPoint) Micrometer {
	ab := b.Sub(a)
	length := ab.Size()
	if length == 0 {
		return pt.Sub(a).Size()
	}
	ap := pt.Sub(a)
	cross := float64(ab.X())*float64(ap.Y()) - float64(ab.Y())*float64(ap.X())
	return Micrometer(math.Abs(cross) / float64(length))
}

// Bounds returns the combined axis-aligned bounding box of every path in
// the set.
func (ps Paths) Bounds() (min, max MicroPoint) {
	first := true
	for _, p := range ps {
		if len(p) == 0 {
			continue
		}
		pMin, pMax := p.Bounds()
		if first {
			min, max = pMin, pMax
			first = false
			continue
		}
		if pMin.X() < min.X() {
			min.SetX(pMin.X())
		}
		if pMin.Y() < min.Y() {
			min.SetY(pMin.Y())
		}
		if pMax.X() > max.X() {
			max.SetX(pMax.X())
		}
		if pMax.Y() > max.Y() {
			max.SetY(pMax.Y())
		}
	}
	return
}
