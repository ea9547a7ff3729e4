package clip

import (
	"math"

	"github.com/kasynel/slicer/data"
)

// Pattern generates the candidate lines for one infill/skin/support fill
// pass, before they are clipped against the target region's outline and
// holes by Clipper.Fill. Splitting "generate candidate geometry" from
// "clip against the region" mirrors the teacher's getLinearFill, which
// inlines both; here they are separated so grid/honeycomb can reuse the
// same clip step the teacher wrote for single-direction lines.
type Pattern interface {
	// Generate returns the raw (unclipped) candidate lines/cells for the
	// pattern, in the bounding box the pattern was constructed with.
	Generate() data.Paths
	// Closed reports whether the generated paths are closed rings
	// (honeycomb cells) rather than open scan lines.
	Closed() bool
}

// LinearPattern produces parallel scan lines spaced lineSpacing apart,
// rotated by angleDegrees, with every other line's direction reversed.
// Each line is a separate two-point path: the connected and zigzag flags
// are stored but Generate does not read them, so consecutive lines are
// never joined into one continuous zigzag path.
type LinearPattern struct {
	lineWidth    data.Micrometer
	lineSpacing  data.Micrometer
	min, max     data.MicroPoint
	angleDegrees float64
	connected    bool
	zigzag       bool
}

// NewLinearPattern mirrors the teacher's clip.NewLinearPattern constructor
// shape (lineWidth, lineSpacing, min, max, angleDegrees, connected, zigzag).
func NewLinearPattern(lineWidth, lineSpacing data.Micrometer, min, max data.MicroPoint, angleDegrees float64, connected, zigzag bool) Pattern {
	return &LinearPattern{
		lineWidth:    lineWidth,
		lineSpacing:  lineSpacing,
		min:          min,
		max:          max,
		angleDegrees: angleDegrees,
		connected:    connected,
		zigzag:       zigzag,
	}
}

func (p *LinearPattern) Closed() bool { return false }

func (p *LinearPattern) Generate() data.Paths {
	if p.lineSpacing <= 0 {
		return nil
	}
	return generateLinesInBounds(p.min, p.max, p.lineSpacing, p.angleDegrees)
}

// generateLinesInBounds returns parallel lines spanning the rotated
// bounding box of [min,max], spaced `spacing` apart, then rotates each
// line back by angleDegrees so it crosses the original (unrotated) region.
// This is the same scanline approach as the teacher's getLinearFill, made
// angle-aware: the teacher only ever scans along X, relying on the caller
// to have already rotated the region (it never does, which is exactly
// spec.md §9's "infill_angle not applied" gap - kept fixed here per
// SPEC_FULL.md §12/DESIGN.md's Open Question decision).
func generateLinesInBounds(min, max data.MicroPoint, spacing data.Micrometer, angleDegrees float64) data.Paths {
	center := data.NewMicroPoint((min.X()+max.X())/2, (min.Y()+max.Y())/2)

	// Rotate the bounding box corners into pattern space so the scan
	// covers the whole region regardless of angle.
	corners := []data.MicroPoint{
		min,
		data.NewMicroPoint(max.X(), min.Y()),
		max,
		data.NewMicroPoint(min.X(), max.Y()),
	}
	var rMin, rMax data.MicroPoint
	for i, c := range corners {
		r := c.RotateAround(center, -angleDegrees)
		if i == 0 {
			rMin, rMax = r, r
			continue
		}
		if r.X() < rMin.X() {
			rMin.SetX(r.X())
		}
		if r.Y() < rMin.Y() {
			rMin.SetY(r.Y())
		}
		if r.X() > rMax.X() {
			rMax.SetX(r.X())
		}
		if r.Y() > rMax.Y() {
			rMax.SetY(r.Y())
		}
	}

	var lines data.Paths
	numLine := 0
	for x := rMin.X(); x <= rMax.X(); x += spacing {
		var a, b data.MicroPoint
		if numLine%2 == 1 {
			a = data.NewMicroPoint(x, rMax.Y())
			b = data.NewMicroPoint(x, rMin.Y())
		} else {
			a = data.NewMicroPoint(x, rMin.Y())
			b = data.NewMicroPoint(x, rMax.Y())
		}
		lines = append(lines, data.Path{
			a.RotateAround(center, angleDegrees),
			b.RotateAround(center, angleDegrees),
		})
		numLine++
	}
	return lines
}

// GridPattern superimposes two LinearPatterns 90° apart (spec.md §4.5: two
// line sets at 0° and 90°, rotated by the layer's alternation).
type GridPattern struct {
	a, b Pattern
}

func NewGridPattern(lineWidth, lineSpacing data.Micrometer, min, max data.MicroPoint, angleDegrees float64) Pattern {
	return &GridPattern{
		a: NewLinearPattern(lineWidth, lineSpacing, min, max, angleDegrees, false, false),
		b: NewLinearPattern(lineWidth, lineSpacing, min, max, angleDegrees+90, false, false),
	}
}

func (p *GridPattern) Closed() bool { return false }

func (p *GridPattern) Generate() data.Paths {
	return append(p.a.Generate(), p.b.Generate()...)
}

// HoneycombPattern tessellates the bounding box with regular hexagons of
// the given edge length, rotated by angleDegrees; only the cell perimeters
// are returned (no interior fill), per spec.md §4.5.
type HoneycombPattern struct {
	edge         data.Micrometer
	min, max     data.MicroPoint
	angleDegrees float64
}

func NewHoneycombPattern(edge data.Micrometer, min, max data.MicroPoint, angleDegrees float64) Pattern {
	return &HoneycombPattern{edge: edge, min: min, max: max, angleDegrees: angleDegrees}
}

func (p *HoneycombPattern) Closed() bool { return true }

func (p *HoneycombPattern) Generate() data.Paths {
	if p.edge <= 0 {
		return nil
	}
	center := data.NewMicroPoint((p.min.X()+p.max.X())/2, (p.min.Y()+p.max.Y())/2)
	edge := float64(p.edge)
	width := math.Sqrt(3) * edge  // flat-to-flat horizontal spacing between hex centers in a row
	height := 1.5 * edge          // vertical spacing between rows

	diag := center.Sub(p.min).Size() + p.min.Sub(p.max).Size()
	span := float64(diag) + float64(p.edge)*4

	var cells data.Paths
	rows := int(span/height) + 2
	cols := int(span/width) + 2

	for row := -rows; row <= rows; row++ {
		rowOffset := 0.0
		if row%2 != 0 {
			rowOffset = width / 2
		}
		for col := -cols; col <= cols; col++ {
			cx := float64(center.X()) + float64(col)*width + rowOffset
			cy := float64(center.Y()) + float64(row)*height
			cellCenter := data.NewMicroPoint(data.Micrometer(cx), data.Micrometer(cy))

			if cellCenter.Sub(center).Size() > data.Micrometer(span) {
				continue
			}

			cells = append(cells, hexagon(cellCenter, edge, p.angleDegrees, center))
		}
	}
	return cells
}

// hexagon returns a pointy-topped regular hexagon centered at c with the
// given edge length, then rotated angleDegrees around origin.
func hexagon(c data.MicroPoint, edge, angleDegrees float64, origin data.MicroPoint) data.Path {
	path := make(data.Path, 0, 6)
	for i := 0; i < 6; i++ {
		theta := math.Pi/6 + float64(i)*math.Pi/3
		x := float64(c.X()) + edge*math.Cos(theta)
		y := float64(c.Y()) + edge*math.Sin(theta)
		path = append(path, data.NewMicroPoint(data.Micrometer(x), data.Micrometer(y)).RotateAround(origin, angleDegrees))
	}
	return path
}
