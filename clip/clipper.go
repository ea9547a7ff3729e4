// Package clip provides the polygon offset/boolean/infill engine behind
// the Region Builder and Path Synthesizer stages (spec.md §4.4/§4.5),
// wrapping github.com/aligator/go.clipper the same way the teacher does.
package clip

import (
	"fmt"

	clipper "github.com/aligator/go.clipper"

	"github.com/kasynel/slicer/data"
)

// Clipper is the set of polygon operations the region builder and path
// synthesizer need.
type Clipper interface {
	// GenerateLayerParts partitions a raw stitched layer into disjoint,
	// hole-aware LayerParts via a union with even-odd fill.
	GenerateLayerParts(l data.Layer) (data.PartitionedLayer, bool)

	// InsetLayer insets every part of layer by offset, insetCount times,
	// returning [part][inset]LayerPart.
	InsetLayer(layer []data.LayerPart, offset data.Micrometer, insetCount int) data.InsetResult

	// Inset insets a single part, returning [inset][parts]LayerPart.
	Inset(part data.LayerPart, offset data.Micrometer, insetCount int) [][]data.LayerPart

	// Offset returns a single outward (positive) or inward (negative)
	// offset of the given parts, flattened to one dimension.
	Offset(parts []data.LayerPart, offset data.Micrometer) []data.LayerPart

	// Union returns the union of a and b.
	Union(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Difference returns a minus b.
	Difference(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Intersection returns the intersection of a and b.
	Intersection(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Fill creates an infill pattern for the given part using pattern.
	Fill(part data.LayerPart, pattern Pattern) data.Paths
}

type clipperClipper struct{}

// NewClipper returns a new instance of a polygon Clipper.
func NewClipper() Clipper {
	return clipperClipper{}
}

func clipperPoint(p data.MicroPoint) *clipper.IntPoint {
	return &clipper.IntPoint{X: clipper.CInt(p.X()), Y: clipper.CInt(p.Y())}
}

func clipperPaths(p data.Paths) clipper.Paths {
	var result clipper.Paths
	for _, path := range p {
		result = append(result, clipperPath(path))
	}
	return result
}

func clipperPath(p data.Path) clipper.Path {
	var result clipper.Path
	for _, point := range p {
		result = append(result, clipperPoint(point))
	}
	return result
}

func microPoint(p *clipper.IntPoint) data.MicroPoint {
	return data.NewMicroPoint(data.Micrometer(p.X), data.Micrometer(p.Y))
}

func microPath(p clipper.Path, simplify bool) data.Path {
	var result data.Path
	for _, point := range p {
		result = append(result, microPoint(point))
	}
	if simplify {
		return result.Simplify(-1, -1)
	}
	return result
}

func layerPartsToClipperPaths(parts []data.LayerPart) clipper.Paths {
	var result clipper.Paths
	for _, part := range parts {
		result = append(result, clipperPath(part.Outline()))
		result = append(result, clipperPaths(part.Holes())...)
	}
	return result
}

func (c clipperClipper) GenerateLayerParts(l data.Layer) (data.PartitionedLayer, bool) {
	polyList := clipper.Paths{}
	for _, layerPolygon := range l.Polygons() {
		var path clipper.Path

		prev := 0
		for j, layerPoint := range layerPolygon {
			if j == 0 {
				path = append(path, clipperPoint(layerPolygon[0]))
				continue
			}
			if layerPoint.Sub(layerPolygon[prev]).ShorterThanOrEqual(100) {
				continue
			}
			path = append(path, clipperPoint(layerPoint))
			prev = j
		}

		polyList = append(polyList, path)
	}

	if len(polyList) == 0 {
		return data.NewPartitionedLayer([]data.LayerPart{}), true
	}

	cl := clipper.NewClipper(clipper.IoNone)
	cl.AddPaths(polyList, clipper.PtSubject, true)
	resultPolys, ok := cl.Execute2(clipper.CtUnion, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return nil, false
	}

	return data.NewPartitionedLayer(polyTreeToLayerParts(resultPolys)), true
}

func polyTreeToLayerParts(tree *clipper.PolyTree) []data.LayerPart {
	var layerParts []data.LayerPart

	var polysForNextRound []*clipper.PolyNode
	for _, child := range tree.Childs() {
		polysForNextRound = append(polysForNextRound, child)
	}

	for polysForNextRound != nil {
		thisRound := polysForNextRound
		polysForNextRound = nil

		for _, p := range thisRound {
			var holes data.Paths

			for _, child := range p.Childs() {
				holes = append(holes, microPath(child.Contour(), false))
				for _, c := range child.Childs() {
					polysForNextRound = append(polysForNextRound, c)
				}
			}

			layerParts = append(layerParts, data.NewUnknownLayerPart(microPath(p.Contour(), false), holes))
		}
	}

	return layerParts
}

func (c clipperClipper) InsetLayer(layer []data.LayerPart, offset data.Micrometer, insetCount int) data.InsetResult {
	var result data.InsetResult
	for _, part := range layer {
		result = append(result, c.Inset(part, offset, insetCount))
	}
	return result
}

func (c clipperClipper) Inset(part data.LayerPart, offset data.Micrometer, insetCount int) [][]data.LayerPart {
	var insets [][]data.LayerPart

	o := clipper.NewClipperOffset()
	o.MiterLimit = 2

	for insetNr := 0; insetNr < insetCount; insetNr++ {
		o.Clear()
		o.AddPaths(clipperPaths(data.Paths{part.Outline()}), clipper.JtSquare, clipper.EtClosedPolygon)
		o.AddPaths(clipperPaths(part.Holes()), clipper.JtSquare, clipper.EtClosedPolygon)

		delta := float64(-int(offset)*insetNr) - float64(offset)/2
		tree := o.Execute2(delta)
		insets = append(insets, polyTreeToLayerParts(tree))
	}

	return insets
}

// Offset returns a single outward (positive offset) or inward (negative
// offset) expansion of parts, flattened to one dimension - used by brim
// rings and overhang dilation, which need exactly one offset distance
// rather than the successive-ring sequence Inset produces.
func (c clipperClipper) Offset(parts []data.LayerPart, offset data.Micrometer) []data.LayerPart {
	if len(parts) == 0 {
		return nil
	}

	o := clipper.NewClipperOffset()
	o.MiterLimit = 2
	o.AddPaths(layerPartsToClipperPaths(parts), clipper.JtSquare, clipper.EtClosedPolygon)
	tree := o.Execute2(float64(offset))
	return polyTreeToLayerParts(tree)
}

func (c clipperClipper) boolOp(op clipper.ClipType, a, b []data.LayerPart) ([]data.LayerPart, bool) {
	switch op {
	case clipper.CtDifference:
		if len(a) == 0 {
			return nil, true
		}
	case clipper.CtIntersection:
		if len(a) == 0 || len(b) == 0 {
			return nil, true
		}
	case clipper.CtUnion:
		if len(a) == 0 && len(b) == 0 {
			return nil, true
		}
	}

	cl := clipper.NewClipper(clipper.IoNone)
	switch {
	case len(a) > 0 && len(b) > 0:
		cl.AddPaths(layerPartsToClipperPaths(a), clipper.PtSubject, true)
		cl.AddPaths(layerPartsToClipperPaths(b), clipper.PtClip, true)
	case len(a) > 0:
		// Union/Difference with an empty other side: add the non-empty
		// side as the sole subject so it still comes out whole.
		cl.AddPaths(layerPartsToClipperPaths(a), clipper.PtSubject, true)
	case len(b) > 0:
		cl.AddPaths(layerPartsToClipperPaths(b), clipper.PtSubject, true)
	}

	tree, ok := cl.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, false
	}
	return polyTreeToLayerParts(tree), true
}

func (c clipperClipper) Union(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return c.boolOp(clipper.CtUnion, a, b)
}

func (c clipperClipper) Difference(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return c.boolOp(clipper.CtDifference, a, b)
}

func (c clipperClipper) Intersection(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return c.boolOp(clipper.CtIntersection, a, b)
}

func (c clipperClipper) Fill(part data.LayerPart, pattern Pattern) data.Paths {
	if pattern == nil {
		return nil
	}
	lines := pattern.Generate()
	if len(lines) == 0 {
		return nil
	}

	cl := clipper.NewClipper(clipper.IoNone)
	cl.AddPaths(clipper.Paths{clipperPath(part.Outline())}, clipper.PtClip, true)
	cl.AddPaths(clipperPaths(part.Holes()), clipper.PtClip, true)
	cl.AddPaths(clipperPaths(lines), clipper.PtSubject, pattern.Closed())

	tree, ok := cl.Execute2(clipper.CtIntersection, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		fmt.Println("clip: Fill failed")
		return nil
	}

	var result data.Paths
	for _, child := range tree.Childs() {
		result = append(result, microPath(child.Contour(), false))
	}
	return result
}
