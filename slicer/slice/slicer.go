package slice

import (
	"fmt"

	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// planeEpsilon nudges the slicing plane deterministically upward by
// 1e-6mm (spec.md §4.3) so a triangle vertex that lies exactly on the
// plane never produces a degenerate (zero-length) segment.
const planeEpsilon = 0.001 // micrometers (1e-6 mm)

type slicer struct {
	options  *data.Options
	cancel   *handler.CancelToken
	progress handler.ProgressFunc
	warnings *[]data.Warning
}

// NewSlicer returns the built-in handler.ModelSlicer implementing the
// Layer Planner (spec.md §4.2) and Cross-Sectioner (spec.md §4.3) stages.
// cancel, progress and warnings may all be nil; when warnings is non-nil,
// any chain dropUnclosable had to discard (spec.md §7's recoverable
// OpenContourDiscarded condition) is recorded on it once per Slice call.
func NewSlicer(options *data.Options, cancel *handler.CancelToken, progress handler.ProgressFunc, warnings *[]data.Warning) handler.ModelSlicer {
	if progress == nil {
		progress = handler.NoProgress
	}
	return &slicer{options: options, cancel: cancel, progress: progress, warnings: warnings}
}

func (s *slicer) Slice(om data.OptimizedModel) ([]data.PartitionedLayer, error) {
	elevations := data.PlanLayers(om.Max().Z(), s.options.Print.InitialLayerHeight.ToMicrometer(), s.options.Print.LayerHeight.ToMicrometer())
	if len(elevations) == 0 {
		return nil, data.ErrEmptyJob
	}

	layers := make([]*layer, len(elevations))
	for i := range elevations {
		layers[i] = newLayer(i)
	}

	cl := clip.NewClipper()

	for faceIndex := 0; faceIndex < om.FaceCount(); faceIndex++ {
		if faceIndex%512 == 0 && s.cancel.Cancelled() {
			return nil, data.ErrCancelled
		}

		face := om.OptimizedFace(faceIndex)
		points := face.Points()

		zMin, zMax := triangleZRange(points)

		for layerIndex, z := range elevations {
			target := float64(z) + planeEpsilon
			if target <= float64(zMin) || target >= float64(zMax) {
				continue
			}

			start, end, ok := intersectTriangle(points, target)
			if !ok {
				continue
			}
			layers[layerIndex].addSegment(faceIndex, start, end)
		}

		if faceIndex%256 == 0 {
			s.progress("cross-section", float64(faceIndex)/float64(om.FaceCount()))
		}
	}

	result := make([]data.PartitionedLayer, 0, len(layers))
	discardedChains := 0
	for i, l := range layers {
		if s.cancel.Cancelled() {
			return nil, data.ErrCancelled
		}

		l.makePolygons(om)
		discardedChains += l.openChains
		partitioned, ok := cl.GenerateLayerParts(l)
		if !ok {
			return nil, data.ErrInternalGeometry
		}
		result = append(result, partitioned)
		s.progress("cross-section", float64(i+1)/float64(len(layers)))
	}

	if discardedChains > 0 && s.warnings != nil {
		*s.warnings = append(*s.warnings, data.Warning{
			Kind:   data.WarnOpenContourDiscarded,
			Layer:  -1,
			Detail: fmt.Sprintf("%d open contour(s) could not be closed and were discarded", discardedChains),
		})
	}

	return result, nil
}

func triangleZRange(points [3]data.MicroVec3) (min, max data.Micrometer) {
	min, max = points[0].Z(), points[0].Z()
	for _, p := range points[1:] {
		if p.Z() < min {
			min = p.Z()
		}
		if p.Z() > max {
			max = p.Z()
		}
	}
	return
}

// intersectTriangle computes the line segment where the triangle crosses
// the horizontal plane z=target, walking the three directed edges
// v0->v1->v2->v0. Exactly one edge crosses upward (assigned as the
// segment's start) and one crosses downward (assigned as its end); because
// every shared mesh edge is walked in opposite directions by its two
// adjacent faces, this convention makes segment.end on one face equal
// segment.start on its neighbour, which is what the ring stitcher
// (layer.makePolygons) depends on.
func intersectTriangle(points [3]data.MicroVec3, target float64) (start, end data.MicroPoint, ok bool) {
	var haveStart, haveEnd bool

	edges := [3][2]data.MicroVec3{
		{points[0], points[1]},
		{points[1], points[2]},
		{points[2], points[0]},
	}

	for _, e := range edges {
		a, b := e[0], e[1]
		az, bz := float64(a.Z()), float64(b.Z())

		if az < target && bz >= target {
			start = interpolateXY(a, b, az, bz, target)
			haveStart = true
		} else if az >= target && bz < target {
			end = interpolateXY(a, b, az, bz, target)
			haveEnd = true
		}
	}

	return start, end, haveStart && haveEnd
}

func interpolateXY(a, b data.MicroVec3, az, bz, target float64) data.MicroPoint {
	t := (target - az) / (bz - az)
	x := float64(a.X()) + t*float64(b.X()-a.X())
	y := float64(a.Y()) + t*float64(b.Y()-a.Y())
	return data.NewMicroPoint(data.Micrometer(x), data.Micrometer(y))
}
