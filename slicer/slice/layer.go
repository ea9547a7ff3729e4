// Package slice implements the Cross-Sectioner stage of spec.md §4.3: for
// each layer elevation, every triangle of the mesh is intersected with the
// horizontal plane and the resulting segments are stitched into closed
// rings.
package slice

import (
	"github.com/kasynel/slicer/data"
)

// snapDistanceClose is the tolerance for following a chain onto the next
// segment (makePolygons) and for joining leftover open chains end-to-start
// (connectOpenChains). snapDistanceJoin is the looser tolerance
// dropUnclosable uses to close a nearly finished ring, and also the length
// a closed ring must exceed to be kept.
const (
	snapDistanceClose = data.Micrometer(100)
	snapDistanceJoin  = data.Micrometer(1000)
)

// segment is one intersection of a triangle with the slicing plane.
type segment struct {
	start, end     data.MicroPoint
	faceIndex      int
	addedToPolygon bool
}

// layer accumulates segments for one elevation and stitches them into
// polygons.
type layer struct {
	number             int
	segments           []*segment
	faceToSegmentIndex map[int]int
	polygons           data.Paths
	closed             []bool
	openChains         int
}

func newLayer(number int) *layer {
	return &layer{
		number:             number,
		faceToSegmentIndex: map[int]int{},
	}
}

// Polygons implements data.Layer for the clipping engine.
func (l *layer) Polygons() data.Paths {
	return l.polygons
}

// addSegment records the segment produced by intersecting face faceIndex
// with the slicing plane.
func (l *layer) addSegment(faceIndex int, start, end data.MicroPoint) {
	l.faceToSegmentIndex[faceIndex] = len(l.segments)
	l.segments = append(l.segments, &segment{start: start, end: end, faceIndex: faceIndex})
}

// makePolygons walks face adjacency to stitch this layer's segments into
// closed rings, exactly as the teacher's layer.makePolygons does: follow
// touching faces from each unconsumed segment until the chain closes or
// runs out of neighbours, then try to join any chains left open.
func (l *layer) makePolygons(om data.OptimizedModel) {
	for startSegmentIndex, seg := range l.segments {
		if seg.addedToPolygon {
			continue
		}

		polygon := data.Path{l.segments[startSegmentIndex].start}

		currentSegmentIndex := startSegmentIndex
		var canClose bool

		for {
			canClose = false
			current := l.segments[currentSegmentIndex]
			current.addedToPolygon = true
			p0 := current.end
			polygon = append(polygon, p0)

			nextIndex := -1
			face := om.OptimizedFace(current.faceIndex)

			for _, touchingFaceIndex := range face.TouchingFaceIndices() {
				if touchingFaceIndex <= -1 {
					continue
				}
				touchingSegmentIndex, ok := l.faceToSegmentIndex[touchingFaceIndex]
				if !ok {
					continue
				}

				p1 := l.segments[touchingSegmentIndex].start
				if p0.Sub(p1).ShorterThan(snapDistanceClose) {
					if touchingSegmentIndex == startSegmentIndex {
						canClose = true
					}
					if l.segments[touchingSegmentIndex].addedToPolygon {
						continue
					}
					nextIndex = touchingSegmentIndex
				}
			}

			if nextIndex == -1 {
				break
			}
			currentSegmentIndex = nextIndex
		}

		l.polygons = append(l.polygons, polygon)
		l.closed = append(l.closed, canClose)
	}

	l.connectOpenChains()
	l.dropUnclosable()
}

// connectOpenChains joins polygons that did not close directly by chaining
// the nearest open end, repeating until no more joins are possible. Models
// are not always perfectly manifold, so this recovers rings split across a
// numeric seam.
func (l *layer) connectOpenChains() {
rerun:
	for i, polygon := range l.polygons {
		if polygon == nil || l.closed[i] {
			continue
		}

		best := -1
		bestScore := snapDistanceClose + 1
		for j, other := range l.polygons {
			if other == nil || l.closed[j] || i == j {
				continue
			}
			diff := polygon[len(polygon)-1].Sub(other[0])
			if diff.ShorterThan(snapDistanceClose) {
				score := diff.Size() - data.Micrometer(len(other)*10)
				if score < bestScore {
					best = j
					bestScore = score
				}
			}
		}

		if best > -1 {
			l.polygons[i] = append(l.polygons[i], l.polygons[best]...)
			if l.polygons[i].IsAlmostFinished(snapDistanceClose) {
				l.removeLastPoint(i)
				l.closed[i] = true
			}
			l.polygons[best] = nil
			goto rerun
		}
	}
}

// dropUnclosable finalizes near-closed rings and discards chains that
// remain open or are too small to matter, recording how many were
// discarded for the OpenContourDiscarded warning (spec.md §7).
func (l *layer) dropUnclosable() {
	var cleared data.Paths
	for i, poly := range l.polygons {
		if poly == nil {
			continue
		}

		if poly.IsAlmostFinished(snapDistanceJoin) {
			l.removeLastPoint(i)
			l.closed[i] = true
		}

		length := data.Micrometer(0)
		for n, point := range poly {
			if n == 0 {
				continue
			}
			length += point.Sub(poly[n-1]).Size()
			if l.closed[i] && length > snapDistanceJoin {
				break
			}
		}

		if l.polygons[i] != nil && length > snapDistanceJoin && l.closed[i] {
			cleared = append(cleared, l.polygons[i].Simplify(-1, -1))
		} else if l.polygons[i] != nil {
			l.openChains++
		}
	}
	l.polygons = cleared
}

func (l *layer) removeLastPoint(polyIndex int) {
	l.polygons[polyIndex] = l.polygons[polyIndex][:len(l.polygons[polyIndex])-1]
}
