// This file holds path-ordering helpers shared by every region renderer:
// greedy nearest-neighbor chaining and the "back" seam policy.
package renderer

import (
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
)

// emitClosed emits each path in paths as a closed ring (returning to its
// first point), choosing ring order by greedy nearest-neighbor from the
// builder's current position, and rotating each ring's start to its
// highest-Y vertex (spec.md §4.6's "back" seam policy).
func emitClosed(b *gcode.Builder, paths data.Paths, z data.Micrometer) {
	rotated := make(data.Paths, 0, len(paths))
	for _, p := range paths {
		rotated = append(rotated, seamRotate(p))
	}
	emitChained(b, rotated, z, true)
}

// emitOpen emits each path in paths as an open polyline, in greedy
// nearest-neighbor order, without seam rotation.
func emitOpen(b *gcode.Builder, paths data.Paths, z data.Micrometer) {
	emitChained(b, paths, z, false)
}

func emitChained(b *gcode.Builder, paths data.Paths, z data.Micrometer, closed bool) {
	remaining := append(data.Paths{}, paths...)
	cur := b.LastPosition()
	hasCur := b.HasMoved()

	for len(remaining) > 0 {
		idx := nearestPathIndex(cur, remaining, hasCur)
		path := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		if len(path) == 0 {
			continue
		}

		b.Travel(path[0], z)
		for _, p := range path[1:] {
			b.Extrude(p, z)
		}
		if closed && len(path) > 1 {
			b.Extrude(path[0], z)
		}

		cur = path[0]
		if !closed {
			cur = path[len(path)-1]
		}
		hasCur = true
	}
}

func nearestPathIndex(from data.MicroPoint, paths data.Paths, hasFrom bool) int {
	if !hasFrom || len(paths) == 1 {
		return 0
	}
	best := 0
	bestDist := from.Sub(paths[0][0]).Size()
	for i := 1; i < len(paths); i++ {
		d := from.Sub(paths[i][0]).Size()
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// seamRotate rotates a closed ring so it starts at its highest-Y vertex.
func seamRotate(path data.Path) data.Path {
	if len(path) < 2 {
		return path
	}
	best := 0
	for i, p := range path {
		if p.Y() > path[best].Y() {
			best = i
		}
	}
	if best == 0 {
		return path
	}
	rotated := make(data.Path, 0, len(path))
	rotated = append(rotated, path[best:]...)
	rotated = append(rotated, path[:best]...)
	return rotated
}

// emitSpiral emits path as a single continuously-rising-Z ring for
// non-stop/vase mode (spec.md §4.6): given cumulative perimeter distance s
// and total length L, Z = zBase + (s/L)*layerHeight.
func emitSpiral(b *gcode.Builder, path data.Path, zBase, layerHeight data.Micrometer) {
	if len(path) < 2 {
		return
	}
	full := append(append(data.Path{}, path...), path[0])
	total := full.Length()
	if total <= 0 {
		return
	}

	b.Travel(full[0], zBase)
	var cum data.Micrometer
	for i := 1; i < len(full); i++ {
		cum += full[i-1].Sub(full[i]).Size()
		z := zBase + data.Micrometer(float64(layerHeight)*float64(cum)/float64(total))
		b.ExtrudeSpiral(full[i], z)
	}
}
