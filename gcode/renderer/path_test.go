package renderer

import (
	"strings"
	"testing"

	"github.com/kasynel/slicer/data"
)

func square(side data.Micrometer) data.Path {
	return data.Path{
		data.NewMicroPoint(0, 0),
		data.NewMicroPoint(side, 0),
		data.NewMicroPoint(side, side),
		data.NewMicroPoint(0, side),
	}
}

func TestSeamRotateStartsAtHighestY(t *testing.T) {
	p := square(1000)
	rotated := seamRotate(p)
	if rotated[0].Y() != 1000 {
		t.Fatalf("expected rotated path to start at the highest-Y vertex (y=1000), got y=%v", rotated[0].Y())
	}
	// Rotation must preserve point order and count, just re-based.
	if len(rotated) != len(p) {
		t.Fatalf("seamRotate changed path length: %d -> %d", len(p), len(rotated))
	}
}

func TestSeamRotateNoOpWhenAlreadyAtStart(t *testing.T) {
	p := data.Path{
		data.NewMicroPoint(0, 1000),
		data.NewMicroPoint(1000, 0),
	}
	rotated := seamRotate(p)
	if rotated[0] != p[0] {
		t.Errorf("expected no rotation when the first vertex is already highest-Y")
	}
}

func TestNearestPathIndexPicksClosestStart(t *testing.T) {
	paths := data.Paths{
		{data.NewMicroPoint(1000, 0)},
		{data.NewMicroPoint(10, 0)},
		{data.NewMicroPoint(500, 0)},
	}
	idx := nearestPathIndex(data.NewMicroPoint(0, 0), paths, true)
	if idx != 1 {
		t.Errorf("nearestPathIndex = %d, want 1 (the path starting closest to origin)", idx)
	}
}

func TestNearestPathIndexWithoutCurrentPositionPicksFirst(t *testing.T) {
	paths := data.Paths{
		{data.NewMicroPoint(1000, 0)},
		{data.NewMicroPoint(10, 0)},
	}
	if idx := nearestPathIndex(data.NewMicroPoint(0, 0), paths, false); idx != 0 {
		t.Errorf("nearestPathIndex with hasFrom=false = %d, want 0", idx)
	}
}

func TestEmitClosedReturnsToStartPoint(t *testing.T) {
	options := data.NewDefaultOptions()
	b := newRenderBuilder(&options)

	emitClosed(b, data.Paths{square(1000)}, 0)

	if !b.HasMoved() {
		t.Fatal("expected emitClosed to move the builder")
	}
	// The ring closes back on its rotated start point.
	if b.LastPosition() != seamRotate(square(1000))[0] {
		t.Errorf("expected a closed ring to end where it began (post seam-rotation)")
	}
}

func TestEmitOpenEndsAtLastPoint(t *testing.T) {
	options := data.NewDefaultOptions()
	b := newRenderBuilder(&options)

	path := data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(1000, 0), data.NewMicroPoint(1000, 1000)}
	emitOpen(b, data.Paths{path}, 0)

	if b.LastPosition() != path[len(path)-1] {
		t.Errorf("expected an open path to end at its last point, got %v want %v", b.LastPosition(), path[len(path)-1])
	}
}

func TestEmitSpiralInterpolatesZAcrossThePerimeter(t *testing.T) {
	options := data.NewDefaultOptions()
	b := newRenderBuilder(&options)

	path := square(1000)
	zBase := data.Millimeter(1).ToMicrometer()
	layerHeight := data.Millimeter(0.2).ToMicrometer()

	emitSpiral(b, path, zBase, layerHeight)

	// By the time the spiral returns to its closing point, a full layer
	// height should have been climbed.
	out := b.String()
	if out == "" {
		t.Fatal("expected emitSpiral to emit gcode")
	}
	// One quarter of the 4mm perimeter in, Z has climbed a quarter layer.
	if !strings.Contains(out, "Z1.050") {
		t.Errorf("expected Z interpolated to 1.050 after the first edge, got:\n%s", out)
	}
	if !strings.Contains(out, "Z1.200") {
		t.Errorf("expected the closing point at Z 1.200 (base + layer height), got:\n%s", out)
	}
}

func TestEmitSpiralNoOpOnDegeneratePath(t *testing.T) {
	options := data.NewDefaultOptions()
	b := newRenderBuilder(&options)

	emitSpiral(b, data.Path{data.NewMicroPoint(0, 0)}, 0, data.Millimeter(0.2).ToMicrometer())
	if b.HasMoved() {
		t.Error("expected emitSpiral to be a no-op for a path with under 2 points")
	}
}
