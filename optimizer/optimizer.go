// Package optimizer implements the Mesh Preparation stage of spec.md §4.1:
// centering the mesh on the bed, validating it fits within the printer
// volume, and precomputing the face adjacency and 2D convex hull that
// later stages (the cross-sectioner, the brim modifier) rely on.
package optimizer

import (
	"fmt"
	"math"

	convexHull "github.com/furstenheim/go-convex-hull-2d"

	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

type optimizer struct {
	options *data.Options
}

// NewOptimizer returns the built-in handler.ModelOptimizer.
func NewOptimizer(options *data.Options) handler.ModelOptimizer {
	return &optimizer{options: options}
}

// hullPoint adapts data.MicroPoint to the GetX/GetY point interface
// expected by github.com/furstenheim/go-convex-hull-2d.
type hullPoint struct {
	x, y float64
	idx  int
}

func (p hullPoint) GetX() float64 { return p.x }
func (p hullPoint) GetY() float64 { return p.y }

func (o *optimizer) Optimize(mesh *data.Mesh) (data.OptimizedModel, error) {
	if mesh == nil || len(mesh.Triangles) == 0 || len(mesh.Vertices) == 0 {
		return nil, data.NewInvalidMeshError("mesh has no triangles")
	}

	for _, t := range mesh.Triangles {
		if t.V0 == t.V1 || t.V1 == t.V2 || t.V0 == t.V2 {
			return nil, data.NewInvalidMeshError("mesh contains a degenerate triangle")
		}
	}

	min, max := mesh.Bounds()
	if !isFinite(min) || !isFinite(max) {
		return nil, data.NewInvalidMeshError("mesh contains non-finite coordinates")
	}

	sizeX := max.X - min.X
	sizeY := max.Y - min.Y
	if sizeX <= 0 || sizeY <= 0 || max.Z-min.Z <= 0 {
		return nil, data.NewInvalidMeshError("mesh has zero volume")
	}

	// Center on the bed and seat it on the build plate (spec.md §4.1).
	offsetX := float64(o.options.Printer.BedWidth)/2 - sizeX/2 - min.X
	offsetY := float64(o.options.Printer.BedDepth)/2 - sizeY/2 - min.Y
	offsetZ := -min.Z

	// The footprint's bed-fit check is driven by the convex hull's bounding
	// box rather than another raw vertex scan: the hull already touches
	// every extreme XY vertex, so its bbox is the footprint's true XY
	// envelope, and computing the hull here means it is no longer dead
	// weight on the optimized model (it also anchors brim/skirt's first
	// ring, see modifier.brimAnchor).
	hull := buildConvexHull(mesh.Vertices, offsetX, offsetY)
	hullMin, hullMax := hull.Bounds()

	centeredMinZ := min.Z + offsetZ
	centeredMaxZ := max.Z + offsetZ

	if hullMin.X() < 0 || hullMin.Y() < 0 || centeredMinZ < 0 ||
		hullMax.X() > o.options.Printer.BedWidth.ToMicrometer() ||
		hullMax.Y() > o.options.Printer.BedDepth.ToMicrometer() ||
		data.Millimeter(centeredMaxZ) > o.options.Printer.BedHeight {
		return nil, data.NewOutOfVolumeError(fmt.Sprintf(
			"object footprint %v-%v (z %v-%v) exceeds bed size %vx%vx%v after centering",
			hullMin, hullMax, centeredMinZ, centeredMaxZ,
			o.options.Printer.BedWidth, o.options.Printer.BedDepth, o.options.Printer.BedHeight))
	}

	om := &optimizedModel{
		min:  data.NewMicroVec3(hullMin.X(), hullMin.Y(), data.Millimeter(centeredMinZ).ToMicrometer()),
		max:  data.NewMicroVec3(hullMax.X(), hullMax.Y(), data.Millimeter(centeredMaxZ).ToMicrometer()),
		hull: hull,
	}

	om.faces = make([]optimizedFace, len(mesh.Triangles))
	for i, t := range mesh.Triangles {
		om.faces[i] = optimizedFace{
			points: [3]data.MicroVec3{
				toMicroVec3(offsetVertex(mesh.Vertices[t.V0], offsetX, offsetY, offsetZ)),
				toMicroVec3(offsetVertex(mesh.Vertices[t.V1], offsetX, offsetY, offsetZ)),
				toMicroVec3(offsetVertex(mesh.Vertices[t.V2], offsetX, offsetY, offsetZ)),
			},
		}
	}

	buildAdjacency(mesh, om.faces)

	return om, nil
}

func isFinite(v data.Vertex) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func offsetVertex(v data.Vertex, dx, dy, dz float64) data.Vertex {
	return data.Vertex{X: v.X + dx, Y: v.Y + dy, Z: v.Z + dz}
}

func toMicroVec3(v data.Vertex) data.MicroVec3 {
	return data.NewMicroVec3(
		data.Millimeter(v.X).ToMicrometer(),
		data.Millimeter(v.Y).ToMicrometer(),
		data.Millimeter(v.Z).ToMicrometer(),
	)
}

// edgeKey uniquely identifies an undirected edge by its ordered vertex
// index pair.
type edgeKey struct{ a, b int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// buildAdjacency fills in each face's touching-face indices by matching
// shared edges across the whole mesh, the information
// slicer/slice/layer.go's ring stitcher (TouchingFaceIndices) relies on.
func buildAdjacency(mesh *data.Mesh, faces []optimizedFace) {
	type edgeFace struct {
		face, edge int
	}
	edgeToFaces := map[edgeKey][]edgeFace{}

	edgesOf := func(t data.Triangle) [3]edgeKey {
		return [3]edgeKey{
			newEdgeKey(t.V0, t.V1),
			newEdgeKey(t.V1, t.V2),
			newEdgeKey(t.V2, t.V0),
		}
	}

	for i, t := range mesh.Triangles {
		edges := edgesOf(t)
		for e, key := range edges {
			edgeToFaces[key] = append(edgeToFaces[key], edgeFace{face: i, edge: e})
		}
	}

	for i := range faces {
		faces[i].touching = []int{-1, -1, -1}
	}

	for _, ef := range edgeToFaces {
		if len(ef) != 2 {
			// Boundary or non-manifold edge: leave as -1 on both sides.
			continue
		}
		faces[ef[0].face].touching[ef[0].edge] = ef[1].face
		faces[ef[1].face].touching[ef[1].edge] = ef[0].face
	}
}

// buildConvexHull computes the 2D convex hull of the mesh's XY footprint
// using github.com/furstenheim/go-convex-hull-2d, converting the result to
// a closed, CCW-wound data.Path in micrometers.
func buildConvexHull(vertices []data.Vertex, offsetX, offsetY float64) data.Path {
	if len(vertices) == 0 {
		return nil
	}
	points := make([]convexHull.Point, len(vertices))
	for i, v := range vertices {
		points[i] = hullPoint{x: v.X + offsetX, y: v.Y + offsetY, idx: i}
	}

	hull := convexHull.ConvexHull(points)

	result := make(data.Path, 0, len(hull))
	for _, p := range hull {
		result = append(result, data.NewMicroPoint(
			data.Millimeter(p.GetX()).ToMicrometer(),
			data.Millimeter(p.GetY()).ToMicrometer(),
		))
	}
	if !result.IsCCW() {
		reverse(result)
	}
	return result
}

func reverse(p data.Path) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

type optimizedFace struct {
	points   [3]data.MicroVec3
	touching []int
}

func (f optimizedFace) Points() [3]data.MicroVec3 { return f.points }
func (f optimizedFace) TouchingFaceIndices() []int { return f.touching }

type optimizedModel struct {
	min, max data.MicroVec3
	faces    []optimizedFace
	hull     data.Path
}

func (m *optimizedModel) FaceCount() int { return len(m.faces) }
func (m *optimizedModel) Min() data.MicroVec3 { return m.min }
func (m *optimizedModel) Max() data.MicroVec3 { return m.max }
func (m *optimizedModel) Size() data.MicroVec3 { return m.max.Sub(m.min) }
func (m *optimizedModel) OptimizedFace(index int) data.OptimizedFace { return m.faces[index] }
func (m *optimizedModel) ConvexHull() data.Path { return m.hull }
