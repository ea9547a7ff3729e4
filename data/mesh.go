package data

// Vertex is a mesh vertex in millimeters, as handed to the core by the
// caller (mesh file decoding itself is out of scope, spec.md §1).
type Vertex struct {
	X, Y, Z float64
}

// Triangle references three vertices by index. Winding order implies the
// outward normal; the core never stores normals explicitly.
type Triangle struct {
	V0, V1, V2 int
}

// Mesh is the normalized input to the slicing core: an indexed triangle
// mesh in millimeters.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned bounding box of the raw mesh, in
// millimeters, before any centering has been applied.
func (m *Mesh) Bounds() (min, max Vertex) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return
}

// OptimizedFace is one triangle of an OptimizedModel, with coordinates
// already converted to micrometers and centered on the bed, plus the
// indices of the faces touching each of its edges (used by the
// cross-sectioner to stitch segments without rebuilding adjacency per
// layer).
type OptimizedFace interface {
	// Points returns the triangle's three vertices in micrometers.
	Points() [3]MicroVec3
	// TouchingFaceIndices returns, for each of the face's three edges in
	// order, the index of the triangle sharing that edge, or -1 if the
	// edge is a boundary (non-manifold) edge.
	TouchingFaceIndices() []int
}

// OptimizedModel is the mesh as prepared by the optimizer stage (§4.1):
// centered on the bed, with face adjacency and a 2D convex hull
// precomputed, and all coordinates converted to the integer micrometer
// units the rest of the pipeline works in.
type OptimizedModel interface {
	FaceCount() int
	Min() MicroVec3
	Max() MicroVec3
	Size() MicroVec3
	OptimizedFace(index int) OptimizedFace
	// ConvexHull returns the 2D convex hull of the footprint (the XY
	// projection of every vertex), CCW wound.
	ConvexHull() Path
}
