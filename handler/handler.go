// Package handler defines the interfaces connecting the pipeline stages of
// spec.md §2: each stage only depends on the previous stage's interface,
// never its concrete type, mirroring the teacher's GoSlice struct
// composition in the (now split) root package.
package handler

import (
	"github.com/kasynel/slicer/data"
)

// Named gives a modifier or renderer a human-readable name for logging,
// matching the teacher's handler.Named embed used by every modifier.
type Named struct {
	Name string
}

func (n Named) GetName() string {
	return n.Name
}

// ModelReader turns host input into a data.Mesh. Mesh file decoding itself
// is out of the core's scope (spec.md §1); this interface exists so the
// core's entry point can validate and hand off an already-decoded mesh
// uniformly regardless of where it came from.
type ModelReader interface {
	Read(mesh *data.Mesh) (*data.Mesh, error)
}

// ModelOptimizer implements the Mesh Preparation stage (spec.md §4.1):
// centering, bed-fit validation and face-adjacency/convex-hull
// precomputation.
type ModelOptimizer interface {
	Optimize(mesh *data.Mesh) (data.OptimizedModel, error)
}

// ModelSlicer implements the Layer Planner + Cross-Sectioner stages
// (spec.md §4.2/§4.3).
type ModelSlicer interface {
	Slice(model data.OptimizedModel) ([]data.PartitionedLayer, error)
}

// LayerModifier implements one pass of the Region Builder (spec.md §4.4).
// Modifiers run in sequence; each may read and write the full layer slice,
// attaching attributes (walls, skin, infill, brim, support) consumed by
// later modifiers or by the G-code renderers.
type LayerModifier interface {
	Init(model data.OptimizedModel)
	Modify(layers []data.PartitionedLayer) error
	GetName() string
}

// GCodeGenerator implements the Path Synthesizer, Layer Orderer and G-code
// Emitter stages (spec.md §4.5-4.7).
type GCodeGenerator interface {
	Init(model data.OptimizedModel)
	Generate(layers []data.PartitionedLayer) (string, error)
}

// GCodeWriter writes the final G-code text to its destination.
type GCodeWriter interface {
	Write(gcode string, filename string) error
}

// ProgressFunc is invoked by long-running stages to report coarse progress.
// It must be cheap and safe to call from the slicing goroutine; it must
// never mutate pipeline state (spec.md §5).
type ProgressFunc func(stage string, fraction float64)

// NoProgress is a ProgressFunc that does nothing, for callers that don't
// need progress reporting.
func NoProgress(string, float64) {}
