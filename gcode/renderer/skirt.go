package renderer

import (
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
	"github.com/kasynel/slicer/modifier"
)

// Skirt emits the first layer's priming-loop rings (SPEC_FULL.md §12's
// supplemented feature, adapted from the teacher's renderer.Skirt). It
// runs before Brim so the outermost priming loops are emitted first.
type Skirt struct{}

func (Skirt) Init(_ data.OptimizedModel) {}

func (Skirt) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != 0 || !options.Print.Skirt.Enabled {
		return nil
	}

	rings, err := modifier.PartsAttribute(layer, "skirt")
	if err != nil {
		return err
	}
	if len(rings) == 0 {
		return nil
	}

	b.AddComment("TYPE:SKIRT")

	var outlines data.Paths
	for _, part := range rings {
		outlines = append(outlines, part.Outline())
	}
	emitClosed(b, outlines, z)

	return nil
}
