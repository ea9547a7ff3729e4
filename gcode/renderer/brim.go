package renderer

import (
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
	"github.com/kasynel/slicer/modifier"
)

// Brim emits the first layer's brim rings (spec.md §4.4/§4.6), tagged
// BRIM and using first_layer_speed.
type Brim struct{}

func (Brim) Init(_ data.OptimizedModel) {}

func (Brim) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != 0 {
		return nil
	}

	rings, err := modifier.BrimOuterDimension(layer)
	if err != nil {
		return err
	}
	if len(rings) == 0 {
		return nil
	}

	b.AddComment("TYPE:BRIM")

	var outlines data.Paths
	for _, part := range rings {
		outlines = append(outlines, part.Outline())
	}
	emitClosed(b, outlines, z)

	return nil
}
