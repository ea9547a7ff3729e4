package renderer

import (
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
	"github.com/kasynel/slicer/modifier"
)

// Perimeter emits the wall rings of spec.md §4.5/§4.6: ring order follows
// outer_before_inner, each ring's start point follows the "back" seam
// policy, and in spiralize mode only the outermost ring is emitted, with
// Z interpolated continuously along its perimeter.
type Perimeter struct{}

func (Perimeter) Init(_ data.OptimizedModel) {}

func (Perimeter) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	walls, err := modifier.WallsAttribute(layer)
	if err != nil {
		return err
	}
	if len(walls) == 0 {
		return nil
	}

	speed := func(s data.Millimeter) {
		if layerNr > 0 {
			b.SetExtrudeSpeed(s)
		}
	}

	spiral := options.Print.Spiralize && layerNr >= options.Print.BottomLayers
	b.SetNonStop(spiral)

	emitRing := func(k int, kind string, s data.Millimeter) {
		if k >= len(walls) || len(walls[k]) == 0 {
			return
		}
		speed(s)
		b.AddComment("TYPE:%s", kind)
		for _, part := range walls[k] {
			if spiral {
				emitSpiral(b, seamRotate(part.Outline()), z, options.Print.LayerHeight.ToMicrometer())
			} else {
				emitClosed(b, data.Paths{part.Outline()}, z)
			}
		}
	}

	if spiral {
		emitRing(0, "WALL-OUTER", options.Print.Speed.OuterPerimeter)
		return nil
	}

	if options.Print.OuterBeforeInner {
		emitRing(0, "WALL-OUTER", options.Print.Speed.OuterPerimeter)
		for k := 1; k < len(walls); k++ {
			emitRing(k, "WALL-INNER", options.Print.Speed.Print)
		}
	} else {
		for k := len(walls) - 1; k >= 1; k-- {
			emitRing(k, "WALL-INNER", options.Print.Speed.Print)
		}
		emitRing(0, "WALL-OUTER", options.Print.Speed.OuterPerimeter)
	}

	return nil
}
