package modifier

import (
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// spiralizeModifier implements spec.md §4.4's non-stop/vase mode: for
// layers >= bottom_layers, only the outermost wall ring survives; skin,
// sparse infill and support are dropped (the emitter interpolates Z
// continuously across this single wall, spec.md §4.7). Layers below
// bottom_layers are left untouched so the part still has a solid base.
// This modifier must run last, after every region has been built.
type spiralizeModifier struct {
	handler.Named
	options *data.Options
}

// NewSpiralizeModifier returns the built-in spiralize/vase-mode modifier.
// It is a no-op unless spiralize is enabled.
func NewSpiralizeModifier(options *data.Options) handler.LayerModifier {
	return &spiralizeModifier{Named: handler.Named{Name: "Spiralize"}, options: options}
}

func (m *spiralizeModifier) Init(_ data.OptimizedModel) {}

func (m *spiralizeModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Spiralize {
		return nil
	}

	bottom := m.options.Print.BottomLayers

	for i, l := range layers {
		if i < bottom {
			continue
		}

		walls, err := WallsAttribute(l)
		if err != nil {
			return err
		}

		var outer [][]data.LayerPart
		if len(walls) > 0 {
			outer = [][]data.LayerPart{walls[0]}
		}

		newLayer := newExtendedLayer(l)
		newLayer.attributes = map[string]interface{}{
			attrWalls: outer,
		}
		layers[i] = newLayer
	}

	return nil
}
