package gcode

import (
	"fmt"

	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// GeneratorOption configures a Generator at construction time, mirroring
// the teacher's gcode.WithRenderer functional-option pattern.
type GeneratorOption func(*generator)

// WithRenderer appends a Renderer to the emission chain, run in the order
// given across every layer.
func WithRenderer(r Renderer) GeneratorOption {
	return func(g *generator) {
		g.renderers = append(g.renderers, r)
	}
}

type generator struct {
	options   *data.Options
	renderers []Renderer
	model     data.OptimizedModel
}

// NewGenerator returns the built-in handler.GCodeGenerator. Renderers run
// in registration order for every layer; PreLayer/PostLayer are
// conventionally registered first/last.
func NewGenerator(options *data.Options, opts ...GeneratorOption) handler.GCodeGenerator {
	g := &generator{options: options}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *generator) Init(model data.OptimizedModel) {
	g.model = model
	for _, r := range g.renderers {
		r.Init(model)
	}
}

// Generate walks layers in order, building one continuous gcode stream.
// Each layer's Z comes from data.PlanLayers, recomputed here from the
// model's max Z and the layer heights in options; the resulting elevation
// count must match len(layers) 1:1 or Generate returns an error.
func (g *generator) Generate(layers []data.PartitionedLayer) (string, error) {
	elevations := data.PlanLayers(g.model.Max().Z(), g.options.Print.InitialLayerHeight.ToMicrometer(), g.options.Print.LayerHeight.ToMicrometer())
	if len(elevations) != len(layers) {
		return "", fmt.Errorf("gcode: %d layer elevations but %d layers", len(elevations), len(layers))
	}

	b := NewBuilder(g.options)
	maxLayer := len(layers) - 1

	b.AddComment("Generated by Kasynel_Slicer")
	b.AddComment("LAYER_COUNT:%d", len(layers))
	b.AddComment("LAYER_HEIGHT:%.3f", float64(g.options.Print.LayerHeight))

	for i, layer := range layers {
		z := elevations[i]
		for _, r := range g.renderers {
			if err := r.Render(b, i, maxLayer, layer, z, g.options); err != nil {
				return "", fmt.Errorf("gcode: layer %d: %w", i, err)
			}
		}
	}

	return b.String(), nil
}
