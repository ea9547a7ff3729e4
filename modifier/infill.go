package modifier

import (
	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// infillModifier derives the sparse-infill region of spec.md §4.4:
// inner_area - skin, expanded outward by infill_overlap% * line_width, then
// clipped back to inner_area. It must run after NewSkinModifier.
type infillModifier struct {
	handler.Named
	options *data.Options
}

// NewInfillModifier returns the built-in sparse-infill region modifier.
func NewInfillModifier(options *data.Options) handler.LayerModifier {
	return &infillModifier{Named: handler.Named{Name: "Infill"}, options: options}
}

func (m *infillModifier) Init(_ data.OptimizedModel) {}

func (m *infillModifier) Modify(layers []data.PartitionedLayer) error {
	overlap := data.Micrometer(m.options.Print.InfillOverlapPercent) * m.options.LineWidth() / 100

	for i, l := range layers {
		innerArea, err := PartsAttribute(l, attrInnerArea)
		if err != nil {
			return err
		}
		if len(innerArea) == 0 {
			continue
		}

		skinTop, err := PartsAttribute(l, attrSkinTop)
		if err != nil {
			return err
		}
		skinBottom, err := PartsAttribute(l, attrSkinBottom)
		if err != nil {
			return err
		}

		cl := clip.NewClipper()

		skin, ok := cl.Union(skinTop, skinBottom)
		if !ok {
			return data.ErrInternalGeometry
		}

		sparse, ok := cl.Difference(innerArea, skin)
		if !ok {
			return data.ErrInternalGeometry
		}

		if overlap > 0 && len(sparse) > 0 {
			sparse = cl.Offset(sparse, overlap)
			sparse, ok = cl.Intersection(sparse, innerArea)
			if !ok {
				return data.ErrInternalGeometry
			}
		}

		newLayer := newExtendedLayer(l)
		newLayer.attributes[attrInfill] = sparse
		layers[i] = newLayer
	}

	return nil
}

// InfillSpacing returns the spacing between infill lines for the given
// density percentage, per spec.md §4.5's lines/grid formulas:
// spacing = line_width / (density/100) for "lines", doubled for "grid"
// (since grid superimposes two line sets). Exported for the gcode renderer
// composition (root package), which builds the same Pattern the sparse
// infill region here was sized against.
func InfillSpacing(lineWidth data.Micrometer, densityPercent float64, pattern data.InfillPattern) data.Micrometer {
	if densityPercent <= 0 {
		return 0
	}
	base := data.Micrometer(float64(lineWidth) / (densityPercent / 100))
	if pattern == data.InfillGrid {
		return base * 2
	}
	return base
}

// HoneycombEdge returns the hexagon edge length for the given density, per
// spec.md §4.5: edge = line_width / (density/100) * k, k ~ 1.5.
func HoneycombEdge(lineWidth data.Micrometer, densityPercent float64) data.Micrometer {
	if densityPercent <= 0 {
		return 0
	}
	return data.Micrometer(float64(lineWidth) / (densityPercent / 100) * 1.5)
}

// InfillAngleForLayer implements the Open Question decision recorded in
// DESIGN.md: infill_angle + 90 deg alternation per layer parity.
func InfillAngleForLayer(baseAngle float64, layerIndex int) float64 {
	if layerIndex%2 == 1 {
		return baseAngle + 90
	}
	return baseAngle
}
