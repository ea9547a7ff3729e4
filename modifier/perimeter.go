package modifier

import (
	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// perimeterModifier implements the Walls + inner_area part of the Region
// Builder (spec.md §4.4): repeatedly insetting the layer outline by
// line_width to produce wall_count rings plus the remaining inner_area.
type perimeterModifier struct {
	handler.Named
	options  *data.Options
	warnings *[]data.Warning
}

// NewPerimeterModifier returns the built-in wall/inner-area modifier.
func NewPerimeterModifier(options *data.Options, warnings *[]data.Warning) handler.LayerModifier {
	return &perimeterModifier{
		Named:    handler.Named{Name: "Perimeter"},
		options:  options,
		warnings: warnings,
	}
}

func (m *perimeterModifier) Init(_ data.OptimizedModel) {}

func (m *perimeterModifier) Modify(layers []data.PartitionedLayer) error {
	lineWidth := m.options.LineWidth()
	wallCount := m.options.Print.WallCount

	if m.options.Print.SeamPosition != data.SeamBack {
		*m.warnings = append(*m.warnings, data.Warning{
			Kind:   data.WarnSeamPolicyIgnored,
			Layer:  -1,
			Detail: "seam_position " + string(m.options.Print.SeamPosition) + " is reduced to back",
		})
	}

	for layerNr, l := range layers {
		cl := clip.NewClipper()

		var walls [][]data.LayerPart

		for k := 0; k < wallCount; k++ {
			// Each wall ring offsets the original outline directly
			// (spec.md §4.4: walls[k] = outline.offset(-lineWidth/2 -
			// k*lineWidth)), not the previous ring - so one empty ring
			// does not necessarily imply the next would be empty too,
			// though in practice it almost always does.
			ring := cl.Offset(l.LayerParts(), -lineWidth/2-data.Micrometer(k)*lineWidth)

			if len(ring) == 0 {
				*m.warnings = append(*m.warnings, data.Warning{
					Kind:   data.WarnWallOffsetEmpty,
					Layer:  layerNr,
					Detail: "inward offset produced empty geometry; remaining walls skipped",
				})
				break
			}
			walls = append(walls, ring)
		}

		innerArea := cl.Offset(l.LayerParts(), -data.Micrometer(wallCount)*lineWidth)

		newLayer := newExtendedLayer(l)
		newLayer.attributes[attrWalls] = walls
		newLayer.attributes[attrInnerArea] = innerArea
		layers[layerNr] = newLayer
	}

	return nil
}
