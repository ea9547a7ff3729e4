package renderer

import (
	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
	"github.com/kasynel/slicer/modifier"
)

// PatternFactory builds the Pattern to fill a region given its bounding
// box and layer index (needed to alternate the rotation base per
// spec.md §9's infill_angle decision), matching the teacher's
// topBottomPatternFactory/PatternSetup closure shape. It may return nil,
// meaning "skip this attribute's region".
type PatternFactory func(min, max data.MicroPoint, layerNr int) clip.Pattern

// Infill is a generic region-fill renderer, reused across skin
// (top/bottom), sparse infill, and support/support-interface by pointing
// AttrName and PatternSetup at the right modifier attribute and pattern -
// exactly the teacher's single Infill renderer composed multiple times in
// goslice.go with different AttrName/PatternSetup/Comments.
type Infill struct {
	PatternSetup PatternFactory
	AttrName     string
	Comments     []string
	Speed        func(options *data.Options) data.Millimeter
}

func (r *Infill) Init(_ data.OptimizedModel) {}

func (r *Infill) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	parts, err := modifier.PartsAttribute(layer, r.AttrName)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}

	if layerNr > 0 && r.Speed != nil {
		b.SetExtrudeSpeed(r.Speed(options))
	}

	cl := clip.NewClipper()

	for _, comment := range r.Comments {
		b.AddComment("%s", comment)
	}

	for _, part := range parts {
		min, max := part.Outline().Bounds()
		pattern := r.PatternSetup(min, max, layerNr)
		if pattern == nil {
			continue
		}

		lines := cl.Fill(part, pattern)
		if len(lines) == 0 {
			continue
		}
		if pattern.Closed() {
			emitClosed(b, lines, z)
		} else {
			emitOpen(b, lines, z)
		}
	}

	return nil
}
