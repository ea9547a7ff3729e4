package modifier

import (
	"math"

	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// brimModifier implements the Region Builder's brim derivation of
// spec.md §4.4: N = ceil(brim_width/line_width) successive outward offsets
// of layer 0's outline, at line_width/2, 3*line_width/2, .... Only layer 0
// carries a brim attribute.
type brimModifier struct {
	handler.Named
	options *data.Options
	hull    data.Path
}

// NewBrimModifier returns the built-in brim modifier.
func NewBrimModifier(options *data.Options) handler.LayerModifier {
	return &brimModifier{Named: handler.Named{Name: "Brim"}, options: options}
}

// Init records the model's convex hull so Modify can anchor the first ring
// on it rather than on layer 0's own outline alone: a concave or
// multi-body layer 0 would otherwise let the brim dip into a notch or
// split into disjoint islands instead of forming one outer loop.
func (m *brimModifier) Init(model data.OptimizedModel) {
	if model != nil {
		m.hull = model.ConvexHull()
	}
}

func (m *brimModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.BrimEnabled || len(layers) == 0 {
		return nil
	}

	lineWidth := m.options.LineWidth()
	ringCount := int(math.Ceil(float64(m.options.Print.BrimWidth.ToMicrometer()) / float64(lineWidth)))
	if ringCount <= 0 {
		return nil
	}

	cl := clip.NewClipper()
	outline := brimAnchor(cl, layers[0].LayerParts(), m.hull)

	var rings []data.LayerPart
	for k := 0; k < ringCount; k++ {
		offset := lineWidth/2 + data.Micrometer(k)*lineWidth
		ring := cl.Offset(outline, offset)
		rings = append(rings, ring...)
	}

	newLayer := newExtendedLayer(layers[0])
	newLayer.attributes[attrBrim] = rings
	layers[0] = newLayer

	return nil
}
