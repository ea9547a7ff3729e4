package modifier

import (
	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

// skinModifier implements the top/bottom skin derivation of spec.md §4.4:
//
//	skin_bottom(i) = inner_area(i) - intersection(O[i-bottom..i-1])
//	skin_top(i)    = inner_area(i) - intersection(O[i+1..i+top])
//
// expanded outward by skin_overlap% of line_width, then clipped back to
// inner_area, so the overlap only grows skin inside inner_area and never
// reaches into the innermost wall band.
type skinModifier struct {
	handler.Named
	options *data.Options
}

// NewSkinModifier returns the built-in top/bottom skin modifier. It must
// run after NewPerimeterModifier, which produces the inner_area attribute
// it reads.
func NewSkinModifier(options *data.Options) handler.LayerModifier {
	return &skinModifier{Named: handler.Named{Name: "Skin"}, options: options}
}

func (m *skinModifier) Init(_ data.OptimizedModel) {}

func (m *skinModifier) Modify(layers []data.PartitionedLayer) error {
	top := m.options.Print.TopLayers
	bottom := m.options.Print.BottomLayers
	overlap := data.Micrometer(m.options.Print.SkinOverlapPercent) * m.options.LineWidth() / 100

	// Outlines are needed for every layer up front since skin windows look
	// both forward and backward (spec.md's Design Notes §9: precompute and
	// hold all outlines, build regions in a forward pass).
	outlines := make([][]data.LayerPart, len(layers))
	for i, l := range layers {
		outlines[i] = l.LayerParts()
	}

	for i, l := range layers {
		innerArea, err := PartsAttribute(l, attrInnerArea)
		if err != nil {
			return err
		}
		if len(innerArea) == 0 {
			continue
		}

		cl := clip.NewClipper()

		bottomSkin, err := skinAgainstNeighbors(cl, innerArea, outlines, i, -1, -bottom)
		if err != nil {
			return wrapf("modifier: skin: bottom at layer %d: %w", i, err)
		}
		topSkin, err := skinAgainstNeighbors(cl, innerArea, outlines, i, 1, top)
		if err != nil {
			return wrapf("modifier: skin: top at layer %d: %w", i, err)
		}

		if overlap > 0 {
			bottomSkin = cl.Offset(bottomSkin, overlap)
			topSkin = cl.Offset(topSkin, overlap)
		}
		bottomSkin, ok := cl.Intersection(bottomSkin, innerArea)
		if !ok {
			return data.ErrInternalGeometry
		}
		topSkin, ok = cl.Intersection(topSkin, innerArea)
		if !ok {
			return data.ErrInternalGeometry
		}

		newLayer := newExtendedLayer(l)
		newLayer.attributes[attrSkinBottom] = bottomSkin
		newLayer.attributes[attrSkinTop] = topSkin
		layers[i] = newLayer
	}

	return nil
}

// skinAgainstNeighbors returns innerArea minus the intersection of the
// neighboring layer outlines in the window [i+dir, i+dir*count], clamped
// to the available layer range. A zero-length window (top_layers or
// bottom_layers == 0) means there is no skin on that face at all: spec.md
// §4.4's formula inner_area - intersection(O[j in empty set]) subtracts the
// universe, i.e. empty. Only when the window itself runs off the model
// (there is no solid layer to intersect against, so for i < bottom_layers
// or i >= len-top_layers) does the whole innerArea become skin.
func skinAgainstNeighbors(cl clip.Clipper, innerArea []data.LayerPart, outlines [][]data.LayerPart, i, dir, count int) ([]data.LayerPart, error) {
	if count < 0 {
		count = -count
	}
	if count == 0 {
		return nil, nil
	}

	var window [][]data.LayerPart
	for n := 1; n <= count; n++ {
		idx := i + dir*n
		if idx < 0 || idx >= len(outlines) {
			// Window runs off the model: there is no solid layer there,
			// so the entire inner area needs skin.
			return innerArea, nil
		}
		window = append(window, outlines[idx])
	}

	intersection := window[0]
	ok := true
	for _, o := range window[1:] {
		intersection, ok = cl.Intersection(intersection, o)
		if !ok {
			return nil, data.ErrInternalGeometry
		}
	}

	result, ok := cl.Difference(innerArea, intersection)
	if !ok {
		return nil, data.ErrInternalGeometry
	}
	return result, nil
}
