// Package modifier implements the Region Builder of spec.md §4.4 as a
// sequence of handler.LayerModifier passes, exactly as the teacher
// composes perimeter/infill/brim/support modifiers in goslice.go. Each
// modifier reads the full layer slice and may replace any PartitionedLayer
// with an extendedLayer carrying additional named attributes for later
// modifiers and the G-code renderers to consume.
package modifier

import (
	"errors"
	"fmt"

	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
)

// Attribute names used across modifiers and renderers. Kept as constants
// (rather than the teacher's inline string literals) since this module has
// more of them than the teacher's narrower pipeline.
const (
	attrWalls            = "walls"     // [][]data.LayerPart, one per wall ring index
	attrInnerArea        = "innerArea" // []data.LayerPart
	attrSkinTop          = "skinTop"
	attrSkinBottom       = "skinBottom"
	attrInfill           = "infill"
	attrBrim             = "brim"
	attrSkirt            = "skirt"
	attrSupport          = "support"
	attrSupportFull      = "fullSupport"
	attrSupportInterface = "supportInterface"
)

// extendedLayer wraps an existing PartitionedLayer, copying its attribute
// bag so modifiers can add new entries without mutating a layer another
// modifier (or the caller) still holds a reference to - the same pattern
// as the teacher's newExtendedLayer in modifier/support.go.
type extendedLayer struct {
	data.PartitionedLayer
	attributes map[string]interface{}
}

func newExtendedLayer(l data.PartitionedLayer) *extendedLayer {
	attrs := map[string]interface{}{}
	for k, v := range l.Attributes() {
		attrs[k] = v
	}
	return &extendedLayer{PartitionedLayer: l, attributes: attrs}
}

func (l *extendedLayer) Attributes() map[string]interface{} {
	return l.attributes
}

// PartsAttribute extracts a []data.LayerPart attribute from layer. If the
// attribute is absent, (nil, nil) is returned; if present with the wrong
// type, an error is returned - mirroring the teacher's FullSupport helper.
func PartsAttribute(layer data.PartitionedLayer, name string) ([]data.LayerPart, error) {
	attr, ok := layer.Attributes()[name]
	if !ok {
		return nil, nil
	}
	parts, ok := attr.([]data.LayerPart)
	if !ok {
		return nil, errors.New("modifier: attribute " + name + " has the wrong type")
	}
	return parts, nil
}

// WallsAttribute extracts the per-ring wall attribute ([][]data.LayerPart,
// indexed by wall number) from layer.
func WallsAttribute(layer data.PartitionedLayer) ([][]data.LayerPart, error) {
	attr, ok := layer.Attributes()[attrWalls]
	if !ok {
		return nil, nil
	}
	walls, ok := attr.([][]data.LayerPart)
	if !ok {
		return nil, errors.New("modifier: attribute walls has the wrong type")
	}
	return walls, nil
}

// BrimOuterDimension returns the brim region of layer, if any, matching
// the teacher's BrimOuterDimension helper referenced from support.go (used
// there to keep support from overlapping the brim).
func BrimOuterDimension(layer data.PartitionedLayer) ([]data.LayerPart, error) {
	return PartsAttribute(layer, attrBrim)
}

// toLayerParts converts a whole PartitionedLayer to a flat []data.LayerPart
// for feeding into clip.Clipper boolean/offset operations.
func toLayerParts(layer data.PartitionedLayer) []data.LayerPart {
	return layer.LayerParts()
}

// brimAnchor returns outline unioned with the model's convex hull, so the
// brim/skirt modifiers' first ring is offset from the model's true outer
// footprint rather than layer 0's own outline alone. A concave layer 0
// outline (a notch) or a multi-body layer 0 (several disjoint islands)
// would otherwise let offsetting dip inward or produce separate brim/skirt
// loops per body instead of one loop anchored on the model's widest extent.
func brimAnchor(cl clip.Clipper, outline []data.LayerPart, hull data.Path) []data.LayerPart {
	if len(hull) == 0 {
		return outline
	}
	hullPart := data.NewUnknownLayerPart(hull, nil)
	anchored, ok := cl.Union(outline, []data.LayerPart{hullPart})
	if !ok {
		return outline
	}
	return anchored
}

func wrapf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
