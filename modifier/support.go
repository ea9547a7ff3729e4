// This file provides modifiers needed to generate support. It contains one
// supportDetectorModifier and a supportGeneratorModifier which is meant to
// run after the detector, so that it can use the information of all layers
// at once.
package modifier

import (
	"math"

	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

type supportDetectorModifier struct {
	handler.Named
	options  *data.Options
	warnings *[]data.Warning
}

// NewSupportDetectorModifier calculates the areas which need support and
// saves them as the "support" attribute (spec.md §4.4):
//
//	overhang(i) = O_i - dilate(O_{i-1}, max_safe_overhang)
//	max_safe_overhang = layer_height / tan(threshold_angle)
//
// "the previous layer is offset by the calculated distance and then
// subtracted from the current layer; all areas that remain have a higher
// angle than the threshold and need to be supported."
func NewSupportDetectorModifier(options *data.Options, warnings *[]data.Warning) handler.LayerModifier {
	return &supportDetectorModifier{
		Named:    handler.Named{Name: "SupportDetector"},
		options:  options,
		warnings: warnings,
	}
}

func (m *supportDetectorModifier) Init(_ data.OptimizedModel) {}

func (m *supportDetectorModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Support.Enabled {
		return nil
	}

	if m.options.Print.Support.XYDistance > 0 {
		*m.warnings = append(*m.warnings, data.Warning{
			Kind:   data.WarnSupportParameterIgnored,
			Layer:  -1,
			Detail: "support_xy_distance is accepted but not applied",
		})
	}

	layerHeight := m.options.Print.LayerHeight.ToMicrometer()
	maxSafeOverhang := data.Micrometer(float64(layerHeight) / math.Tan(data.ToRadians(m.options.Print.Support.ThresholdAngle)))

	cl := clip.NewClipper()

	// Ignore the top layer: it can never overhang past a layer above it.
	for layerNr := 0; layerNr < len(layers)-1; layerNr++ {
		dilated := cl.Offset(layers[layerNr].LayerParts(), maxSafeOverhang)

		overhang, ok := cl.Difference(layers[layerNr+1].LayerParts(), dilated)
		if !ok {
			return data.ErrInternalGeometry
		}
		if len(overhang) == 0 {
			continue
		}

		newLayer := newExtendedLayer(layers[layerNr+1])
		newLayer.attributes[attrSupport] = overhang
		layers[layerNr+1] = newLayer
	}

	return nil
}

type supportGeneratorModifier struct {
	handler.Named
	options *data.Options
}

// NewSupportGeneratorModifier generates the actual support areas out of the
// per-layer overhangs found by supportDetectorModifier. It grows these
// areas down till the first layer or until they touch the model (grown
// outward by support_z_distance, the one support parameter spec.md §9
// records as applied), and splits off the top support_interface_layers
// worth into a separate "supportInterface" attribute.
func NewSupportGeneratorModifier(options *data.Options) handler.LayerModifier {
	return &supportGeneratorModifier{
		Named:   handler.Named{Name: "SupportGenerator"},
		options: options,
	}
}

func (m *supportGeneratorModifier) Init(_ data.OptimizedModel) {}

func (m *supportGeneratorModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.Support.Enabled {
		return nil
	}

	gap := m.options.Print.Support.ZDistance.ToMicrometer()
	var lastSupport []data.LayerPart

	// For each layer starting at the 2nd-from-top layer (the top layer
	// never needs support) down to layer 0.
	for layerNr := len(layers) - 2; layerNr >= 0; layerNr-- {
		// supportFromAbove is what has already accumulated coming down
		// from the layer above; on the first iteration nothing has
		// accumulated yet, so seed it from that layer's own overhang.
		supportFromAbove := lastSupport
		if supportFromAbove == nil {
			var err error
			supportFromAbove, err = PartsAttribute(layers[layerNr+1], attrSupport)
			if err != nil {
				return err
			}
		}

		// ownOverhang is the overhang the detector found at this layer
		// itself, which also needs a support column starting here.
		ownOverhang, err := PartsAttribute(layers[layerNr], attrSupport)
		if err != nil {
			return err
		}

		if len(supportFromAbove) == 0 && len(ownOverhang) == 0 {
			lastSupport = nil
			continue
		}

		cl := clip.NewClipper()

		result, ok := cl.Union(supportFromAbove, ownOverhang)
		if !ok {
			return data.ErrInternalGeometry
		}

		biggerLayer := cl.Offset(layers[layerNr].LayerParts(), gap)
		actualSupport, ok := cl.Difference(result, biggerLayer)
		if !ok {
			return data.ErrInternalGeometry
		}

		var interfaceParts, actualWithoutInterface []data.LayerPart
		if len(actualSupport) > 0 {
			interfaceLayers := m.options.Print.Support.InterfaceLayers
			layerNrAboveInterface := layerNr + interfaceLayers
			if layerNrAboveInterface >= len(layers) {
				layerNrAboveInterface = len(layers) - 1
			}

			supportAboveInterface, err := PartsAttribute(layers[layerNrAboveInterface], attrSupportFull)
			if err != nil {
				return err
			}

			if m.options.Print.Support.InterfaceEnabled && interfaceLayers > 0 {
				interfaceParts, ok = cl.Difference(actualSupport, supportAboveInterface)
				if !ok {
					return data.ErrInternalGeometry
				}
				actualWithoutInterface, ok = cl.Difference(actualSupport, interfaceParts)
				if !ok {
					return data.ErrInternalGeometry
				}
			} else {
				actualWithoutInterface = actualSupport
			}

			if brim, err := BrimOuterDimension(layers[layerNr]); err == nil && len(brim) > 0 {
				interfaceParts, _ = cl.Difference(interfaceParts, brim)
				actualWithoutInterface, _ = cl.Difference(actualWithoutInterface, brim)
			}
		}

		lastSupport = actualSupport

		newLayer := newExtendedLayer(layers[layerNr])
		if len(actualSupport) > 0 {
			newLayer.attributes[attrSupportFull] = actualSupport
		}
		if len(interfaceParts) > 0 {
			newLayer.attributes[attrSupportInterface] = interfaceParts
		}
		if len(actualWithoutInterface) > 0 {
			newLayer.attributes[attrSupport] = actualWithoutInterface
		} else {
			newLayer.attributes[attrSupport] = []data.LayerPart{}
		}
		layers[layerNr] = newLayer
	}

	return nil
}
