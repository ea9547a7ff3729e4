// This file provides renderers for gcode injected at specific layers.
package renderer

import (
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
)

// PreLayer adds the starting gcode on layer 0 and sets the first-layer
// extrude speed override there, switches to the regular extrusion
// thickness and clears that override on layer 1, and turns the fan on at
// fan_kick_in_layer.
type PreLayer struct{}

func (PreLayer) Init(model data.OptimizedModel) {}

func (PreLayer) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	b.AddComment("LAYER:%v", layerNr)
	b.AddComment("Z:%.3f", float64(z.ToMillimeter()))

	if layerNr == 0 {
		b.AddCommand("M107 ; disable fan")

		b.AddComment("SET_INITIAL_TEMP")
		b.AddCommand("M104 S%d ; start heating hot end", options.Filament.PrintTempFirstLayer)
		b.AddCommand("M190 S%d ; heat and wait for bed", options.Filament.BedTemp)
		b.AddCommand("M109 S%d ; wait for hot end temperature", options.Filament.PrintTempFirstLayer)

		if options.Printer.StartGCode != "" {
			b.AddComment("START_GCODE")
			b.AddCommand("%s", options.Printer.StartGCode)
		}
		b.AddCommand("G92 E0 ; reset extrusion distance")

		b.SetExtrusion(options.Print.InitialLayerHeight.ToMicrometer(), options.Printer.ExtrusionWidth)
		b.SetMoveSpeed(options.Print.Speed.Travel)
		b.SetExtrudeSpeedOverride(options.Print.Speed.FirstLayer)
	} else if layerNr == 1 {
		b.SetExtrusion(options.Print.LayerHeight.ToMicrometer(), options.Printer.ExtrusionWidth)
		b.DisableExtrudeSpeedOverride()
	}

	if fanSpeed := fanSpeedForLayer(options, layerNr); fanSpeed >= 0 {
		if fanSpeed == 0 {
			b.AddCommand("M107 ; disable fan")
		} else {
			b.AddCommand("M106 S%d ; change fan speed", scaleFanSpeed(fanSpeed))
		}
	}

	if layerNr == 1 {
		b.AddComment("SET_TEMP")
		b.AddCommand("M140 S%d", options.Filament.BedTemp)
		b.AddCommand("M104 S%d", options.Filament.PrintTemp)
	}

	return nil
}

// fanSpeedForLayer returns the percentage fan speed active at layerNr, or
// -1 if no change should be emitted this layer (the fan speed is constant
// from fan_kick_in_layer onward, with fan_first_layer applied before it).
func fanSpeedForLayer(options *data.Options, layerNr int) int {
	switch {
	case layerNr == 0:
		return options.Filament.FanSpeedFirstLayer
	case layerNr == options.Filament.FanKickInLayer:
		return options.Filament.FanSpeed
	default:
		return -1
	}
}

func scaleFanSpeed(percent int) int {
	return percent * 255 / 100
}

// PostLayer adds the ending gcode at the last layer.
type PostLayer struct{}

func (PostLayer) Init(model data.OptimizedModel) {}

func (PostLayer) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != maxLayer {
		return nil
	}

	b.AddComment("END_GCODE")
	b.AddCommand("M107 ; disable fan")

	if options.Printer.EndGCode != "" {
		b.AddCommand("%s", options.Printer.EndGCode)
	}

	b.AddCommand("M104 S0 ; hot end off")
	b.AddCommand("M140 S0 ; bed off")
	b.AddCommand("G28 X0 ; home X axis to get head out of the way")
	b.AddCommand("M84 ; steppers off")

	return nil
}
