// Package gcode implements the G-code Emitter (spec.md §4.7): a Builder
// accumulating text plus extruder/retraction state, and a Generator
// driving it layer by layer through a chain of Renderers - the same
// composition shape as the teacher's gcode.NewGenerator/gcode.WithRenderer
// call in goslice.go.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/kasynel/slicer/data"
)

// Renderer emits the gcode for one concern of one layer (walls, skin,
// infill, support, brim, skirt, or layer pre/post-amble). Renderers are
// composed in emission order by Generator.
type Renderer interface {
	Init(model data.OptimizedModel)
	Render(b *Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error
}

// Builder accumulates gcode text while tracking the extruder-state
// machine of spec.md §4.7: current position, extrusion-per-millimeter
// (derived from line width, layer height and filament diameter),
// feed rate selection, and retraction/z-hop bookkeeping.
type Builder struct {
	sb strings.Builder

	options *data.Options

	position  data.MicroVec3
	hasMoved  bool
	currentE  float64 // accumulated filament distance, mm
	extrusionPerMM float64 // mm filament per mm of extrusion move, for the current line_width/layer_height

	extrudeSpeed         float64 // mm/min
	extrudeSpeedOverride *float64
	moveSpeed            float64 // mm/min

	retractionSpeed  float64 // mm/min
	retractionAmount float64 // mm
	retracted        bool
	zHopped          data.Micrometer
	nonStop          bool
}

// NewBuilder returns a Builder with retraction/speed state seeded from
// options. Extrusion-per-millimeter must be set separately via
// SetExtrusion once layer_height/line_width for the current layer is
// known (spec.md §4.7's first-layer-thickness special case).
func NewBuilder(options *data.Options) *Builder {
	b := &Builder{options: options}
	b.SetRetractionSpeed(float64(options.Print.Retraction.Speed))
	b.SetRetractionAmount(float64(options.Print.Retraction.Distance))
	return b
}

// SetExtrusion recomputes the filament-distance-per-move-distance ratio
// for the given layer thickness and line width, per spec.md's invariant 5:
//
//	dE/d = line_width * layer_height / (pi * (filament_diameter/2)^2)
func (b *Builder) SetExtrusion(layerHeight, lineWidth data.Micrometer) {
	radius := float64(b.options.Printer.FilamentDiameter) / 2
	filamentArea := math.Pi * radius * radius
	b.extrusionPerMM = float64(lineWidth.ToMillimeter()) * float64(layerHeight.ToMillimeter()) / filamentArea
}

func (b *Builder) SetExtrudeSpeed(mmPerSecond data.Millimeter) { b.extrudeSpeed = float64(mmPerSecond) * 60 }
func (b *Builder) SetMoveSpeed(mmPerSecond data.Millimeter)    { b.moveSpeed = float64(mmPerSecond) * 60 }
func (b *Builder) SetRetractionSpeed(mmPerSecond float64)      { b.retractionSpeed = mmPerSecond * 60 }
func (b *Builder) SetRetractionAmount(mm float64)              { b.retractionAmount = mm }

// SetExtrudeSpeedOverride forces every subsequent extrude move to use the
// given feed rate (mm/s) regardless of path kind, until
// DisableExtrudeSpeedOverride is called - used for first_layer_speed.
func (b *Builder) SetExtrudeSpeedOverride(mmPerSecond data.Millimeter) {
	v := float64(mmPerSecond) * 60
	b.extrudeSpeedOverride = &v
}

func (b *Builder) DisableExtrudeSpeedOverride() { b.extrudeSpeedOverride = nil }

// SetNonStop marks whether the current layer is being spiralized. While
// set, Travel never retracts (spec.md §4.7: "not in non-stop mode") -
// vase mode relies on consecutive spiral seams coinciding in XY instead.
func (b *Builder) SetNonStop(nonStop bool) { b.nonStop = nonStop }

// AddComment appends a ";"-prefixed comment line.
func (b *Builder) AddComment(format string, args ...interface{}) {
	b.sb.WriteString("; ")
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n")
}

// AddCommand appends a raw gcode command line verbatim.
func (b *Builder) AddCommand(format string, args ...interface{}) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n")
}

// feedRate returns the active feed rate for an extrude move in mm/min,
// honoring SetExtrudeSpeedOverride.
func (b *Builder) feedRate() float64 {
	if b.extrudeSpeedOverride != nil {
		return *b.extrudeSpeedOverride
	}
	return b.extrudeSpeed
}

// Retract emits a retraction move (negative E, no XY motion) and, if
// retraction_z_hop is configured, lifts Z by that amount. It is a no-op if
// retraction is disabled or already retracted.
func (b *Builder) Retract() {
	if !b.options.Print.Retraction.Enabled || b.retracted {
		return
	}
	b.currentE -= b.retractionAmount
	b.AddCommand("G1 F%.3f E%.5f", b.retractionSpeed, b.currentE)
	b.retracted = true

	if hop := b.options.Print.Retraction.ZHop.ToMicrometer(); hop > 0 {
		b.zHopped = hop
		b.AddCommand("G1 Z%.3f", float64((b.position.Z()+hop).ToMillimeter()))
	}
}

// Unretract reverses a prior Retract, including retraction_extra_prime, and
// lowers Z back out of any z-hop. No-op if not currently retracted.
func (b *Builder) Unretract() {
	if !b.options.Print.Retraction.Enabled || !b.retracted {
		return
	}
	if b.zHopped > 0 {
		b.AddCommand("G1 Z%.3f", float64(b.position.Z().ToMillimeter()))
		b.zHopped = 0
	}
	b.currentE += b.retractionAmount + float64(b.options.Print.Retraction.ExtraPrime)
	b.AddCommand("G1 F%.3f E%.5f", b.retractionSpeed, b.currentE)
	b.retracted = false
}

// Travel moves to p at height z without extruding. If the travel distance
// is at least retraction_min_distance, it retracts first and unretracts
// once the next extrude move begins; no retraction happens in non-stop
// mode or before the builder's first move.
func (b *Builder) Travel(p data.MicroPoint, z data.Micrometer) {
	to := data.NewMicroVec3(p.X(), p.Y(), z)

	if b.hasMoved && !b.nonStop {
		distance := to.To2D().Sub(b.position.To2D()).Size().ToMillimeter()
		if float64(distance) >= float64(b.options.Print.Retraction.MinDistance) {
			b.Retract()
		}
	}

	b.AddCommand("G0 F%.3f X%.3f Y%.3f", b.moveSpeed, float64(p.X().ToMillimeter()), float64(p.Y().ToMillimeter()))
	b.position = to
	b.hasMoved = true
}

// Extrude moves to p at height z while extruding, unretracting first if
// needed.
func (b *Builder) Extrude(p data.MicroPoint, z data.Micrometer) {
	to := data.NewMicroVec3(p.X(), p.Y(), z)

	b.Unretract()

	var distance data.Millimeter
	if b.hasMoved {
		distance = to.To2D().Sub(b.position.To2D()).Size().ToMillimeter()
	}
	b.currentE += float64(distance) * b.extrusionPerMM

	b.AddCommand("G1 F%.3f X%.3f Y%.3f Z%.3f E%.5f", b.feedRate(), float64(p.X().ToMillimeter()), float64(p.Y().ToMillimeter()), float64(z.ToMillimeter()), b.currentE)
	b.position = to
	b.hasMoved = true
}

// ExtrudeSpiral emits a continuous-Z extrude move for non-stop/vase mode
// (spec.md §4.6): z is the interpolated height at this point along the
// wall's perimeter, distinct from the layer's base Z.
func (b *Builder) ExtrudeSpiral(p data.MicroPoint, z data.Micrometer) {
	b.Extrude(p, z)
}

// String returns the accumulated gcode text.
func (b *Builder) String() string {
	return b.sb.String()
}

// LastPosition returns the XY of the last move emitted (zero value if none
// has been emitted yet - see HasMoved).
func (b *Builder) LastPosition() data.MicroPoint {
	return b.position.To2D()
}

// HasMoved reports whether any Travel or Extrude has been emitted yet.
func (b *Builder) HasMoved() bool {
	return b.hasMoved
}
