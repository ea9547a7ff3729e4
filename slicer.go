// Package slicer composes the seven pipeline stages of spec.md §2
// (Mesh Preparation, Layer Planner, Cross-Sectioner, Region Builder, Path
// Synthesizer, Layer Orderer, G-code Emitter) into the single entry point
// described in spec.md §5, the way the teacher's goslice.go composes
// GoSlice.NewGoSlice/Process.
package slicer

import (
	"github.com/kasynel/slicer/clip"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/gcode"
	"github.com/kasynel/slicer/gcode/renderer"
	"github.com/kasynel/slicer/handler"
	"github.com/kasynel/slicer/modifier"
	"github.com/kasynel/slicer/optimizer"
	slicestage "github.com/kasynel/slicer/slicer/slice"
	"github.com/kasynel/slicer/writer"
)

// Job is the result of a successful Slice call.
type Job struct {
	GCode      string
	LayerCount int
}

// Engine combines every pipeline stage implementation, built by NewEngine
// with the options' configured parameters.
type Engine struct {
	options   *data.Options
	optimizer handler.ModelOptimizer
	slicer    handler.ModelSlicer
	modifiers []handler.LayerModifier
	generator handler.GCodeGenerator
	writer    handler.GCodeWriter
	warnings  *[]data.Warning
	cancel    *handler.CancelToken
}

// NewEngine builds an Engine with all built-in implementations wired per
// SPEC_FULL.md's ambient/domain stacks, mirroring the teacher's
// NewGoSlice composition in goslice.go.
func NewEngine(options *data.Options, cancel *handler.CancelToken, progress handler.ProgressFunc) *Engine {
	warnings := &[]data.Warning{}

	e := &Engine{
		options:   options,
		optimizer: optimizer.NewOptimizer(options),
		slicer:    slicestage.NewSlicer(options, cancel, progress, warnings),
		warnings:  warnings,
		cancel:    cancel,
	}

	e.modifiers = []handler.LayerModifier{
		modifier.NewPerimeterModifier(options, warnings),
		modifier.NewSkinModifier(options),
		modifier.NewInfillModifier(options),
		modifier.NewBrimModifier(options),
		modifier.NewSkirtModifier(options),
		modifier.NewSupportDetectorModifier(options, warnings),
		modifier.NewSupportGeneratorModifier(options),
		modifier.NewSpiralizeModifier(options),
	}

	topBottomFactory := func(min, max data.MicroPoint, layerNr int) clip.Pattern {
		angle := float64(0)
		if layerNr%2 == 1 {
			angle = 90
		}
		return clip.NewLinearPattern(options.Printer.ExtrusionWidth, options.Printer.ExtrusionWidth, min, max, angle, true, false)
	}

	sparseInfillFactory := func(min, max data.MicroPoint, layerNr int) clip.Pattern {
		angle := modifier.InfillAngleForLayer(options.Print.InfillRotationDegree, layerNr)
		switch options.Print.InfillPattern {
		case data.InfillGrid:
			spacing := modifier.InfillSpacing(options.Printer.ExtrusionWidth, options.Print.InfillPercent, data.InfillGrid)
			if spacing <= 0 {
				return nil
			}
			return clip.NewGridPattern(options.Printer.ExtrusionWidth, spacing, min, max, angle)
		case data.InfillHoneycomb:
			edge := modifier.HoneycombEdge(options.Printer.ExtrusionWidth, options.Print.InfillPercent)
			if edge <= 0 {
				return nil
			}
			return clip.NewHoneycombPattern(edge, min, max, angle)
		default:
			spacing := modifier.InfillSpacing(options.Printer.ExtrusionWidth, options.Print.InfillPercent, data.InfillLines)
			if spacing <= 0 {
				return nil
			}
			return clip.NewLinearPattern(options.Printer.ExtrusionWidth, spacing, min, max, angle, true, false)
		}
	}

	supportFactory := func(pattern data.SupportPattern, zigzag bool) renderer.PatternFactory {
		return func(min, max data.MicroPoint, layerNr int) clip.Pattern {
			spacing := modifier.InfillSpacing(options.Printer.ExtrusionWidth, options.Print.Support.Density, data.InfillPattern(pattern))
			if spacing <= 0 {
				return nil
			}
			switch pattern {
			case data.SupportGrid:
				return clip.NewGridPattern(options.Printer.ExtrusionWidth, spacing, min, max, 0)
			default:
				return clip.NewLinearPattern(options.Printer.ExtrusionWidth, spacing, min, max, 0, zigzag, zigzag)
			}
		}
	}

	// Support/support-interface render before skin/sparse-infill here,
	// matching goslice.go's renderer order exactly; spec.md §4.6 lists the
	// step order as skin -> fill -> support. No invariant depends on the
	// ordering (each renderer only reads its own attribute), so this stays
	// faithful to the teacher rather than the spec's listed order.
	e.generator = gcode.NewGenerator(
		options,
		gcode.WithRenderer(renderer.PreLayer{}),
		gcode.WithRenderer(renderer.Skirt{}),
		gcode.WithRenderer(renderer.Brim{}),
		gcode.WithRenderer(renderer.Perimeter{}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: supportFactory(options.Print.Support.Pattern, options.Print.Support.Pattern == data.SupportZigzag),
			AttrName:     "support",
			Comments:     []string{"TYPE:SUPPORT"},
			Speed:        func(o *data.Options) data.Millimeter { return o.Print.Speed.Infill },
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: supportFactory(options.Print.Support.Pattern, false),
			AttrName:     "supportInterface",
			Comments:     []string{"TYPE:SUPPORT"},
			Speed:        func(o *data.Options) data.Millimeter { return o.Print.Speed.Infill },
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: topBottomFactory,
			AttrName:     "skinBottom",
			Comments:     []string{"TYPE:SKIN"},
			Speed:        func(o *data.Options) data.Millimeter { return o.Print.Speed.TopBottom },
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: topBottomFactory,
			AttrName:     "skinTop",
			Comments:     []string{"TYPE:SKIN"},
			Speed:        func(o *data.Options) data.Millimeter { return o.Print.Speed.TopBottom },
		}),
		gcode.WithRenderer(&renderer.Infill{
			PatternSetup: sparseInfillFactory,
			AttrName:     "infill",
			Comments:     []string{"TYPE:FILL"},
			Speed:        func(o *data.Options) data.Millimeter { return o.Print.Speed.Infill },
		}),
		gcode.WithRenderer(renderer.PostLayer{}),
	)

	e.writer = writer.Writer()

	return e
}

// Slice runs every stage of the pipeline against mesh, returning the
// finished Job and any non-fatal warnings, per spec.md §5's
// slice(mesh, params, progress_cb, cancel_token) entry point. On error,
// no output file is written.
func (e *Engine) Slice(mesh *data.Mesh, outputPath string) (*Job, []data.Warning, error) {
	optimizedModel, err := e.optimizer.Optimize(mesh)
	if err != nil {
		return nil, nil, err
	}

	layers, err := e.slicer.Slice(optimizedModel)
	if err != nil {
		return nil, nil, err
	}

	for _, m := range e.modifiers {
		if e.cancel.Cancelled() {
			return nil, nil, data.ErrCancelled
		}
		m.Init(optimizedModel)
		if err := m.Modify(layers); err != nil {
			return nil, nil, err
		}
	}

	e.generator.Init(optimizedModel)
	text, err := e.generator.Generate(layers)
	if err != nil {
		return nil, nil, err
	}

	if outputPath != "" {
		if err := e.writer.Write(text, outputPath); err != nil {
			return nil, nil, err
		}
	}

	return &Job{GCode: text, LayerCount: len(layers)}, *e.warnings, nil
}
