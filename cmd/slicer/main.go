// Command slicer is the host-side CLI adapter around the slicing core: it
// loads an STL file, builds Options from flags, runs the pipeline via
// slicer.NewEngine, and reports timing and warnings - the CLI-only
// counterpart of the teacher's cmd/goslice/slicer.go, with the actual
// pipeline composition now living in the root package so library
// consumers don't have to go through a CLI.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hschendel/stl"
	flag "github.com/spf13/pflag"

	"github.com/kasynel/slicer"
	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

func main() {
	options := data.NewDefaultOptions()
	options.GoSlice.Logger = log.New(os.Stderr, "", log.LstdFlags)

	var inputPath, outputPath string

	flag.StringVarP(&inputPath, "input", "i", "", "input STL file (required)")
	flag.StringVarP(&outputPath, "output", "o", "", "output gcode file (default: <input>.gcode)")

	flag.Float64Var((*float64)(&options.Printer.BedWidth), "bed-width", float64(options.Printer.BedWidth), "bed width, mm")
	flag.Float64Var((*float64)(&options.Printer.BedDepth), "bed-depth", float64(options.Printer.BedDepth), "bed depth, mm")
	flag.Float64Var((*float64)(&options.Printer.BedHeight), "bed-height", float64(options.Printer.BedHeight), "bed height, mm")
	flag.IntVar(&options.Printer.BedTempMax, "bed-temp-max", options.Printer.BedTempMax, "maximum allowed bed temperature")
	flag.Float64Var((*float64)(&options.Printer.NozzleDiameter), "nozzle-diameter", float64(options.Printer.NozzleDiameter), "nozzle diameter, mm")
	flag.Float64Var((*float64)(&options.Printer.FilamentDiameter), "filament-diameter", float64(options.Printer.FilamentDiameter), "filament diameter, mm")
	flag.Float64Var((*float64)(&options.Printer.MaxPrintSpeed), "max-print-speed", float64(options.Printer.MaxPrintSpeed), "max print speed, mm/s")
	flag.StringVar(&options.Printer.StartGCode, "start-gcode", options.Printer.StartGCode, "printer start gcode template")
	flag.StringVar(&options.Printer.EndGCode, "end-gcode", options.Printer.EndGCode, "printer end gcode template")

	flag.Float64Var((*float64)(&options.Print.LayerHeight), "layer-height", float64(options.Print.LayerHeight), "layer height, mm")
	flag.Float64Var((*float64)(&options.Print.InitialLayerHeight), "first-layer-height", float64(options.Print.InitialLayerHeight), "first layer height, mm")
	flag.IntVar(&options.Print.WallCount, "wall-count", options.Print.WallCount, "number of wall loops")
	flag.BoolVar(&options.Print.OuterBeforeInner, "outer-before-inner", options.Print.OuterBeforeInner, "print outer wall before inner walls")
	flag.Float64Var(&options.Print.InfillPercent, "infill-density", options.Print.InfillPercent, "sparse infill density, percent")
	flag.StringVar((*string)(&options.Print.InfillPattern), "infill-pattern", string(options.Print.InfillPattern), "infill pattern: grid, lines, honeycomb")
	flag.Float64Var(&options.Print.InfillRotationDegree, "infill-angle", options.Print.InfillRotationDegree, "infill rotation angle, degrees")
	flag.IntVar(&options.Print.TopLayers, "top-layers", options.Print.TopLayers, "number of solid top layers")
	flag.IntVar(&options.Print.BottomLayers, "bottom-layers", options.Print.BottomLayers, "number of solid bottom layers")
	flag.BoolVar(&options.Print.BrimEnabled, "brim-enabled", options.Print.BrimEnabled, "enable brim")
	flag.Float64Var((*float64)(&options.Print.BrimWidth), "brim-width", float64(options.Print.BrimWidth), "brim width, mm")
	flag.BoolVar(&options.Print.Spiralize, "spiralize", options.Print.Spiralize, "non-stop/vase mode")

	flag.IntVar(&options.Print.LineWidthPercent, "line-width-pct", options.Print.LineWidthPercent, "line width as percent of nozzle diameter")
	flag.StringVar((*string)(&options.Print.SeamPosition), "seam-position", string(options.Print.SeamPosition), "seam position: back, random, sharpest")
	flag.IntVar(&options.Print.InfillOverlapPercent, "infill-overlap", options.Print.InfillOverlapPercent, "infill overlap, percent of line width")
	flag.IntVar(&options.Print.SkinOverlapPercent, "skin-overlap", options.Print.SkinOverlapPercent, "skin overlap, percent of line width")

	flag.BoolVar(&options.Print.Retraction.Enabled, "retraction-enabled", options.Print.Retraction.Enabled, "enable retraction")
	flag.Float64Var((*float64)(&options.Print.Retraction.Distance), "retraction-distance", float64(options.Print.Retraction.Distance), "retraction distance, mm")
	flag.Float64Var((*float64)(&options.Print.Retraction.Speed), "retraction-speed", float64(options.Print.Retraction.Speed), "retraction speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Retraction.MinDistance), "retraction-min-distance", float64(options.Print.Retraction.MinDistance), "minimum travel distance to trigger retraction, mm")
	flag.Float64Var((*float64)(&options.Print.Retraction.ExtraPrime), "retraction-extra-prime", float64(options.Print.Retraction.ExtraPrime), "extra prime distance after unretract, mm")
	flag.Float64Var((*float64)(&options.Print.Retraction.ZHop), "retraction-z-hop", float64(options.Print.Retraction.ZHop), "z-hop height during travel, mm")

	flag.Float64Var((*float64)(&options.Print.Speed.OuterPerimeter), "outer-perimeter-speed", float64(options.Print.Speed.OuterPerimeter), "outer wall speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Speed.Print), "print-speed", float64(options.Print.Speed.Print), "inner wall speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Speed.TopBottom), "top-bottom-speed", float64(options.Print.Speed.TopBottom), "skin speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Speed.Infill), "infill-speed", float64(options.Print.Speed.Infill), "infill speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Speed.Bridge), "bridge-speed", float64(options.Print.Speed.Bridge), "bridge speed, mm/s (reserved, never selected)")
	flag.Float64Var((*float64)(&options.Print.Speed.FirstLayer), "first-layer-speed", float64(options.Print.Speed.FirstLayer), "first layer speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Speed.Travel), "travel-speed", float64(options.Print.Speed.Travel), "travel speed, mm/s")
	flag.Float64Var((*float64)(&options.Print.Speed.MinLayerTime), "min-layer-time", float64(options.Print.Speed.MinLayerTime), "minimum layer time, seconds (accepted, no feedrate clamp emitted)")

	flag.BoolVar(&options.Print.Support.Enabled, "support-enabled", options.Print.Support.Enabled, "enable support generation")
	flag.Float64Var(&options.Print.Support.ThresholdAngle, "support-threshold", options.Print.Support.ThresholdAngle, "support overhang threshold, degrees from vertical")
	flag.StringVar((*string)(&options.Print.Support.Pattern), "support-pattern", string(options.Print.Support.Pattern), "support pattern: lines, grid, zigzag")
	flag.Float64Var(&options.Print.Support.Density, "support-density", options.Print.Support.Density, "support density, percent")
	flag.Float64Var((*float64)(&options.Print.Support.ZDistance), "support-z-distance", float64(options.Print.Support.ZDistance), "support z distance, mm")
	flag.Float64Var((*float64)(&options.Print.Support.XYDistance), "support-xy-distance", float64(options.Print.Support.XYDistance), "support xy distance, mm (accepted, not applied)")
	flag.BoolVar(&options.Print.Support.InterfaceEnabled, "support-interface-enabled", options.Print.Support.InterfaceEnabled, "enable a denser support interface layer")
	flag.IntVar(&options.Print.Support.InterfaceLayers, "support-interface-layers", options.Print.Support.InterfaceLayers, "number of support interface layers")

	flag.IntVar(&options.Filament.PrintTemp, "print-temp", options.Filament.PrintTemp, "nozzle print temperature, C")
	flag.IntVar(&options.Filament.PrintTempFirstLayer, "print-temp-first-layer", options.Filament.PrintTempFirstLayer, "first layer nozzle temperature, C")
	flag.IntVar(&options.Filament.BedTemp, "bed-temp", options.Filament.BedTemp, "bed temperature, C")
	flag.IntVar(&options.Filament.FanSpeed, "fan-speed", options.Filament.FanSpeed, "fan speed, percent")
	flag.IntVar(&options.Filament.FanSpeedFirstLayer, "fan-first-layer", options.Filament.FanSpeedFirstLayer, "first layer fan speed, percent")
	flag.IntVar(&options.Filament.FanKickInLayer, "fan-kick-in-layer", options.Filament.FanKickInLayer, "layer at which the fan reaches fan-speed")

	flag.Parse()

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "error: --input is required")
		flag.Usage()
		os.Exit(2)
	}
	if outputPath == "" {
		outputPath = inputPath + ".gcode"
	}

	options.Printer.ExtrusionWidth = options.LineWidth()

	if err := options.Validate(); err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	mesh, err := loadMesh(inputPath)
	if err != nil {
		log.Fatalf("failed to load %s: %v", inputPath, err)
	}

	start := time.Now()

	progress := func(stage string, fraction float64) {
		options.GoSlice.Logger.Printf("%s: %.0f%%\n", stage, fraction*100)
	}

	engine := slicer.NewEngine(&options, handler.NewCancelToken(), progress)

	job, warnings, err := engine.Slice(mesh, outputPath)
	if err != nil {
		log.Fatalf("slicing failed: %v", err)
	}

	for _, w := range warnings {
		options.GoSlice.Logger.Printf("warning: %s\n", w.String())
	}

	options.GoSlice.Logger.Printf("wrote %d layers to %s in %v\n", job.LayerCount, outputPath, time.Since(start))
}

// loadMesh reads an STL file and converts it to the core's in-memory
// mesh representation. STL decoding happens only here, at the host
// boundary, per SPEC_FULL.md's domain-stack wiring for
// github.com/hschendel/stl.
func loadMesh(path string) (*data.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mesh := &data.Mesh{
		Vertices:  make([]data.Vertex, 0, len(solid.Triangles)*3),
		Triangles: make([]data.Triangle, 0, len(solid.Triangles)),
	}

	for _, t := range solid.Triangles {
		base := len(mesh.Vertices)
		for _, v := range t.Vertices {
			mesh.Vertices = append(mesh.Vertices, data.Vertex{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
		}
		mesh.Triangles = append(mesh.Triangles, data.Triangle{V0: base, V1: base + 1, V2: base + 2})
	}

	return mesh, nil
}
