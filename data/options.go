package data

import "log"

// InfillPattern enumerates the sparse infill generators of spec.md §4.5.
type InfillPattern string

const (
	InfillGrid      InfillPattern = "grid"
	InfillLines     InfillPattern = "lines"
	InfillHoneycomb InfillPattern = "honeycomb"
)

// SupportPattern enumerates the support fill generators of spec.md §4.5.
type SupportPattern string

const (
	SupportLines  SupportPattern = "lines"
	SupportGrid   SupportPattern = "grid"
	SupportZigzag SupportPattern = "zigzag"
)

// SeamPosition enumerates the accepted seam placement policies of
// spec.md §4.6. Only Back is actually implemented; Random and Sharpest are
// accepted and reduced to Back, recording a warning (spec.md §9).
type SeamPosition string

const (
	SeamBack     SeamPosition = "back"
	SeamRandom   SeamPosition = "random"
	SeamSharpest SeamPosition = "sharpest"
)

// GoSliceOptions carries the host-facing, non-print concerns: where to read
// the model from and where to write the resulting G-code, plus the logger
// the CLI host uses for progress, warnings and timing (the pipeline stages
// themselves do not log).
type GoSliceOptions struct {
	InputFilePath  string
	OutputFilePath string
	Logger         *log.Logger
}

// PrinterOptions describes the physical machine.
type PrinterOptions struct {
	BedWidth         Millimeter
	BedDepth         Millimeter
	BedHeight        Millimeter
	BedTempMax       int
	NozzleDiameter   Millimeter
	FilamentDiameter Millimeter
	MaxPrintSpeed    Millimeter // mm/s
	ExtrusionWidth   Micrometer // derived: NozzleDiameter * LineWidthPercent/100

	StartGCode string
	EndGCode   string
}

// FilamentOptions describes the material profile (merged from printer and
// material profiles before invocation, spec.md §6).
type FilamentOptions struct {
	PrintTemp            int
	PrintTempFirstLayer  int
	BedTemp              int
	FanSpeed             int
	FanSpeedFirstLayer   int
	FanKickInLayer       int
}

// RetractionOptions groups the retraction/z-hop tunables of spec.md §6.
type RetractionOptions struct {
	Enabled      bool
	Distance     Millimeter
	Speed        Millimeter // mm/s
	MinDistance  Millimeter
	ExtraPrime   Millimeter
	ZHop         Millimeter
}

// SpeedOptions groups the per-feature feedrates of spec.md §6, in mm/s.
type SpeedOptions struct {
	OuterPerimeter Millimeter
	Print          Millimeter
	TopBottom      Millimeter
	Infill         Millimeter
	Bridge         Millimeter
	FirstLayer     Millimeter
	Travel         Millimeter
	MinLayerTime   Millimeter // seconds; accepted, never clamps a feedrate (spec.md §9)
}

// SupportOptions groups the support generation tunables of spec.md §6.
type SupportOptions struct {
	Enabled            bool
	ThresholdAngle     float64 // degrees from vertical
	Pattern            SupportPattern
	Density            float64 // percent
	ZDistance          Millimeter
	XYDistance         Millimeter
	InterfaceEnabled   bool
	InterfaceLayers    int
}

// SkirtOptions groups the (additive, non-spec.md) priming-loop feature
// borrowed from the teacher's renderer.Skirt, kept alongside brim.
type SkirtOptions struct {
	Enabled   bool
	Distance  Millimeter
	LineCount int
}

// PrintOptions groups the print-shape tunables of spec.md §6.
type PrintOptions struct {
	LayerHeight        Millimeter
	InitialLayerHeight Millimeter

	WallCount        int
	OuterBeforeInner bool

	InfillPercent        float64
	InfillPattern        InfillPattern
	InfillRotationDegree float64

	TopLayers    int
	BottomLayers int

	BrimEnabled bool
	BrimWidth   Millimeter

	Spiralize bool

	LineWidthPercent int // percent of nozzle diameter

	SeamPosition SeamPosition

	InfillOverlapPercent int
	SkinOverlapPercent   int

	Retraction Retraction_
	Speed      SpeedOptions
	Support    SupportOptions
	Skirt      SkirtOptions
}

// Retraction_ avoids a name clash with the RetractionOptions type above
// while keeping Print.Retraction.* as the field path the rest of the code
// uses (mirrors the teacher's Print.Support.* nesting style).
type Retraction_ = RetractionOptions

// Options is the complete, resolved Job Parameters of spec.md §6 - the
// immutable configuration for one slicing job.
type Options struct {
	GoSlice GoSliceOptions
	Printer PrinterOptions
	Filament FilamentOptions
	Print   PrintOptions
}

// LineWidth returns the derived line width in micrometers
// (nozzle_diameter * line_width_pct/100, spec.md §6).
func (o *Options) LineWidth() Micrometer {
	pct := o.Print.LineWidthPercent
	if pct == 0 {
		pct = 100
	}
	return Millimeter(float64(o.Printer.NozzleDiameter) * float64(pct) / 100).ToMicrometer()
}

// LoggerOrDefault returns the configured logger, falling back to
// log.Default so every call site can unconditionally call
// o.LoggerOrDefault().Printf(...).
func (o *Options) LoggerOrDefault() *log.Logger {
	if o.GoSlice.Logger != nil {
		return o.GoSlice.Logger
	}
	return log.Default()
}

// Validate checks the numeric parameters listed below against the
// documented ranges of spec.md §6, returning a ParameterInvalid error for
// the first violation found. Speeds, retraction, temperatures,
// min_layer_time and the support distances are not range-checked.
func (o *Options) Validate() error {
	switch {
	case o.Print.LayerHeight <= 0:
		return NewParameterInvalidError("layer_height", "must be > 0")
	case o.Print.InitialLayerHeight <= 0:
		return NewParameterInvalidError("first_layer_height", "must be > 0")
	case o.Print.WallCount < 0:
		return NewParameterInvalidError("wall_count", "must be >= 0")
	case o.Print.InfillPercent < 0 || o.Print.InfillPercent > 100:
		return NewParameterInvalidError("infill_density", "must be within [0, 100]")
	case o.Print.TopLayers < 0:
		return NewParameterInvalidError("top_layers", "must be >= 0")
	case o.Print.BottomLayers < 0:
		return NewParameterInvalidError("bottom_layers", "must be >= 0")
	case o.Print.LineWidthPercent <= 0:
		return NewParameterInvalidError("line_width_pct", "must be > 0")
	case o.Printer.NozzleDiameter <= 0:
		return NewParameterInvalidError("nozzle_diameter", "must be > 0")
	case o.Printer.FilamentDiameter <= 0:
		return NewParameterInvalidError("filament_diameter", "must be > 0")
	case o.Print.BrimEnabled && o.Print.BrimWidth <= 0:
		return NewParameterInvalidError("brim_width", "must be > 0 when brim is enabled")
	case o.Print.Support.Enabled && (o.Print.Support.Density < 0 || o.Print.Support.Density > 100):
		return NewParameterInvalidError("support_density", "must be within [0, 100]")
	case o.Printer.BedWidth <= 0 || o.Printer.BedDepth <= 0 || o.Printer.BedHeight <= 0:
		return NewParameterInvalidError("bed_size", "must be > 0 in all three axes")
	case o.Filament.FanSpeed < 0 || o.Filament.FanSpeed > 100:
		return NewParameterInvalidError("fan_speed", "must be within [0, 100]")
	case o.Filament.FanSpeedFirstLayer < 0 || o.Filament.FanSpeedFirstLayer > 100:
		return NewParameterInvalidError("fan_first_layer", "must be within [0, 100]")
	}
	switch o.Print.InfillPattern {
	case InfillGrid, InfillLines, InfillHoneycomb, "":
	default:
		return NewParameterInvalidError("infill_pattern", "must be one of grid, lines, honeycomb")
	}
	switch o.Print.Support.Pattern {
	case SupportLines, SupportGrid, SupportZigzag, "":
	default:
		return NewParameterInvalidError("support_pattern", "must be one of lines, grid, zigzag")
	}
	switch o.Print.SeamPosition {
	case SeamBack, SeamRandom, SeamSharpest, "":
	default:
		return NewParameterInvalidError("seam_position", "must be one of back, random, sharpest")
	}
	return nil
}

// NewDefaultOptions returns an Options tree populated with the PLA-ish
// defaults used across the end-to-end scenarios of spec.md §8.
func NewDefaultOptions() Options {
	o := Options{
		Printer: PrinterOptions{
			BedWidth:         Millimeter(220),
			BedDepth:         Millimeter(220),
			BedHeight:        Millimeter(250),
			BedTempMax:       100,
			NozzleDiameter:   Millimeter(0.4),
			FilamentDiameter: Millimeter(1.75),
			MaxPrintSpeed:    Millimeter(150),
		},
		Filament: FilamentOptions{
			PrintTemp:           200,
			PrintTempFirstLayer: 205,
			BedTemp:             60,
			FanSpeed:            100,
			FanSpeedFirstLayer:  0,
			FanKickInLayer:      1,
		},
		Print: PrintOptions{
			LayerHeight:          Millimeter(0.2),
			InitialLayerHeight:   Millimeter(0.3),
			WallCount:            2,
			OuterBeforeInner:     true,
			InfillPercent:        20,
			InfillPattern:        InfillGrid,
			InfillRotationDegree: 45,
			TopLayers:            4,
			BottomLayers:         4,
			BrimEnabled:          false,
			BrimWidth:            Millimeter(8),
			LineWidthPercent:     100,
			SeamPosition:         SeamBack,
			InfillOverlapPercent: 15,
			SkinOverlapPercent:   15,
			Retraction: RetractionOptions{
				Enabled:     true,
				Distance:    Millimeter(4.5),
				Speed:       Millimeter(45),
				MinDistance: Millimeter(1.5),
				ExtraPrime:  Millimeter(0),
				ZHop:        Millimeter(0),
			},
			Speed: SpeedOptions{
				OuterPerimeter: Millimeter(40),
				Print:          Millimeter(60),
				TopBottom:      Millimeter(45),
				Infill:         Millimeter(80),
				Bridge:         Millimeter(30),
				FirstLayer:     Millimeter(20),
				Travel:         Millimeter(120),
				MinLayerTime:   Millimeter(5),
			},
			Support: SupportOptions{
				ThresholdAngle:  45,
				Pattern:         SupportLines,
				Density:         15,
				InterfaceLayers: 1,
			},
		},
	}
	o.Printer.ExtrusionWidth = o.LineWidth()
	return o
}
