package data

import "testing"

func TestLineWidthDerivedFromNozzleAndPercent(t *testing.T) {
	o := NewDefaultOptions()
	o.Printer.NozzleDiameter = Millimeter(0.4)
	o.Print.LineWidthPercent = 120

	got := o.LineWidth()
	want := Millimeter(0.4 * 1.2).ToMicrometer()
	if got != want {
		t.Errorf("LineWidth() = %v, want %v", got, want)
	}
}

func TestLineWidthDefaultsToFullNozzleWhenPercentZero(t *testing.T) {
	o := NewDefaultOptions()
	o.Print.LineWidthPercent = 0
	if got, want := o.LineWidth(), o.Printer.NozzleDiameter.ToMicrometer(); got != want {
		t.Errorf("LineWidth() = %v, want %v (percent 0 falls back to 100%%)", got, want)
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	o := NewDefaultOptions()
	if err := o.Validate(); err != nil {
		t.Errorf("default options should validate cleanly, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name  string
		break_ func(*Options)
	}{
		{"layer height", func(o *Options) { o.Print.LayerHeight = 0 }},
		{"infill percent", func(o *Options) { o.Print.InfillPercent = 150 }},
		{"line width pct", func(o *Options) { o.Print.LineWidthPercent = 0 }},
		{"nozzle diameter", func(o *Options) { o.Printer.NozzleDiameter = 0 }},
		{"bed size", func(o *Options) { o.Printer.BedWidth = 0 }},
		{"fan speed", func(o *Options) { o.Filament.FanSpeed = 200 }},
		{"infill pattern", func(o *Options) { o.Print.InfillPattern = "spiral" }},
		{"support pattern", func(o *Options) { o.Print.Support.Pattern = "dots" }},
		{"seam position", func(o *Options) { o.Print.SeamPosition = "left" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := NewDefaultOptions()
			c.break_(&o)
			if err := o.Validate(); err == nil {
				t.Errorf("expected Validate() to reject %s", c.name)
			}
		})
	}
}

func TestValidateBrimRequiresWidthWhenEnabled(t *testing.T) {
	o := NewDefaultOptions()
	o.Print.BrimEnabled = true
	o.Print.BrimWidth = 0
	if err := o.Validate(); err == nil {
		t.Error("expected Validate() to reject brim enabled with zero width")
	}
}

func TestNewDefaultOptionsDerivesExtrusionWidth(t *testing.T) {
	o := NewDefaultOptions()
	if o.Printer.ExtrusionWidth != o.LineWidth() {
		t.Errorf("ExtrusionWidth = %v, want %v (LineWidth())", o.Printer.ExtrusionWidth, o.LineWidth())
	}
}
