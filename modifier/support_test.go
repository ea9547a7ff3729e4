package modifier

import (
	"math"
	"testing"

	"github.com/kasynel/slicer/data"
)

func TestSupportDetectorFindsOverhang(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Support.Enabled = true
	options.Print.Support.ThresholdAngle = 45 // max_safe_overhang == layer_height at 45deg
	options.Print.LayerHeight = data.Millimeter(0.2)

	// Layer 1 is much wider than layer 0: far beyond what a 45deg overhang
	// from a 0.2mm layer height could safely bridge.
	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(5000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(20000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(20000)}),
	}

	warnings := &[]data.Warning{}
	m := NewSupportDetectorModifier(&options, warnings)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	overhang, err := PartsAttribute(layers[1], attrSupport)
	if err != nil {
		t.Fatalf("PartsAttribute error: %v", err)
	}
	if len(overhang) == 0 {
		t.Error("expected layer 1's large overhang past layer 0 to be flagged for support")
	}
}

func TestSupportDetectorIgnoresVerticalWalls(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Support.Enabled = true
	options.Print.Support.ThresholdAngle = 45
	options.Print.LayerHeight = data.Millimeter(0.2)

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
	}

	warnings := &[]data.Warning{}
	m := NewSupportDetectorModifier(&options, warnings)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	for i, l := range layers {
		overhang, err := PartsAttribute(l, attrSupport)
		if err != nil {
			t.Fatalf("PartsAttribute error on layer %d: %v", i, err)
		}
		if len(overhang) != 0 {
			t.Errorf("layer %d: expected no support on a perfectly vertical wall, got %d parts", i, overhang)
		}
	}
}

func TestSupportDetectorNoOpWhenDisabled(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Support.Enabled = false

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(5000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(20000)}),
	}

	warnings := &[]data.Warning{}
	m := NewSupportDetectorModifier(&options, warnings)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	if _, ok := layers[1].Attributes()[attrSupport]; ok {
		t.Error("expected no support attribute when support is disabled")
	}
}

func TestSupportDetectorWarnsOnIgnoredXYDistance(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Support.Enabled = true
	options.Print.Support.ThresholdAngle = 45
	options.Print.Support.XYDistance = data.Millimeter(0.5)

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(5000)}),
	}

	warnings := &[]data.Warning{}
	m := NewSupportDetectorModifier(&options, warnings)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	found := false
	for _, w := range *warnings {
		if w.Kind == data.WarnSupportParameterIgnored {
			found = true
		}
	}
	if !found {
		t.Error("expected a SupportParameterIgnored warning when support_xy_distance is set")
	}
}

func TestSupportGeneratorCarriesOverhangDownToTheBed(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Support.Enabled = true
	options.Print.Support.ZDistance = 0
	options.Print.Support.InterfaceEnabled = false

	// Three layers; only the top one has an overhang needing support. It
	// lies beside the lower layers' outline, so no model below blocks it.
	overhangPart := []data.LayerPart{data.NewUnknownLayerPart(data.Path{
		data.NewMicroPoint(12000, 0),
		data.NewMicroPoint(14000, 0),
		data.NewMicroPoint(14000, 2000),
		data.NewMicroPoint(12000, 2000),
	}, nil)}
	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
	}
	layers[2].Attributes()[attrSupport] = overhangPart

	m := NewSupportGeneratorModifier(&options)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	for i := 0; i <= 1; i++ {
		full, err := PartsAttribute(layers[i], attrSupportFull)
		if err != nil {
			t.Fatalf("PartsAttribute error at layer %d: %v", i, err)
		}
		if len(full) == 0 {
			t.Errorf("expected support to be carried down to layer %d", i)
		}
	}
}

func TestMaxSafeOverhangFormula(t *testing.T) {
	layerHeight := data.Millimeter(0.2).ToMicrometer()
	threshold := 45.0
	got := data.Micrometer(float64(layerHeight) / math.Tan(data.ToRadians(threshold)))
	if got != layerHeight {
		t.Errorf("at 45deg threshold, max_safe_overhang should equal layer_height; got %v want %v", got, layerHeight)
	}
}
