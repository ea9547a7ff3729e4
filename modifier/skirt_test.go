package modifier

import (
	"testing"

	"github.com/kasynel/slicer/data"
)

func TestSkirtModifierProducesLineCountRingsOutsideTheModel(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Skirt.Enabled = true
	options.Print.Skirt.Distance = data.Millimeter(2)
	options.Print.Skirt.LineCount = 2

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
	}

	m := NewSkirtModifier(&options)
	m.Init(nil)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	rings, err := PartsAttribute(layers[0], attrSkirt)
	if err != nil {
		t.Fatalf("PartsAttribute error: %v", err)
	}
	if len(rings) != 2 {
		t.Fatalf("expected 2 skirt rings, got %d", len(rings))
	}

	for _, r := range rings {
		min, _ := r.Outline().Bounds()
		if min.X() >= 0 || min.Y() >= 0 {
			t.Errorf("expected every skirt ring to sit entirely outside the 0..10000 model, got min=%v,%v", min.X(), min.Y())
		}
	}

	if _, ok := layers[1].Attributes()[attrSkirt]; ok {
		t.Error("expected only layer 0 to carry a skirt attribute")
	}
}

func TestSkirtModifierIncludesBrimInItsBase(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Skirt.Enabled = true
	options.Print.Skirt.Distance = 0
	options.Print.Skirt.LineCount = 1
	options.Print.BrimEnabled = true
	options.Print.BrimWidth = data.Millimeter(5)

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
	}

	brim := NewBrimModifier(&options)
	brim.Init(nil)
	if err := brim.Modify(layers); err != nil {
		t.Fatalf("brim Modify returned error: %v", err)
	}

	skirt := NewSkirtModifier(&options)
	skirt.Init(nil)
	if err := skirt.Modify(layers); err != nil {
		t.Fatalf("skirt Modify returned error: %v", err)
	}

	rings, err := PartsAttribute(layers[0], attrSkirt)
	if err != nil {
		t.Fatalf("PartsAttribute error: %v", err)
	}
	if len(rings) == 0 {
		t.Fatal("expected at least one skirt ring")
	}

	// The skirt's base includes the brim rings, so it must clear the
	// outermost brim ring (several mm further out than the bare model).
	min, _ := rings[0].Outline().Bounds()
	if min.X() > -4000 {
		t.Errorf("expected skirt to clear the brim, got min.X=%v", min.X())
	}
}

func TestSkirtModifierNoOpWhenDisabled(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Skirt.Enabled = false

	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{flatSquare(10000)}),
	}

	m := NewSkirtModifier(&options)
	m.Init(nil)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	if _, ok := layers[0].Attributes()[attrSkirt]; ok {
		t.Error("expected no skirt attribute when skirt is disabled")
	}
}
