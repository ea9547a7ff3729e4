package modifier

import (
	"testing"

	"github.com/kasynel/slicer/data"
)

func squareLayer(side data.Micrometer) data.PartitionedLayer {
	return data.NewPartitionedLayer([]data.LayerPart{flatSquare(side)})
}

func TestPerimeterModifierProducesWallsAndInnerArea(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Printer.NozzleDiameter = data.Millimeter(0.4)
	options.Print.LineWidthPercent = 100
	options.Printer.ExtrusionWidth = options.LineWidth()
	options.Print.WallCount = 2

	layers := []data.PartitionedLayer{squareLayer(data.Millimeter(20).ToMicrometer())}
	warnings := &[]data.Warning{}
	m := NewPerimeterModifier(&options, warnings)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	walls, err := WallsAttribute(layers[0])
	if err != nil {
		t.Fatalf("WallsAttribute error: %v", err)
	}
	if len(walls) != 2 {
		t.Fatalf("expected 2 wall rings for wall_count=2, got %d", len(walls))
	}

	inner, err := PartsAttribute(layers[0], attrInnerArea)
	if err != nil {
		t.Fatalf("PartsAttribute error: %v", err)
	}
	if len(inner) != 1 {
		t.Fatalf("expected 1 inner-area part, got %d", len(inner))
	}

	// Each successive wall ring must be strictly smaller than the last.
	_, outerMax := walls[0][0].Outline().Bounds()
	_, innerMax := walls[1][0].Outline().Bounds()
	if innerMax.X() >= outerMax.X() {
		t.Errorf("inner wall ring (max.X=%v) should be smaller than the outer ring (max.X=%v)", innerMax.X(), outerMax.X())
	}
}

func TestPerimeterModifierWarnsWhenOffsetEmpty(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Printer.NozzleDiameter = data.Millimeter(0.4)
	options.Print.LineWidthPercent = 100
	options.Printer.ExtrusionWidth = options.LineWidth()
	options.Print.WallCount = 20 // far more rings than a 2mm square can hold

	layers := []data.PartitionedLayer{squareLayer(data.Millimeter(2).ToMicrometer())}
	warnings := &[]data.Warning{}
	m := NewPerimeterModifier(&options, warnings)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	found := false
	for _, w := range *warnings {
		if w.Kind == data.WarnWallOffsetEmpty {
			found = true
		}
	}
	if !found {
		t.Error("expected a WallOffsetEmpty warning when the requested wall_count exceeds what the part can hold")
	}
}
