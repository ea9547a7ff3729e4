package modifier

import (
	"testing"

	"github.com/kasynel/slicer/data"
)

func TestSpiralizeKeepsOnlyOutermostWallAboveBottomLayers(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Spiralize = true
	options.Print.BottomLayers = 1

	bottom := data.NewPartitionedLayer(nil)
	bottom.Attributes()[attrWalls] = [][]data.LayerPart{{flatSquare(1000)}, {flatSquare(800)}}
	bottom.Attributes()[attrSkinBottom] = []data.LayerPart{flatSquare(900)}

	top := data.NewPartitionedLayer(nil)
	top.Attributes()[attrWalls] = [][]data.LayerPart{{flatSquare(1000)}, {flatSquare(800)}}
	top.Attributes()[attrInfill] = []data.LayerPart{flatSquare(900)}

	layers := []data.PartitionedLayer{bottom, top}
	m := NewSpiralizeModifier(&options)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	// Layer 0 is within bottom_layers, left untouched.
	if _, ok := layers[0].Attributes()[attrSkinBottom]; !ok {
		t.Error("expected bottom_layers to be left untouched by spiralize")
	}

	// Layer 1 is spiralized: only the outer wall ring survives, and
	// every other attribute (infill, skin, support) is dropped.
	walls, err := WallsAttribute(layers[1])
	if err != nil {
		t.Fatalf("WallsAttribute error: %v", err)
	}
	if len(walls) != 1 {
		t.Fatalf("expected exactly 1 surviving wall ring above bottom_layers, got %d", len(walls))
	}
	if _, ok := layers[1].Attributes()[attrInfill]; ok {
		t.Error("expected infill to be dropped by spiralize")
	}
}

func TestSpiralizeNoOpWhenDisabled(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Spiralize = false

	layer := data.NewPartitionedLayer(nil)
	layer.Attributes()[attrInfill] = []data.LayerPart{flatSquare(1000)}
	layers := []data.PartitionedLayer{layer}

	m := NewSpiralizeModifier(&options)
	m.Init(nil)
	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	if _, ok := layers[0].Attributes()[attrInfill]; !ok {
		t.Error("expected layers to be untouched when spiralize is disabled")
	}
}
