package modifier

import (
	"testing"

	"github.com/kasynel/slicer/data"
)

func TestInfillModifierIsInnerAreaMinusSkin(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.InfillOverlapPercent = 0

	layer := data.NewPartitionedLayer(nil)
	layer.Attributes()[attrInnerArea] = []data.LayerPart{flatSquare(8000)}
	layer.Attributes()[attrSkinBottom] = []data.LayerPart{flatSquare(8000)}
	layer.Attributes()[attrSkinTop] = nil

	layers := []data.PartitionedLayer{layer}
	m := NewInfillModifier(&options)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	infill, err := PartsAttribute(layers[0], attrInfill)
	if err != nil {
		t.Fatalf("PartsAttribute error: %v", err)
	}
	if len(infill) != 0 {
		t.Errorf("expected no sparse infill when skin covers the entire inner area, got %d parts", len(infill))
	}
}

func TestInfillModifierFillsWhatSkinDoesNotCover(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.InfillOverlapPercent = 0

	layer := data.NewPartitionedLayer(nil)
	layer.Attributes()[attrInnerArea] = []data.LayerPart{flatSquare(8000)}
	// no skin attributes set at all: a purely interior layer

	layers := []data.PartitionedLayer{layer}
	m := NewInfillModifier(&options)
	m.Init(nil)

	if err := m.Modify(layers); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}

	infill, err := PartsAttribute(layers[0], attrInfill)
	if err != nil {
		t.Fatalf("PartsAttribute error: %v", err)
	}
	if len(infill) != 1 {
		t.Fatalf("expected the entire inner area to be sparse infill with no skin present, got %d parts", len(infill))
	}
}
