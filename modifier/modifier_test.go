package modifier

import (
	"testing"

	"github.com/kasynel/slicer/data"
)

func flatSquare(side data.Micrometer) data.LayerPart {
	return data.NewUnknownLayerPart(data.Path{
		data.NewMicroPoint(0, 0),
		data.NewMicroPoint(side, 0),
		data.NewMicroPoint(side, side),
		data.NewMicroPoint(0, side),
	}, nil)
}

func TestPartsAttributeAbsentReturnsNil(t *testing.T) {
	layer := data.NewPartitionedLayer(nil)
	parts, err := PartsAttribute(layer, attrInnerArea)
	if err != nil {
		t.Fatalf("unexpected error for an absent attribute: %v", err)
	}
	if parts != nil {
		t.Errorf("expected nil for an absent attribute, got %v", parts)
	}
}

func TestPartsAttributeWrongTypeErrors(t *testing.T) {
	layer := data.NewPartitionedLayer(nil)
	layer.Attributes()[attrInnerArea] = "not a []LayerPart"

	if _, err := PartsAttribute(layer, attrInnerArea); err == nil {
		t.Error("expected an error for a wrongly typed attribute")
	}
}

func TestPartsAttributeRoundTrip(t *testing.T) {
	layer := data.NewPartitionedLayer(nil)
	want := []data.LayerPart{flatSquare(1000)}
	layer.Attributes()[attrInnerArea] = want

	got, err := PartsAttribute(layer, attrInnerArea)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 part back, got %d", len(got))
	}
}

func TestWallsAttributeRoundTrip(t *testing.T) {
	layer := data.NewPartitionedLayer(nil)
	want := [][]data.LayerPart{{flatSquare(1000)}, {flatSquare(800)}}
	layer.Attributes()[attrWalls] = want

	got, err := WallsAttribute(layer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 wall rings, got %d", len(got))
	}
}

func TestBrimOuterDimensionDelegatesToBrimAttribute(t *testing.T) {
	layer := data.NewPartitionedLayer(nil)
	layer.Attributes()[attrBrim] = []data.LayerPart{flatSquare(1000)}

	got, err := BrimOuterDimension(layer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 brim part, got %d", len(got))
	}
}

func TestNewExtendedLayerCopiesWithoutMutatingOriginal(t *testing.T) {
	base := data.NewPartitionedLayer(nil)
	base.Attributes()[attrInnerArea] = []data.LayerPart{flatSquare(1000)}

	extended := newExtendedLayer(base)
	extended.Attributes()[attrWalls] = [][]data.LayerPart{{flatSquare(500)}}

	if _, ok := base.Attributes()[attrWalls]; ok {
		t.Error("writing to the extended layer's attributes must not leak back into the original layer")
	}
	if _, ok := extended.Attributes()[attrInnerArea]; !ok {
		t.Error("extended layer must retain attributes copied from the original layer")
	}
}
