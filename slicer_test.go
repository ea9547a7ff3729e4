package slicer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kasynel/slicer/data"
	"github.com/kasynel/slicer/handler"
)

func smallTetrahedron() *data.Mesh {
	return &data.Mesh{
		Vertices: []data.Vertex{
			{X: 0, Y: 0, Z: 0},
			{X: 10, Y: 0, Z: 0},
			{X: 0, Y: 10, Z: 0},
			{X: 0, Y: 0, Z: 10},
		},
		Triangles: []data.Triangle{
			{V0: 0, V1: 2, V2: 1},
			{V0: 0, V1: 1, V2: 3},
			{V0: 1, V1: 2, V2: 3},
			{V0: 2, V1: 0, V2: 3},
		},
	}
}

func TestEngineSliceProducesGCodeAndWritesTheFile(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.InitialLayerHeight = data.Millimeter(1)
	options.Print.LayerHeight = data.Millimeter(1)
	options.Printer.ExtrusionWidth = options.LineWidth()

	e := NewEngine(&options, handler.NewCancelToken(), nil)

	dir := t.TempDir()
	out := filepath.Join(dir, "part.gcode")

	job, warnings, err := e.Slice(smallTetrahedron(), out)
	if err != nil {
		t.Fatalf("Slice returned error: %v, warnings: %v", err, warnings)
	}

	if job.LayerCount == 0 {
		t.Error("expected at least one layer")
	}
	if !strings.Contains(job.GCode, "LAYER_COUNT") {
		t.Errorf("expected the gcode to contain a LAYER_COUNT header, got:\n%s", job.GCode)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected Slice to write the output file: %v", err)
	}
	if string(written) != job.GCode {
		t.Error("expected the written file to match the returned gcode text exactly")
	}
}

func TestEngineSliceSkipsWritingWhenOutputPathIsEmpty(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.InitialLayerHeight = data.Millimeter(1)
	options.Print.LayerHeight = data.Millimeter(1)

	e := NewEngine(&options, handler.NewCancelToken(), nil)

	job, _, err := e.Slice(smallTetrahedron(), "")
	if err != nil {
		t.Fatalf("Slice returned error: %v", err)
	}
	if job.GCode == "" {
		t.Error("expected gcode to still be generated with no output path")
	}
}

func TestEngineSliceRejectsInvalidMesh(t *testing.T) {
	options := data.NewDefaultOptions()
	e := NewEngine(&options, handler.NewCancelToken(), nil)

	if _, _, err := e.Slice(&data.Mesh{}, ""); err == nil {
		t.Fatal("expected an error for an empty mesh")
	}
}

func TestEngineSliceRespectsCancellation(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.InitialLayerHeight = data.Millimeter(1)
	options.Print.LayerHeight = data.Millimeter(1)

	cancel := handler.NewCancelToken()
	e := NewEngine(&options, cancel, nil)
	cancel.Cancel()

	if _, _, err := e.Slice(smallTetrahedron(), ""); err != data.ErrCancelled {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}
