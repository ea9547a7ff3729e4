package writer

import (
	"os"
	"path/filepath"

	"github.com/kasynel/slicer/handler"
)

type writer struct{}

// Writer can write gcode to a file. It writes to a temporary file in the
// same directory first and renames it into place, so a reader never
// observes a partially written output file (spec.md §8's "cancellation
// leaves no externally observable partial file" invariant).
func Writer() handler.GCodeWriter {
	return &writer{}
}

func (w writer) Write(gcode string, filename string) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".gcode-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(gcode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filename)
}
