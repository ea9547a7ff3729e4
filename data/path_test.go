package data

import "testing"

func square(side Micrometer) Path {
	return Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(side, 0),
		NewMicroPoint(side, side),
		NewMicroPoint(0, side),
	}
}

func TestPathBounds(t *testing.T) {
	p := square(1000)
	min, max := p.Bounds()
	if min.X() != 0 || min.Y() != 0 || max.X() != 1000 || max.Y() != 1000 {
		t.Errorf("Bounds() = %v,%v - %v,%v", min.X(), min.Y(), max.X(), max.Y())
	}
}

func TestPathLengthAndClosedLength(t *testing.T) {
	p := square(1000)
	if got := p.Length(); got != 3000 {
		t.Errorf("Length() = %v, want 3000", got)
	}
	if got := p.ClosedLength(); got != 4000 {
		t.Errorf("ClosedLength() = %v, want 4000", got)
	}
}

func TestPathSignedAreaAndCCW(t *testing.T) {
	ccw := square(1000)
	if !ccw.IsCCW() {
		t.Error("expected square built in CCW order to report IsCCW() true")
	}

	cw := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(0, 1000),
		NewMicroPoint(1000, 1000),
		NewMicroPoint(1000, 0),
	}
	if cw.IsCCW() {
		t.Error("expected reversed square to report IsCCW() false")
	}
}

func TestPathIsAlmostFinished(t *testing.T) {
	p := Path{NewMicroPoint(0, 0), NewMicroPoint(1000, 0), NewMicroPoint(10, 0)}
	if !p.IsAlmostFinished(20) {
		t.Error("expected path ending 10um from its start to be almost finished within snap 20")
	}
	if p.IsAlmostFinished(5) {
		t.Error("expected path ending 10um from its start to not be almost finished within snap 5")
	}
}

func TestPathSimplifyDropsShortSegments(t *testing.T) {
	// A nearly straight line with one point that deviates negligibly.
	p := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(100, 1),
		NewMicroPoint(1000, 0),
	}
	simplified := p.Simplify(500, 50)
	if len(simplified) != 2 {
		t.Errorf("Simplify() kept %d points, want 2 (collinear-ish middle point dropped)", len(simplified))
	}
	if simplified[0] != p[0] || simplified[len(simplified)-1] != p[len(p)-1] {
		t.Error("Simplify() must preserve endpoints")
	}
}

func TestPathsBounds(t *testing.T) {
	ps := Paths{square(1000), {NewMicroPoint(2000, 2000), NewMicroPoint(3000, 3000)}}
	min, max := ps.Bounds()
	if min.X() != 0 || min.Y() != 0 || max.X() != 3000 || max.Y() != 3000 {
		t.Errorf("Bounds() = %v,%v - %v,%v", min.X(), min.Y(), max.X(), max.Y())
	}
}
