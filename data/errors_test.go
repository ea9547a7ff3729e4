package data

import (
	"errors"
	"testing"
)

func TestSliceErrorIsMatchesByKindOnly(t *testing.T) {
	a := NewParameterInvalidError("layer_height", "must be > 0")
	b := NewParameterInvalidError("wall_count", "must be >= 0")

	if !errors.Is(a, b) {
		t.Error("expected two ParameterInvalid errors with different fields to match via errors.Is")
	}
	if errors.Is(a, ErrCancelled) {
		t.Error("ParameterInvalid must not match the Cancelled sentinel")
	}
}

func TestSliceErrorMessageIncludesField(t *testing.T) {
	err := NewParameterInvalidError("infill_density", "must be within [0, 100]")
	got := err.Error()
	want := "ParameterInvalid(infill_density): must be within [0, 100]"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSliceErrorMessageWithoutField(t *testing.T) {
	got := ErrEmptyJob.Error()
	want := "EmptyJob: no layers could be produced"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWarningStringWithAndWithoutLayer(t *testing.T) {
	w := Warning{Kind: WarnSupportParameterIgnored, Layer: 3, Detail: "xy_distance ignored"}
	if got, want := w.String(), "SupportParameterIgnored(layer=3): xy_distance ignored"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	global := Warning{Kind: WarnSeamPolicyIgnored, Layer: -1, Detail: "reduced to back"}
	if got, want := global.String(), "SeamPolicyIgnored: reduced to back"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
