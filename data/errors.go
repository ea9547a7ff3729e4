package data

import "fmt"

// ErrorKind enumerates the fatal error taxonomy of spec.md §7.
type ErrorKind int

const (
	// KindInvalidMesh: empty, zero-volume, or otherwise unreadable mesh.
	KindInvalidMesh ErrorKind = iota
	// KindOutOfVolume: object bounds exceed the printer bed after centering.
	KindOutOfVolume
	// KindParameterInvalid: a numeric parameter is out of documented range.
	KindParameterInvalid
	// KindEmptyJob: no layers could be produced.
	KindEmptyJob
	// KindCancelled: job cancelled cooperatively via the CancelToken.
	KindCancelled
	// KindInternalGeometry: non-recoverable offset/boolean failure.
	KindInternalGeometry
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidMesh:
		return "InvalidMesh"
	case KindOutOfVolume:
		return "OutOfVolume"
	case KindParameterInvalid:
		return "ParameterInvalid"
	case KindEmptyJob:
		return "EmptyJob"
	case KindCancelled:
		return "Cancelled"
	case KindInternalGeometry:
		return "InternalGeometry"
	default:
		return "Unknown"
	}
}

// SliceError is the error type returned for every fatal condition in the
// pipeline. Field is only meaningful for KindParameterInvalid.
type SliceError struct {
	Kind  ErrorKind
	Field string
	Msg   string
}

func (e *SliceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is supports errors.Is(err, data.ErrCancelled) style comparisons against
// the kind-level sentinels below.
func (e *SliceError) Is(target error) bool {
	other, ok := target.(*SliceError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel errors for the kinds that never carry extra context.
var (
	ErrCancelled        = &SliceError{Kind: KindCancelled, Msg: "slicing job was cancelled"}
	ErrEmptyJob         = &SliceError{Kind: KindEmptyJob, Msg: "no layers could be produced"}
	ErrInternalGeometry = &SliceError{Kind: KindInternalGeometry, Msg: "an offset or boolean operation failed irrecoverably"}
)

// NewInvalidMeshError builds a KindInvalidMesh error with the given detail.
func NewInvalidMeshError(msg string) *SliceError {
	return &SliceError{Kind: KindInvalidMesh, Msg: msg}
}

// NewOutOfVolumeError builds a KindOutOfVolume error with the given detail.
func NewOutOfVolumeError(msg string) *SliceError {
	return &SliceError{Kind: KindOutOfVolume, Msg: msg}
}

// NewParameterInvalidError builds a KindParameterInvalid error for the
// named field.
func NewParameterInvalidError(field, msg string) *SliceError {
	return &SliceError{Kind: KindParameterInvalid, Field: field, Msg: msg}
}

// WarningKind enumerates the recoverable conditions of spec.md §7.
type WarningKind string

const (
	WarnOpenContourDiscarded    WarningKind = "OpenContourDiscarded"
	WarnWallOffsetEmpty         WarningKind = "WallOffsetEmpty"
	WarnSupportParameterIgnored WarningKind = "SupportParameterIgnored"
	WarnSeamPolicyIgnored       WarningKind = "SeamPolicyIgnored"
)

// Warning is a non-fatal condition recorded during a slicing job and
// returned alongside the result.
type Warning struct {
	Kind  WarningKind
	Layer int
	Detail string
}

func (w Warning) String() string {
	if w.Layer >= 0 {
		return fmt.Sprintf("%s(layer=%d): %s", w.Kind, w.Layer, w.Detail)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
