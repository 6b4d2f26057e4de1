package geom

import (
	"fmt"
)

// ErrInvalidCoordinate indicates a coordinate that is not a finite number.
type ErrInvalidCoordinate struct {
	X, Y float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: x=%f y=%f (coordinates must be finite)", e.X, e.Y)
}

// ErrInvalidGeometry indicates geometry that violates the input contract
// (too few vertices, zero-length segments, non-finite coordinates).
type ErrInvalidGeometry struct {
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// ErrInvalidDistance indicates a non-positive buffer or clip distance.
type ErrInvalidDistance struct {
	Value float64
}

func (e *ErrInvalidDistance) Error() string {
	return fmt.Sprintf("invalid distance: %f (must be positive)", e.Value)
}
