package riverclip

import (
	"fmt"
)

// ErrInvalidDirection indicates a direction outside the {west, east} set.
type ErrInvalidDirection struct {
	PointID string
	Got     string
}

func (e *ErrInvalidDirection) Error() string {
	if e.PointID != "" {
		return fmt.Sprintf("point %s: direction must be west or east, got: %q", e.PointID, e.Got)
	}
	return fmt.Sprintf("direction must be west or east, got: %q", e.Got)
}

// ErrCRSMismatch indicates a point and network in different coordinate
// reference systems. Geometry in mixed CRSs is never silently reprojected.
type ErrCRSMismatch struct {
	PointID    string
	PointCRS   string
	NetworkCRS string
}

func (e *ErrCRSMismatch) Error() string {
	return fmt.Sprintf("point %s: CRS %q does not match network CRS %q",
		e.PointID, e.PointCRS, e.NetworkCRS)
}

// ErrMissingDirection indicates a point with no entry in the direction map
// passed to BuildRegions.
type ErrMissingDirection struct {
	PointID string
}

func (e *ErrMissingDirection) Error() string {
	return fmt.Sprintf("point %s: no direction assigned", e.PointID)
}

// PointError wraps a validation error with the identifier of the point whose
// computation failed, so batch callers can report which input was at fault.
type PointError struct {
	PointID string
	Err     error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("point %s: %v", e.PointID, e.Err)
}

func (e *PointError) Unwrap() error {
	return e.Err
}
