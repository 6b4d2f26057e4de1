// Package riverclip extracts upstream river segments around dam sites and
// builds buffered analysis regions from them.
//
// Given a river network (a line geometry) and a set of dam locations, the
// package clips the network to a disk around each dam, trims the clipped
// reach to the upstream side of the dam, and buffers both the trimmed reach
// and the dam location into polygon regions of interest. Those regions are
// the areas over which land-cover indicators (deforestation, degradation)
// are later computed by external tooling.
//
// All geometry is planar: inputs must share a single projected coordinate
// reference system and all distances are expressed in CRS units.
package riverclip

import (
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/internal/geom"
)

// Point is a named reference location (typically a dam site) in a projected
// CRS. Points are value types and are not mutated by any operation.
type Point struct {
	// ID uniquely identifies the point within one computation.
	// Region outputs are tagged with it.
	ID string

	// Name is a human-readable label, e.g. "Belo Monte".
	Name string

	// CRS identifies the coordinate reference system, e.g. "EPSG:31981".
	// It must match the network's CRS exactly.
	CRS string

	// Coordinate is the point's position in CRS units.
	Coordinate orb.Point

	// Timestamp optionally records an event time associated with the
	// point, such as the start of dam construction.
	Timestamp *time.Time
}

// LineNetwork is a river course in a projected CRS: one or more polylines
// sharing a CRS with the Points they are analyzed against. A network is
// immutable after construction and safe for concurrent use.
type LineNetwork struct {
	crs   string
	lines orb.MultiLineString
	index *geom.NetworkIndex
}

// NewLineNetwork validates the given geometry and builds a spatial index
// over its components. The geometry must not be mutated afterwards.
//
// Malformed geometry (components with fewer than two vertices, zero-length
// segments, non-finite coordinates) is rejected, not silently corrected.
func NewLineNetwork(crs string, lines orb.MultiLineString) (*LineNetwork, error) {
	if err := geom.ValidateNetwork(lines); err != nil {
		return nil, err
	}
	return &LineNetwork{
		crs:   crs,
		lines: lines,
		index: geom.NewNetworkIndex(lines),
	}, nil
}

// CRS returns the network's coordinate reference system identifier.
func (n *LineNetwork) CRS() string {
	return n.crs
}

// Lines returns the network geometry. Callers must not mutate it.
func (n *LineNetwork) Lines() orb.MultiLineString {
	return n.lines
}

// Bound returns the axis-aligned bounding box of the network.
func (n *LineNetwork) Bound() orb.Bound {
	return n.lines.Bound()
}

// IsEmpty reports whether the network has no components.
func (n *LineNetwork) IsEmpty() bool {
	return len(n.lines) == 0
}

// Direction selects which side of a point's x-coordinate an upstream clip
// retains. The set is closed: only West and East exist, and each variant
// carries its own bounding-box trimming rule. In river terms the direction
// is the side the river flows in from.
type Direction int

const (
	// DirectionUnknown is the zero value and is not a valid input.
	DirectionUnknown Direction = iota

	// DirectionWest retains the network between its western extent and
	// the point's x-coordinate.
	DirectionWest

	// DirectionEast retains the network between the point's x-coordinate
	// and its eastern extent.
	DirectionEast
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionWest:
		return "west"
	case DirectionEast:
		return "east"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the two allowed directions.
func (d Direction) Valid() bool {
	return d == DirectionWest || d == DirectionEast
}

// cropBound applies the direction's trimming rule: the clipped network's
// bounding box keeps its y-range, and its x-range is cut at the point's
// x-coordinate on the side opposite the direction.
func (d Direction) cropBound(clipped orb.Bound, x float64) orb.Bound {
	switch d {
	case DirectionWest:
		return orb.Bound{
			Min: clipped.Min,
			Max: orb.Point{x, clipped.Max[1]},
		}
	case DirectionEast:
		return orb.Bound{
			Min: orb.Point{x, clipped.Min[1]},
			Max: clipped.Max,
		}
	default:
		return orb.Bound{}
	}
}

// ParseDirection converts a string such as "west" or "EAST" to a Direction.
// Returns an error for anything outside the two-value set.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "west", "w":
		return DirectionWest, nil
	case "east", "e":
		return DirectionEast, nil
	default:
		return DirectionUnknown, &ErrInvalidDirection{Got: s}
	}
}
