package riverclip

import (
	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/internal/geom"
)

// ClipUpstream returns the part of the network within the given distance of
// the point and on the directional side of the point's x-coordinate.
//
// The algorithm:
//  1. Intersect the network with the disk of radius distance around the
//     point. An empty intersection is a valid terminal outcome and returns
//     an empty MultiLineString, not an error.
//  2. Take the bounding box of the disk-clipped network and trim its x-range
//     at the point's x-coordinate on the side opposite the direction.
//  3. Crop the disk-clipped network to that trimmed box.
//
// If the point's x-coordinate lies outside the clipped network's x-range the
// trimmed box degenerates to zero width and the result is empty, again a
// valid outcome, surfaced to the caller for inspection rather than raised.
//
// Validation errors (bad direction, non-positive distance, CRS mismatch,
// non-finite point coordinate) name the offending point.
//
// ClipUpstream is pure and deterministic: identical inputs always produce
// geometrically identical output, and the network is never mutated.
//
// Example:
//
//	network, _ := riverclip.NewLineNetwork("EPSG:31981", orb.MultiLineString{
//	    {{-10, 0}, {10, 0}},
//	})
//	dam := riverclip.Point{ID: "dam-1", CRS: "EPSG:31981", Coordinate: orb.Point{0, 0}}
//
//	reach, err := riverclip.ClipUpstream(dam, network, 5, riverclip.DirectionWest)
//	// reach is the line from (-5, 0) to (0, 0)
func ClipUpstream(point Point, network *LineNetwork, distance float64, direction Direction) (orb.MultiLineString, error) {
	if !direction.Valid() {
		return nil, &ErrInvalidDirection{PointID: point.ID, Got: direction.String()}
	}
	if distance <= 0 {
		return nil, &PointError{PointID: point.ID, Err: &geom.ErrInvalidDistance{Value: distance}}
	}
	if point.CRS != network.CRS() {
		return nil, &ErrCRSMismatch{PointID: point.ID, PointCRS: point.CRS, NetworkCRS: network.CRS()}
	}
	if err := geom.ValidateCoordinate(point.Coordinate); err != nil {
		return nil, &PointError{PointID: point.ID, Err: err}
	}

	clipped := network.clipToDisk(point.Coordinate, distance)
	if len(clipped) == 0 {
		return orb.MultiLineString{}, nil
	}

	bound := direction.cropBound(clipped.Bound(), point.Coordinate[0])
	return geom.CropToBound(clipped, bound), nil
}

// clipToDisk runs the indexed disk intersection.
func (n *LineNetwork) clipToDisk(center orb.Point, radius float64) orb.MultiLineString {
	return n.index.ClipToDisk(center, radius)
}
