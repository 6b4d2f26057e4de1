package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ValidateCoordinate checks that both components of a coordinate are finite.
func ValidateCoordinate(p orb.Point) error {
	if math.IsNaN(p[0]) || math.IsInf(p[0], 0) || math.IsNaN(p[1]) || math.IsInf(p[1], 0) {
		return &ErrInvalidCoordinate{X: p[0], Y: p[1]}
	}
	return nil
}

// ValidateNetwork checks a line network against the input contract:
// every component must have at least two vertices, all coordinates must be
// finite, and consecutive vertices must not coincide (zero-length segments
// are treated as malformed input, not silently corrected).
//
// An empty network (no components) is valid; clipping it yields an empty
// result rather than an error.
func ValidateNetwork(network orb.MultiLineString) error {
	for i, line := range network {
		if len(line) < 2 {
			return &ErrInvalidGeometry{
				Reason: fmt.Sprintf("component %d has %d vertices, need at least 2", i, len(line)),
			}
		}
		for j, p := range line {
			if err := ValidateCoordinate(p); err != nil {
				return &ErrInvalidGeometry{
					Reason: fmt.Sprintf("component %d vertex %d: %v", i, j, err),
				}
			}
			if j > 0 && p.Equal(line[j-1]) {
				return &ErrInvalidGeometry{
					Reason: fmt.Sprintf("component %d has a zero-length segment at vertex %d", i, j),
				}
			}
		}
	}
	return nil
}
