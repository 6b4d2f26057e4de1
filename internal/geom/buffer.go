package geom

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultCircleSteps is the number of chord segments used to approximate a
// full circle when buffering. At 64 steps the polygon area is within 0.2% of
// the true disk area.
const DefaultCircleSteps = 64

// BufferPoint returns a polygon approximating the disk of the given radius
// around center, as a counter-clockwise ring with steps vertices.
func BufferPoint(center orb.Point, radius float64, steps int) orb.Polygon {
	if steps < 8 {
		steps = DefaultCircleSteps
	}
	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		ring = append(ring, orb.Point{
			center[0] + radius*math.Cos(theta),
			center[1] + radius*math.Sin(theta),
		})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// BufferLine returns the area within the given radius of any segment of the
// network: each segment is expanded to a capsule (a rectangle with round
// caps) and the capsules are unioned. An empty network yields an empty
// MultiPolygon, matching the empty-clip-result policy upstream.
func BufferLine(network orb.MultiLineString, radius float64, steps int) orb.MultiPolygon {
	if steps < 8 {
		steps = DefaultCircleSteps
	}

	var union polyclip.Polygon
	for _, line := range network {
		for i := 0; i+1 < len(line); i++ {
			capsule := segmentCapsule(line[i], line[i+1], radius, steps)
			if capsule == nil {
				continue
			}
			if union == nil {
				union = capsule
			} else {
				union = union.Construct(polyclip.UNION, capsule)
			}
		}
	}
	if union == nil {
		return orb.MultiPolygon{}
	}
	return toMultiPolygon(union)
}

// segmentCapsule builds the counter-clockwise outline of all points within
// radius of the segment a-b. Returns nil for zero-length segments.
func segmentCapsule(a, b orb.Point, radius float64, steps int) polyclip.Polygon {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}

	heading := math.Atan2(dy, dx)
	half := steps / 2

	contour := make(polyclip.Contour, 0, 2*half+4)

	// Right side of the segment, then a half circle around b, the left
	// side back, and a half circle around a closes the outline.
	contour = append(contour,
		polyclip.Point{X: a[0] + radius*math.Cos(heading-math.Pi/2), Y: a[1] + radius*math.Sin(heading-math.Pi/2)},
		polyclip.Point{X: b[0] + radius*math.Cos(heading-math.Pi/2), Y: b[1] + radius*math.Sin(heading-math.Pi/2)},
	)
	for i := 1; i < half; i++ {
		theta := heading - math.Pi/2 + math.Pi*float64(i)/float64(half)
		contour = append(contour, polyclip.Point{
			X: b[0] + radius*math.Cos(theta),
			Y: b[1] + radius*math.Sin(theta),
		})
	}
	contour = append(contour,
		polyclip.Point{X: b[0] + radius*math.Cos(heading+math.Pi/2), Y: b[1] + radius*math.Sin(heading+math.Pi/2)},
		polyclip.Point{X: a[0] + radius*math.Cos(heading+math.Pi/2), Y: a[1] + radius*math.Sin(heading+math.Pi/2)},
	)
	for i := 1; i < half; i++ {
		theta := heading + math.Pi/2 + math.Pi*float64(i)/float64(half)
		contour = append(contour, polyclip.Point{
			X: a[0] + radius*math.Cos(theta),
			Y: a[1] + radius*math.Sin(theta),
		})
	}

	return polyclip.Polygon{contour}
}

// toMultiPolygon converts a polyclip result to an orb MultiPolygon.
// Counter-clockwise contours are shells; clockwise contours are holes and are
// attached to the shell containing them.
func toMultiPolygon(p polyclip.Polygon) orb.MultiPolygon {
	var shells []orb.Polygon
	var holes []orb.Ring

	for _, contour := range p {
		if len(contour) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(contour)+1)
		for _, pt := range contour {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if !ring[0].Equal(ring[len(ring)-1]) {
			ring = append(ring, ring[0])
		}
		if ring.Orientation() == orb.CCW {
			shells = append(shells, orb.Polygon{ring})
		} else {
			holes = append(holes, ring)
		}
	}

	for _, hole := range holes {
		for i, shell := range shells {
			if planar.RingContains(shell[0], hole[0]) {
				shells[i] = append(shells[i], hole)
				break
			}
		}
	}

	result := make(orb.MultiPolygon, 0, len(shells))
	result = append(result, shells...)
	return result
}

// Area returns the planar area of a geometry in squared CRS units.
func Area(g orb.Geometry) float64 {
	if g == nil {
		return 0
	}
	return planar.Area(g)
}
