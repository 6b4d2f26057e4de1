package geom

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
)

// NetworkIndex is an R-tree over the components of a line network.
//
// Disk clipping first queries the index with the disk's bounding box so only
// components near the disk are clipped segment by segment. For river networks
// with many reaches this turns the per-point clip from O(N) into O(log N)
// candidate lookup, the same trade the chart index makes for viewport queries.
type NetworkIndex struct {
	network orb.MultiLineString
	rtree   *rtreego.Rtree
}

// componentEntry adapts one network component to the rtreego.Spatial interface.
type componentEntry struct {
	index int
	rect  rtreego.Rect
}

func (e componentEntry) Bounds() rtreego.Rect {
	return e.rect
}

// rectFromBound converts an orb bound to an R-tree rectangle.
// Degenerate extents are padded so rtreego accepts them.
func rectFromBound(b orb.Bound) rtreego.Rect {
	const minExtent = 1e-9
	point := rtreego.Point{b.Min[0], b.Min[1]}
	lengths := []float64{
		math.Max(b.Max[0]-b.Min[0], minExtent),
		math.Max(b.Max[1]-b.Min[1], minExtent),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewNetworkIndex builds a spatial index over the network's components.
// The network is held by reference and must not be mutated afterwards.
func NewNetworkIndex(network orb.MultiLineString) *NetworkIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	for i, line := range network {
		if len(line) == 0 {
			continue
		}
		rtree.Insert(componentEntry{index: i, rect: rectFromBound(line.Bound())})
	}
	return &NetworkIndex{network: network, rtree: rtree}
}

// ClipToDisk returns the parts of the network lying within the closed disk of
// the given radius around center. Component order follows the input network,
// and runs of consecutive in-disk segments stay joined as one linestring.
// Returns an empty MultiLineString when nothing intersects the disk.
func (idx *NetworkIndex) ClipToDisk(center orb.Point, radius float64) orb.MultiLineString {
	diskBound := orb.Bound{
		Min: orb.Point{center[0] - radius, center[1] - radius},
		Max: orb.Point{center[0] + radius, center[1] + radius},
	}

	candidates := idx.rtree.SearchIntersect(rectFromBound(diskBound))
	hit := make([]bool, len(idx.network))
	for _, spatial := range candidates {
		hit[spatial.(componentEntry).index] = true
	}

	result := orb.MultiLineString{}
	for i, line := range idx.network {
		if !hit[i] {
			continue
		}
		result = append(result, clipLineToDisk(line, center, radius)...)
	}
	return result
}

// clipLineToDisk clips a single polyline to a disk, splitting it wherever it
// leaves the disk.
func clipLineToDisk(line orb.LineString, center orb.Point, radius float64) []orb.LineString {
	var pieces []orb.LineString
	var current orb.LineString

	for i := 0; i+1 < len(line); i++ {
		sub, ok := clipSegmentToDisk(line[i], line[i+1], center, radius)
		if !ok {
			if len(current) >= 2 {
				pieces = append(pieces, current)
			}
			current = nil
			continue
		}
		if len(current) > 0 && current[len(current)-1].Equal(sub[0]) {
			current = append(current, sub[1])
		} else {
			if len(current) >= 2 {
				pieces = append(pieces, current)
			}
			current = orb.LineString{sub[0], sub[1]}
		}
	}
	if len(current) >= 2 {
		pieces = append(pieces, current)
	}
	return pieces
}

// clipSegmentToDisk returns the sub-segment of a-b inside the disk, or
// ok=false when the segment misses the disk entirely or touches it at a
// single point.
func clipSegmentToDisk(a, b, center orb.Point, radius float64) ([2]orb.Point, bool) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	fx := a[0] - center[0]
	fy := a[1] - center[1]

	// Solve |a + t*(b-a) - center|^2 = radius^2 for t.
	qa := dx*dx + dy*dy
	qb := 2 * (fx*dx + fy*dy)
	qc := fx*fx + fy*fy - radius*radius

	if qa == 0 {
		return [2]orb.Point{}, false
	}

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return [2]orb.Point{}, false
	}

	sqrtDisc := math.Sqrt(disc)
	t0 := math.Max((-qb-sqrtDisc)/(2*qa), 0)
	t1 := math.Min((-qb+sqrtDisc)/(2*qa), 1)
	if t0 >= t1 {
		return [2]orb.Point{}, false
	}

	return [2]orb.Point{
		{a[0] + t0*dx, a[1] + t0*dy},
		{a[0] + t1*dx, a[1] + t1*dy},
	}, true
}

// CropToBound crops a line network to an axis-aligned bounding box.
// A bound with non-positive width or height yields an empty result.
func CropToBound(network orb.MultiLineString, bound orb.Bound) orb.MultiLineString {
	if len(network) == 0 || bound.Min[0] >= bound.Max[0] || bound.Min[1] > bound.Max[1] {
		return orb.MultiLineString{}
	}
	cropped := clip.MultiLineString(bound, network.Clone())
	if cropped == nil {
		return orb.MultiLineString{}
	}
	return cropped
}
