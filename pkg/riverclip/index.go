package riverclip

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// RegionIndex provides fast spatial queries over built regions.
//
// The index stores each non-empty region's bounding box in an R-tree, so
// intersection queries are O(log N) instead of a linear scan. Empty regions
// (failed or out-of-range clips) are skipped at construction; look them up
// by position in the BuildRegions output instead.
//
// Example:
//
//	segments, buffers, _ := riverclip.BuildRegions(...)
//	idx := riverclip.NewRegionIndex(append(segments, buffers...))
//
//	hits := idx.Query(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{50, 50}})
type RegionIndex struct {
	rtree *rtreego.Rtree
	count int
}

// regionEntry adapts a Region to the rtreego.Spatial interface.
type regionEntry struct {
	region Region
	rect   rtreego.Rect
}

func (e regionEntry) Bounds() rtreego.Rect {
	return e.rect
}

// rectFromBound converts an orb bound to an R-tree rectangle, padding
// degenerate extents so rtreego accepts them.
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

// NewRegionIndex builds an index over the non-empty regions in the slice.
func NewRegionIndex(regions []Region) *RegionIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	count := 0
	for _, r := range regions {
		if r.IsEmpty() {
			continue
		}
		rtree.Insert(regionEntry{region: r, rect: rectFromBound(r.Bound())})
		count++
	}
	return &RegionIndex{rtree: rtree, count: count}
}

// Len returns the number of indexed (non-empty) regions.
func (idx *RegionIndex) Len() int {
	return idx.count
}

// Query returns the regions whose bounding boxes intersect the given bound.
func (idx *RegionIndex) Query(bound orb.Bound) []Region {
	spatials := idx.rtree.SearchIntersect(rectFromBound(bound))
	result := make([]Region, 0, len(spatials))
	for _, spatial := range spatials {
		result = append(result, spatial.(regionEntry).region)
	}
	return result
}

// Nearest returns up to k regions nearest to the given point, closest first.
func (idx *RegionIndex) Nearest(p orb.Point, k int) []Region {
	if k <= 0 {
		return nil
	}
	spatials := idx.rtree.NearestNeighbors(k, rtreego.Point{p[0], p[1]})
	result := make([]Region, 0, len(spatials))
	for _, spatial := range spatials {
		if spatial == nil {
			continue
		}
		result = append(result, spatial.(regionEntry).region)
	}
	return result
}
