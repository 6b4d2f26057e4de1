package riverclip

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/internal/geom"
)

// RegionKind labels which of the two region categories a Region belongs to.
type RegionKind int

const (
	// KindUpstreamSegment marks a region built by buffering the clipped
	// upstream reach of the network.
	KindUpstreamSegment RegionKind = iota + 1

	// KindPointBuffer marks a region built by buffering the raw point.
	KindPointBuffer
)

// String returns the kind's label as used in asset attributes.
func (k RegionKind) String() string {
	switch k {
	case KindUpstreamSegment:
		return "upstream-segment"
	case KindPointBuffer:
		return "point-buffer"
	default:
		return "unknown"
	}
}

// Region is a polygon area of interest derived from one input point. Regions
// are constructed once and never mutated afterwards.
//
// A Region may carry empty geometry: when clipping finds no network near the
// point, the corresponding upstream-segment region is emitted with no
// polygons rather than dropped, so batch outputs always line up with batch
// inputs and a zero-area region is visible to downstream consumers as a
// signal of misconfigured parameters.
type Region struct {
	// PointID links the region back to its source point.
	PointID string

	// Kind is the region category.
	Kind RegionKind

	// Geometry is the region's polygon(s) in the computation's CRS.
	Geometry orb.MultiPolygon
}

// IsEmpty reports whether the region has no geometry.
func (r Region) IsEmpty() bool {
	return len(r.Geometry) == 0
}

// Area returns the region's planar area in squared CRS units.
func (r Region) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return geom.Area(r.Geometry)
}

// Bound returns the region's bounding box. Empty regions return a zero bound.
func (r Region) Bound() orb.Bound {
	if r.IsEmpty() {
		return orb.Bound{}
	}
	return r.Geometry.Bound()
}

// BuildRegions builds the two region categories for a batch of points.
//
// For each point, in input order:
//   - the network is clipped by ClipUpstream with clipDistance and the
//     point's entry in directions,
//   - the clipped reach is buffered by clipDistance*bufferFraction into an
//     upstream-segment region,
//   - the raw point is buffered by clipDistance into a point-buffer region.
//
// Both returned slices have exactly len(points) elements in input order. A
// point whose clip came back empty still occupies its slot, with an empty
// upstream-segment region.
//
// Error policy follows BuildOptions.SkipErrors:
//   - true: a failing point keeps empty regions in both slots and its error
//     (a *PointError or one of the typed validation errors) is collected
//     into the returned slice;
//   - false: the first error aborts the batch and both region slices are nil.
//
// Points are processed by a worker pool when opts.Parallel is set; each
// worker writes only its own output slots, so results are identical to the
// serial path.
func BuildRegions(points []Point, network *LineNetwork, clipDistance, bufferFraction float64,
	directions map[string]Direction, opts BuildOptions) ([]Region, []Region, []error) {

	if len(points) == 0 {
		return []Region{}, []Region{}, nil
	}
	if bufferFraction <= 0 {
		return nil, nil, []error{&geom.ErrInvalidDistance{Value: clipDistance * bufferFraction}}
	}

	segments := make([]Region, len(points))
	buffers := make([]Region, len(points))

	if !opts.Parallel {
		errs := buildRegionsSerial(points, network, clipDistance, bufferFraction, directions, opts, segments, buffers)
		if errs != nil && !opts.SkipErrors {
			return nil, nil, errs
		}
		return segments, buffers, errs
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultBuildOptions().Workers
	}
	if workers > len(points) {
		workers = len(points)
	}

	type buildResult struct {
		index int
		err   error
	}

	jobs := make(chan int, len(points))
	results := make(chan buildResult, len(points))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				err := buildPoint(points[index], network, clipDistance, bufferFraction,
					directions, opts, &segments[index], &buffers[index])
				results <- buildResult{index: index, err: err}
			}
		}()
	}

	for i := range points {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var errs []error
	done := 0
	for result := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(points))
		}
		if result.err == nil {
			continue
		}
		if opts.ErrorLog != nil {
			fmt.Fprintf(opts.ErrorLog, "Error building regions: %v\n", result.err)
		}
		if !opts.SkipErrors {
			return nil, nil, []error{result.err}
		}
		errs = append(errs, result.err)
	}

	return segments, buffers, errs
}

// buildRegionsSerial processes points one at a time (fallback when
// Parallel=false).
func buildRegionsSerial(points []Point, network *LineNetwork, clipDistance, bufferFraction float64,
	directions map[string]Direction, opts BuildOptions, segments, buffers []Region) []error {

	var errs []error
	for i, p := range points {
		err := buildPoint(p, network, clipDistance, bufferFraction, directions, opts,
			&segments[i], &buffers[i])
		if opts.Progress != nil {
			opts.Progress(i+1, len(points))
		}
		if err == nil {
			continue
		}
		if opts.ErrorLog != nil {
			fmt.Fprintf(opts.ErrorLog, "Error building regions: %v\n", err)
		}
		errs = append(errs, err)
		if !opts.SkipErrors {
			return errs
		}
	}
	return errs
}

// buildPoint computes both regions for a single point. The output slots are
// always tagged with the point ID, even on failure, so partial results
// remain attributable.
func buildPoint(p Point, network *LineNetwork, clipDistance, bufferFraction float64,
	directions map[string]Direction, opts BuildOptions, segment, buffer *Region) error {

	*segment = Region{PointID: p.ID, Kind: KindUpstreamSegment}
	*buffer = Region{PointID: p.ID, Kind: KindPointBuffer}

	direction, ok := directions[p.ID]
	if !ok {
		return &ErrMissingDirection{PointID: p.ID}
	}

	reach, err := ClipUpstream(p, network, clipDistance, direction)
	if err != nil {
		return err
	}

	steps := opts.CircleSteps
	if steps <= 0 {
		steps = geom.DefaultCircleSteps
	}

	if len(reach) > 0 {
		segment.Geometry = geom.BufferLine(reach, clipDistance*bufferFraction, steps)
	}
	buffer.Geometry = orb.MultiPolygon{geom.BufferPoint(p.Coordinate, clipDistance, steps)}
	return nil
}
