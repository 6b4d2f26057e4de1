package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/pkg/riverclip"
)

func main() {
	// A straight west-east river in a projected CRS
	network, err := riverclip.NewLineNetwork("EPSG:31981", orb.MultiLineString{
		{{-10, 0}, {10, 0}},
	})
	if err != nil {
		log.Fatal(err)
	}

	// A dam on the river; the river flows in from the west
	dam := riverclip.Point{
		ID:         "dam-1",
		Name:       "Example Dam",
		CRS:        "EPSG:31981",
		Coordinate: orb.Point{0, 0},
	}

	// Clip the upstream reach within 5 units of the dam
	reach, err := riverclip.ClipUpstream(dam, network, 5, riverclip.DirectionWest)
	if err != nil {
		log.Fatal(err)
	}

	bound := reach.Bound()
	fmt.Printf("Upstream reach: x from %.1f to %.1f\n", bound.Min[0], bound.Max[0])

	// Build both region categories for the dam
	segments, buffers, errs := riverclip.BuildRegions(
		[]riverclip.Point{dam},
		network,
		5,   // clip distance
		0.1, // buffer fraction
		map[string]riverclip.Direction{"dam-1": riverclip.DirectionWest},
		riverclip.DefaultBuildOptions(),
	)
	if len(errs) > 0 {
		log.Fatal(errs[0])
	}

	fmt.Printf("Upstream segment area: %.2f\n", segments[0].Area())
	fmt.Printf("Point buffer area: %.2f\n", buffers[0].Area())
}
