package main

import (
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/pkg/riverclip"
)

// scenario describes two dams on the same river course.
const scenario = `
crs: EPSG:31981
clip_distance: 100000
buffer_fraction: 0.1
dams:
  - name: belo-monte
    x: 377000
    y: 9641000
    direction: west
    commissioned: 2016-05-01T00:00:00Z
  - name: pimental
    x: 402000
    y: 9630000
    direction: east
`

func main() {
	path := writeTempScenario()
	defer os.Remove(path)

	s, err := riverclip.LoadScenario(path)
	if err != nil {
		log.Fatal(err)
	}

	// A simplified river course between the two dams
	network, err := riverclip.NewLineNetwork(s.CRS, orb.MultiLineString{
		{{250000, 9640000}, {377000, 9641000}, {402000, 9630000}, {520000, 9625000}},
	})
	if err != nil {
		log.Fatal(err)
	}

	opts := riverclip.DefaultBuildOptions()
	opts.Progress = func(done, total int) {
		fmt.Printf("\rBuilding regions: %d/%d", done, total)
	}
	opts.ErrorLog = os.Stderr

	segments, buffers, errs := s.BuildRegions(network, opts)
	fmt.Println()
	if len(errs) > 0 {
		fmt.Printf("%d points failed\n", len(errs))
	}

	for i := range segments {
		fmt.Printf("%s: upstream segment %.0f, point buffer %.0f\n",
			segments[i].PointID, segments[i].Area(), buffers[i].Area())
	}

	// Spatial lookups over the results
	idx := riverclip.NewRegionIndex(append(segments, buffers...))
	hits := idx.Query(orb.Bound{
		Min: orb.Point{300000, 9600000},
		Max: orb.Point{420000, 9700000},
	})
	fmt.Printf("%d regions intersect the viewport\n", len(hits))
}

func writeTempScenario() string {
	f, err := os.CreateTemp("", "scenario-*.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := f.WriteString(scenario); err != nil {
		log.Fatal(err)
	}
	f.Close()
	return f.Name()
}
