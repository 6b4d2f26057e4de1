package main

import (
	"fmt"
	"log"
	"time"

	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/pkg/riverclip"
)

func main() {
	network, err := riverclip.NewLineNetwork("EPSG:31981", orb.MultiLineString{
		{{-10, 0}, {10, 0}},
	})
	if err != nil {
		log.Fatal(err)
	}

	dam := riverclip.Point{ID: "belo-monte", Name: "Belo Monte", CRS: "EPSG:31981", Coordinate: orb.Point{0, 0}}
	segments, buffers, errs := riverclip.BuildRegions(
		[]riverclip.Point{dam}, network, 5, 0.1,
		map[string]riverclip.Direction{"belo-monte": riverclip.DirectionWest},
		riverclip.DefaultBuildOptions(),
	)
	if len(errs) > 0 {
		log.Fatal(errs[0])
	}

	// Package the regions as assets
	portfolio := riverclip.NewPortfolio("xingu-deforestation")
	segment := portfolio.AddRegion(segments[0], "belo-monte-upstream")
	portfolio.AddRegion(buffers[0], "belo-monte-buffer")

	// Indicator rows would normally come from an IndicatorCalculator
	// implementation; attach a couple by hand for the demo.
	err = portfolio.AddIndicators(segment.ID, []riverclip.IndicatorRow{
		{Timestamp: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Variable: "treecover_loss", Unit: "ha", Value: 12.5},
		{Timestamp: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), Variable: "treecover_loss", Unit: "ha", Value: 48.1},
	})
	if err != nil {
		log.Fatal(err)
	}

	// Serialize to the two-layer container and read it back
	data, err := riverclip.EncodePortfolio(portfolio)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Container: %d bytes\n", len(data))

	decoded, err := riverclip.DecodePortfolio(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Round trip: %d assets, %d indicator rows for %s\n",
		len(decoded.Assets), len(decoded.Indicators[segment.ID]), segment.Name)
}
