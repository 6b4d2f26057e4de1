package riverclip

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// DamSite describes one reference location in a scenario file.
type DamSite struct {
	// Name identifies the dam; it doubles as the point ID and must be
	// unique within a scenario.
	Name string `yaml:"name"`

	// X, Y are the dam's coordinates in the scenario CRS.
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`

	// Direction is "west" or "east": the side the river flows in from.
	Direction string `yaml:"direction"`

	// Commissioned optionally records when the dam started operating,
	// carried through to assets for before/after indicator comparison.
	Commissioned *time.Time `yaml:"commissioned,omitempty"`
}

// Scenario is a declarative description of one analysis: the CRS, the clip
// and buffer parameters, and the dam sites to build regions for.
//
// Scenario files are YAML:
//
//	crs: EPSG:31981
//	clip_distance: 100000
//	buffer_fraction: 0.1
//	dams:
//	  - name: belo-monte
//	    x: 377000
//	    y: 9641000
//	    direction: west
//	    commissioned: 2016-05-01T00:00:00Z
type Scenario struct {
	CRS            string    `yaml:"crs"`
	ClipDistance   float64   `yaml:"clip_distance"`
	BufferFraction float64   `yaml:"buffer_fraction"`
	Dams           []DamSite `yaml:"dams"`
}

// geographicCRS lists well-known identifiers of unprojected systems.
// Planar buffering in degrees is almost never what an analysis wants, so
// these are rejected up front; reproject the data and name the projected
// CRS instead.
var geographicCRS = map[string]bool{
	"EPSG:4326":     true,
	"WGS84":         true,
	"WGS 84":        true,
	"CRS:84":        true,
	"OGC:CRS84":     true,
	"URN:OGC:CRS84": true,
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("loaded scenario",
		"path", path,
		"crs", s.CRS,
		"dams", len(s.Dams),
		"clip_distance", s.ClipDistance)
	return &s, nil
}

// Validate checks the scenario against the input contract: a projected CRS,
// positive distances, unique dam names, and directions from the closed set.
func (s *Scenario) Validate() error {
	if s.CRS == "" {
		return fmt.Errorf("scenario: crs is required")
	}
	if geographicCRS[strings.ToUpper(strings.TrimSpace(s.CRS))] {
		return fmt.Errorf("scenario: crs %q is geographic; use a projected CRS so distances are planar", s.CRS)
	}
	if s.ClipDistance <= 0 {
		return fmt.Errorf("scenario: clip_distance must be positive, got %f", s.ClipDistance)
	}
	if s.BufferFraction <= 0 {
		return fmt.Errorf("scenario: buffer_fraction must be positive, got %f", s.BufferFraction)
	}
	if len(s.Dams) == 0 {
		return fmt.Errorf("scenario: at least one dam is required")
	}

	seen := make(map[string]bool, len(s.Dams))
	for i, dam := range s.Dams {
		if dam.Name == "" {
			return fmt.Errorf("scenario: dam %d has no name", i)
		}
		if seen[dam.Name] {
			return fmt.Errorf("scenario: duplicate dam name %q", dam.Name)
		}
		seen[dam.Name] = true
		if _, err := ParseDirection(dam.Direction); err != nil {
			return fmt.Errorf("scenario: dam %q: %w", dam.Name, err)
		}
	}
	return nil
}

// Points converts the scenario's dam sites to Points in scenario order.
func (s *Scenario) Points() []Point {
	points := make([]Point, len(s.Dams))
	for i, dam := range s.Dams {
		points[i] = Point{
			ID:         dam.Name,
			Name:       dam.Name,
			CRS:        s.CRS,
			Coordinate: orb.Point{dam.X, dam.Y},
			Timestamp:  dam.Commissioned,
		}
	}
	return points
}

// Directions returns the per-point direction map for BuildRegions.
// Validate must have passed; unknown direction strings panic here.
func (s *Scenario) Directions() map[string]Direction {
	directions := make(map[string]Direction, len(s.Dams))
	for _, dam := range s.Dams {
		d, err := ParseDirection(dam.Direction)
		if err != nil {
			panic(fmt.Sprintf("unvalidated scenario: %v", err))
		}
		directions[dam.Name] = d
	}
	return directions
}

// BuildRegions runs the full scenario against a network. This is the
// high-level entry point: validation, direction lookup, clipping, and
// buffering in one call.
//
// Example:
//
//	scenario, err := riverclip.LoadScenario("dams.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	segments, buffers, errs := scenario.BuildRegions(network,
//	    riverclip.DefaultBuildOptions())
func (s *Scenario) BuildRegions(network *LineNetwork, opts BuildOptions) ([]Region, []Region, []error) {
	return BuildRegions(s.Points(), network, s.ClipDistance, s.BufferFraction, s.Directions(), opts)
}
