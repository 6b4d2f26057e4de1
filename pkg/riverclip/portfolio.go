package riverclip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Asset is a region packaged for the indicator-calculation boundary: a
// stable identifier, the geometry, and flat attributes that must survive the
// round trip through external tooling unchanged.
type Asset struct {
	// ID is a generated unique identifier.
	ID string

	// Name is a human-readable label, usually "<dam>-<kind>".
	Name string

	// Kind is the region category label ("upstream-segment" or
	// "point-buffer").
	Kind string

	// PointID links back to the source point.
	PointID string

	// Geometry is the region geometry.
	Geometry orb.MultiPolygon

	// Attributes carries flat string metadata.
	Attributes map[string]string
}

// IndicatorRow is one observation in the long-format indicator table: a
// value for one variable over one asset at one time.
type IndicatorRow struct {
	Timestamp time.Time `json:"timestamp"`
	Variable  string    `json:"variable"`
	Unit      string    `json:"unit"`
	Value     float64   `json:"value"`
}

// Portfolio is a named collection of assets plus their indicator tables,
// keyed by asset ID.
type Portfolio struct {
	Name       string
	Assets     []Asset
	Indicators map[string][]IndicatorRow
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(name string) *Portfolio {
	return &Portfolio{
		Name:       name,
		Indicators: make(map[string][]IndicatorRow),
	}
}

// AddRegion wraps a region as an asset and adds it to the portfolio.
// Empty regions are accepted: a zero-area asset is a meaningful signal for
// the analyst, not something to drop silently.
func (p *Portfolio) AddRegion(r Region, name string) Asset {
	asset := Asset{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     r.Kind.String(),
		PointID:  r.PointID,
		Geometry: r.Geometry,
	}
	p.Assets = append(p.Assets, asset)
	return asset
}

// AddIndicators appends indicator rows for an asset. The asset must already
// be in the portfolio.
func (p *Portfolio) AddIndicators(assetID string, rows []IndicatorRow) error {
	found := false
	for _, a := range p.Assets {
		if a.ID == assetID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("portfolio %q: unknown asset %q", p.Name, assetID)
	}
	p.Indicators[assetID] = append(p.Indicators[assetID], rows...)
	return nil
}

// DataFetcher is the boundary to the resource-fetch collaborator: given AOI
// extents and named dataset requests, it stages raster/vector data clipped
// to those extents and returns readable handles keyed by dataset name.
// Implementations live outside this module.
type DataFetcher interface {
	Fetch(ctx context.Context, extents []orb.Bound, datasets []string, dir string) (map[string]string, error)
}

// IndicatorCalculator is the boundary to the indicator-calculation
// collaborator: given assets and requested indicator names, it returns the
// long-format rows per asset ID. Asset identifier, geometry, and attributes
// must be preserved across the call. Implementations live outside this
// module.
type IndicatorCalculator interface {
	Calculate(ctx context.Context, assets []Asset, indicators []string) (map[string][]IndicatorRow, error)
}

// PortfolioStore is the boundary to the serialization collaborator: it
// persists a portfolio into a two-layer geospatial container and can
// reconstruct it. The GeoJSON container below is the in-tree reference
// implementation of the layout; GeoPackage-backed stores live outside this
// module.
type PortfolioStore interface {
	Save(ctx context.Context, p *Portfolio, path string) error
	Load(ctx context.Context, path string) (*Portfolio, error)
}

// indicatorRecord is one row of the flat indicator layer, joined to the
// geometry layer by asset ID.
type indicatorRecord struct {
	AssetID string `json:"asset_id"`
	IndicatorRow
}

// portfolioDocument is the two-layer container: a geometry+attribute layer
// (GeoJSON FeatureCollection) and a long-format indicator layer.
type portfolioDocument struct {
	Name       string                     `json:"name"`
	Assets     *geojson.FeatureCollection `json:"assets"`
	Indicators []indicatorRecord          `json:"indicators"`
}

// EncodePortfolio serializes a portfolio to the two-layer JSON container.
// Asset order and per-asset indicator row order are preserved.
func EncodePortfolio(p *Portfolio) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	var records []indicatorRecord

	for _, asset := range p.Assets {
		feature := geojson.NewFeature(asset.Geometry)
		feature.Properties["id"] = asset.ID
		feature.Properties["name"] = asset.Name
		feature.Properties["kind"] = asset.Kind
		feature.Properties["point_id"] = asset.PointID
		for k, v := range asset.Attributes {
			feature.Properties["attr:"+k] = v
		}
		fc.Append(feature)

		for _, row := range p.Indicators[asset.ID] {
			records = append(records, indicatorRecord{AssetID: asset.ID, IndicatorRow: row})
		}
	}

	return json.Marshal(portfolioDocument{
		Name:       p.Name,
		Assets:     fc,
		Indicators: records,
	})
}

// DecodePortfolio reconstructs a portfolio from the two-layer container.
func DecodePortfolio(data []byte) (*Portfolio, error) {
	var doc portfolioDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}

	p := NewPortfolio(doc.Name)
	if doc.Assets != nil {
		for i, feature := range doc.Assets.Features {
			geometry, err := toMultiPolygon(feature.Geometry)
			if err != nil {
				return nil, fmt.Errorf("decode portfolio: asset %d: %w", i, err)
			}
			asset := Asset{
				ID:       stringProp(feature, "id"),
				Name:     stringProp(feature, "name"),
				Kind:     stringProp(feature, "kind"),
				PointID:  stringProp(feature, "point_id"),
				Geometry: geometry,
			}
			for k, v := range feature.Properties {
				if len(k) > 5 && k[:5] == "attr:" {
					if s, ok := v.(string); ok {
						if asset.Attributes == nil {
							asset.Attributes = make(map[string]string)
						}
						asset.Attributes[k[5:]] = s
					}
				}
			}
			if asset.ID == "" {
				return nil, fmt.Errorf("decode portfolio: asset %d has no id", i)
			}
			p.Assets = append(p.Assets, asset)
		}
	}

	for _, record := range doc.Indicators {
		p.Indicators[record.AssetID] = append(p.Indicators[record.AssetID], record.IndicatorRow)
	}
	return p, nil
}

// toMultiPolygon normalizes decoded GeoJSON geometry to a MultiPolygon.
func toMultiPolygon(g orb.Geometry) (orb.MultiPolygon, error) {
	switch geometry := g.(type) {
	case nil:
		return orb.MultiPolygon{}, nil
	case orb.MultiPolygon:
		return geometry, nil
	case orb.Polygon:
		return orb.MultiPolygon{geometry}, nil
	default:
		return nil, fmt.Errorf("unexpected geometry type %s", g.GeoJSONType())
	}
}

// stringProp reads a string property, returning "" when absent.
func stringProp(f *geojson.Feature, key string) string {
	if s, ok := f.Properties[key].(string); ok {
		return s
	}
	return ""
}
