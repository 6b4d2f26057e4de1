package riverclip

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/hydrograph/riverclip/internal/geom"
)

func diskRegion(id string, kind RegionKind, x, y, radius float64) Region {
	return Region{
		PointID:  id,
		Kind:     kind,
		Geometry: orb.MultiPolygon{geom.BufferPoint(orb.Point{x, y}, radius, geom.DefaultCircleSteps)},
	}
}

func TestRegionIndexQuery(t *testing.T) {
	regions := []Region{
		diskRegion("dam-1", KindPointBuffer, 0, 0, 5),
		diskRegion("dam-2", KindPointBuffer, 100, 100, 5),
		diskRegion("dam-3", KindPointBuffer, 102, 98, 5),
		{PointID: "dam-empty", Kind: KindUpstreamSegment}, // skipped, no geometry
	}

	idx := NewRegionIndex(regions)
	if idx.Len() != 3 {
		t.Fatalf("indexed %d regions, want 3", idx.Len())
	}

	tests := []struct {
		name    string
		bound   orb.Bound
		wantIDs map[string]bool
	}{
		{
			name:    "around origin",
			bound:   orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}},
			wantIDs: map[string]bool{"dam-1": true},
		},
		{
			name:    "around cluster",
			bound:   orb.Bound{Min: orb.Point{90, 90}, Max: orb.Point{110, 110}},
			wantIDs: map[string]bool{"dam-2": true, "dam-3": true},
		},
		{
			name:    "nothing there",
			bound:   orb.Bound{Min: orb.Point{-200, -200}, Max: orb.Point{-150, -150}},
			wantIDs: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Query(tt.bound)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d regions, want %d", len(got), len(tt.wantIDs))
			}
			for _, r := range got {
				if !tt.wantIDs[r.PointID] {
					t.Errorf("unexpected region %q", r.PointID)
				}
			}
		})
	}
}

func TestRegionIndexNearest(t *testing.T) {
	regions := []Region{
		diskRegion("dam-1", KindPointBuffer, 0, 0, 1),
		diskRegion("dam-2", KindPointBuffer, 50, 0, 1),
		diskRegion("dam-3", KindPointBuffer, 200, 0, 1),
	}
	idx := NewRegionIndex(regions)

	got := idx.Nearest(orb.Point{10, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("got %d regions, want 2", len(got))
	}
	if got[0].PointID != "dam-1" {
		t.Errorf("nearest = %q, want dam-1", got[0].PointID)
	}
	if got[1].PointID != "dam-2" {
		t.Errorf("second nearest = %q, want dam-2", got[1].PointID)
	}

	if regions := idx.Nearest(orb.Point{0, 0}, 0); regions != nil {
		t.Errorf("k=0 should return nil, got %v", regions)
	}
}
