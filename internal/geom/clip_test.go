package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

// horizontalLine is a straight west-east river used by most cases.
var horizontalLine = orb.MultiLineString{
	{{-10, 0}, {10, 0}},
}

func TestClipToDisk(t *testing.T) {
	tests := []struct {
		name     string
		network  orb.MultiLineString
		center   orb.Point
		radius   float64
		wantMinX float64
		wantMaxX float64
		empty    bool
	}{
		{
			name:     "line through center",
			network:  horizontalLine,
			center:   orb.Point{0, 0},
			radius:   5,
			wantMinX: -5,
			wantMaxX: 5,
		},
		{
			name:     "disk covers whole line",
			network:  horizontalLine,
			center:   orb.Point{0, 0},
			radius:   100,
			wantMinX: -10,
			wantMaxX: 10,
		},
		{
			name:    "disk far from line",
			network: horizontalLine,
			center:  orb.Point{100, 100},
			radius:  5,
			empty:   true,
		},
		{
			name: "only near component retained",
			network: orb.MultiLineString{
				{{-10, 0}, {10, 0}},
				{{-10, 50}, {10, 50}},
			},
			center:   orb.Point{0, 0},
			radius:   5,
			wantMinX: -5,
			wantMaxX: 5,
		},
		{
			name:    "tangent line excluded",
			network: orb.MultiLineString{{{-10, 5}, {10, 5}}},
			center:  orb.Point{0, 0},
			radius:  5,
			empty:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewNetworkIndex(tt.network)
			got := idx.ClipToDisk(tt.center, tt.radius)

			if tt.empty {
				if len(got) != 0 {
					t.Fatalf("expected empty result, got %d components", len(got))
				}
				return
			}

			if len(got) == 0 {
				t.Fatal("expected non-empty result")
			}
			bound := got.Bound()
			if math.Abs(bound.Min[0]-tt.wantMinX) > 1e-9 {
				t.Errorf("min x = %f, want %f", bound.Min[0], tt.wantMinX)
			}
			if math.Abs(bound.Max[0]-tt.wantMaxX) > 1e-9 {
				t.Errorf("max x = %f, want %f", bound.Max[0], tt.wantMaxX)
			}
		})
	}
}

// TestClipToDiskPreservesConnectivity checks that a polyline crossing the
// disk stays one piece instead of being split per segment.
func TestClipToDiskPreservesConnectivity(t *testing.T) {
	network := orb.MultiLineString{
		{{-10, 0}, {-2, 0}, {0, 0}, {3, 0}, {10, 0}},
	}
	idx := NewNetworkIndex(network)
	got := idx.ClipToDisk(orb.Point{0, 0}, 5)

	if len(got) != 1 {
		t.Fatalf("expected one connected component, got %d", len(got))
	}
	if got[0][0][0] != -5 || got[0][len(got[0])-1][0] != 5 {
		t.Errorf("component spans [%f, %f], want [-5, 5]",
			got[0][0][0], got[0][len(got[0])-1][0])
	}
}

// TestClipToDiskLeavingAndReentering checks that a line which exits the
// disk and comes back is split into two components.
func TestClipToDiskLeavingAndReentering(t *testing.T) {
	// Dips far south between x=-1 and x=1, well outside the unit disk.
	network := orb.MultiLineString{
		{{-3, 0}, {-1, 0}, {0, -50}, {1, 0}, {3, 0}},
	}
	idx := NewNetworkIndex(network)
	got := idx.ClipToDisk(orb.Point{0, 0}, 1)

	if len(got) != 2 {
		t.Fatalf("expected two components, got %d", len(got))
	}
}

func TestCropToBound(t *testing.T) {
	network := orb.MultiLineString{{{-5, 0}, {5, 0}}}

	tests := []struct {
		name     string
		bound    orb.Bound
		wantMinX float64
		wantMaxX float64
		empty    bool
	}{
		{
			name:     "west half",
			bound:    orb.Bound{Min: orb.Point{-5, 0}, Max: orb.Point{0, 0}},
			wantMinX: -5,
			wantMaxX: 0,
		},
		{
			name:     "east half",
			bound:    orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{5, 0}},
			wantMinX: 0,
			wantMaxX: 5,
		},
		{
			name:  "zero width bound",
			bound: orb.Bound{Min: orb.Point{2, 0}, Max: orb.Point{2, 0}},
			empty: true,
		},
		{
			name:  "inverted bound",
			bound: orb.Bound{Min: orb.Point{3, 0}, Max: orb.Point{-3, 0}},
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CropToBound(network, tt.bound)

			if tt.empty {
				if len(got) != 0 {
					t.Fatalf("expected empty result, got %d components", len(got))
				}
				return
			}

			if len(got) == 0 {
				t.Fatal("expected non-empty result")
			}
			bound := got.Bound()
			if math.Abs(bound.Min[0]-tt.wantMinX) > 1e-9 {
				t.Errorf("min x = %f, want %f", bound.Min[0], tt.wantMinX)
			}
			if math.Abs(bound.Max[0]-tt.wantMaxX) > 1e-9 {
				t.Errorf("max x = %f, want %f", bound.Max[0], tt.wantMaxX)
			}
		})
	}
}

// TestClipSegmentToDisk exercises the quadratic directly.
func TestClipSegmentToDisk(t *testing.T) {
	tests := []struct {
		name   string
		a, b   orb.Point
		radius float64
		want   [2]orb.Point
		ok     bool
	}{
		{
			name:   "crossing segment trimmed both ends",
			a:      orb.Point{-10, 0},
			b:      orb.Point{10, 0},
			radius: 5,
			want:   [2]orb.Point{{-5, 0}, {5, 0}},
			ok:     true,
		},
		{
			name:   "segment fully inside",
			a:      orb.Point{-1, 0},
			b:      orb.Point{1, 0},
			radius: 5,
			want:   [2]orb.Point{{-1, 0}, {1, 0}},
			ok:     true,
		},
		{
			name:   "segment outside",
			a:      orb.Point{10, 10},
			b:      orb.Point{20, 10},
			radius: 5,
			ok:     false,
		},
		{
			name:   "degenerate segment",
			a:      orb.Point{1, 0},
			b:      orb.Point{1, 0},
			radius: 5,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := clipSegmentToDisk(tt.a, tt.b, orb.Point{0, 0}, tt.radius)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			for i := range got {
				if math.Abs(got[i][0]-tt.want[i][0]) > 1e-9 || math.Abs(got[i][1]-tt.want[i][1]) > 1e-9 {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
