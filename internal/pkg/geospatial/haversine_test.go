package geospatial_test

import (
	"math"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/pkg/geospatial"
)

func TestDistanceMiles(t *testing.T) {
	// Seattle to Portland is roughly 145 miles.
	got := geospatial.DistanceMiles(47.6062, -122.3321, 45.5152, -122.6784)
	if got < 140 || got > 150 {
		t.Errorf("expected ~145 miles, got %v", got)
	}
	if d := geospatial.DistanceMiles(47.6, -122.3, 47.6, -122.3); d != 0 {
		t.Errorf("expected zero distance, got %v", d)
	}
}

func TestBoundingBox(t *testing.T) {
	minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(47.6, -122.3, 0)
	if minLat != 47.6 || maxLat != 47.6 || minLon != -122.3 || maxLon != -122.3 {
		t.Errorf("zero radius must be degenerate, got %v %v %v %v", minLat, minLon, maxLat, maxLon)
	}

	minLat, _, maxLat, _ = geospatial.BoundingBox(47.6, -122.3, 1000)
	if math.Abs((maxLat-minLat)/2-1000.0/111320.0) > 1e-9 {
		t.Errorf("unexpected latitude span %v", maxLat-minLat)
	}

	minLat, minLon, maxLat, maxLon = geospatial.BoundingBox(90, 0, 5000)
	if maxLat > 90 || minLat < -90 || minLon < -180 || maxLon > 180 {
		t.Errorf("box must stay in range, got %v %v %v %v", minLat, minLon, maxLat, maxLon)
	}
}
