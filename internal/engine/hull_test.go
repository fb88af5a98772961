package engine

import (
	"testing"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

func TestConvexHull_Square(t *testing.T) {
	pts := []model.Point2D{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 2, Y: 2}, // interior
		{X: 2, Y: 0}, // on an edge
	}
	hull := convexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull points, got %d: %v", len(hull), hull)
	}
	for _, p := range hull {
		if p == (model.Point2D{X: 2, Y: 2}) || p == (model.Point2D{X: 2, Y: 0}) {
			t.Errorf("interior or edge point %v must not be on the hull", p)
		}
	}
}

func TestConvexHull_CCWOrientation(t *testing.T) {
	hull := convexHull([]model.Point2D{
		{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3},
	})
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull points, got %d", len(hull))
	}
	// Shoelace area is positive for CCW polygons.
	var area float64
	for i := range hull {
		j := (i + 1) % len(hull)
		area += hull[i].X*hull[j].Y - hull[j].X*hull[i].Y
	}
	if area <= 0 {
		t.Errorf("expected CCW hull, shoelace sum %g", area)
	}
}

func TestConvexHull_CollinearReturnsExtremes(t *testing.T) {
	hull := convexHull([]model.Point2D{
		{X: 1, Y: 1}, {X: 3, Y: 3}, {X: 2, Y: 2}, {X: 0, Y: 0},
	})
	if len(hull) != 2 {
		t.Fatalf("expected 2 extreme points for collinear input, got %d: %v", len(hull), hull)
	}
	if hull[0] != (model.Point2D{X: 0, Y: 0}) || hull[1] != (model.Point2D{X: 3, Y: 3}) {
		t.Errorf("unexpected extremes: %v", hull)
	}
}

func TestConvexHull_Degenerate(t *testing.T) {
	if hull := convexHull(nil); len(hull) != 0 {
		t.Errorf("expected empty hull, got %v", hull)
	}
	if hull := convexHull([]model.Point2D{{X: 1, Y: 2}}); len(hull) != 1 {
		t.Errorf("expected single-point hull, got %v", hull)
	}
	// Duplicates collapse before hull construction.
	hull := convexHull([]model.Point2D{{X: 1, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 2}})
	if len(hull) != 1 {
		t.Errorf("expected single-point hull for duplicates, got %v", hull)
	}
}
