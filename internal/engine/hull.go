package engine

import (
	"sort"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

// cross returns the z component of (a-o) × (b-o). Positive means the
// turn o→a→b is counter-clockwise.
func cross(o, a, b model.Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// convexHull computes the convex hull with the monotone chain
// algorithm. The hull is returned counter-clockwise without the first
// point repeated. Degenerate inputs are handled explicitly: a single
// point yields a one-point hull, and a fully collinear set yields the
// two extreme points.
func convexHull(points []model.Point2D) []model.Point2D {
	pts := make([]model.Point2D, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Drop exact duplicates so they cannot produce zero-length hull edges.
	uniq := pts[:0]
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		uniq = append(uniq, p)
	}
	pts = uniq

	if len(pts) < 3 {
		return pts
	}

	var lower []model.Point2D
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []model.Point2D
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}
