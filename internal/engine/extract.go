// Package engine implements the geometric measurement core: primitive
// extraction, bounding geometry, endpoint connectivity, and the
// assembly of the final measurement record.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

var (
	// ErrMalformedEntity marks entities with bad geometric parameters
	// (non-positive radius, degenerate polyline). The entity is skipped
	// and reported; the rest of the computation continues.
	ErrMalformedEntity = errors.New("malformed entity")

	// ErrInvalidTolerance marks a negative join tolerance. This is a
	// configuration error and aborts the whole call.
	ErrInvalidTolerance = errors.New("invalid tolerance")
)

// maxArcStep is the largest angular step between sampled arc points.
// Sampling every 5° plus both endpoints and the quadrant extrema keeps
// the sampled polygon's bounding geometry from under-estimating the
// true arc extent.
const maxArcStep = 5 * math.Pi / 180

// Extraction is the canonical polyline-like form of an entity: an
// ordered point sample of its boundary, its exact analytic length, and
// its two terminal endpoints. Closed entities (circles, closed
// polylines) have no endpoints and cannot participate in joins.
type Extraction struct {
	Points []model.Point2D
	Length float64
	Start  model.Point2D
	End    model.Point2D
	Closed bool
}

// HasEndpoints reports whether the entity exposes terminal points.
func (x Extraction) HasEndpoints() bool {
	return !x.Closed
}

// Extract normalizes one entity. Lengths are exact (analytic), not
// sums over the sampled points.
func Extract(e model.Entity) (Extraction, error) {
	switch e.Kind {
	case model.KindLine:
		return Extraction{
			Points: []model.Point2D{e.Start, e.End},
			Length: e.Start.DistanceTo(e.End),
			Start:  e.Start,
			End:    e.End,
		}, nil

	case model.KindArc:
		if e.Radius <= 0 {
			return Extraction{}, fmt.Errorf("%w: arc radius %g", ErrMalformedEntity, e.Radius)
		}
		span := arcSpan(e.StartAngle, e.EndAngle)
		pts := arcPoints(e.Center, e.Radius, e.StartAngle, span)
		return Extraction{
			Points: pts,
			Length: e.Radius * span,
			Start:  pts[0],
			End:    pts[len(pts)-1],
		}, nil

	case model.KindCircle:
		if e.Radius <= 0 {
			return Extraction{}, fmt.Errorf("%w: circle radius %g", ErrMalformedEntity, e.Radius)
		}
		return Extraction{
			Points: arcPoints(e.Center, e.Radius, 0, 2*math.Pi),
			Length: 2 * math.Pi * e.Radius,
			Closed: true,
		}, nil

	case model.KindPolyline:
		return extractPolyline(e)

	default:
		return Extraction{}, fmt.Errorf("%w: unsupported entity type %q", ErrMalformedEntity, e.Kind)
	}
}

// ExtractAll extracts every entity, collecting malformed ones into a
// side list instead of aborting. The returned slice is index-aligned
// with the input; skipped entries have nil Points.
func ExtractAll(entities []model.Entity) ([]Extraction, []model.SkippedEntity) {
	exts := make([]Extraction, len(entities))
	var skipped []model.SkippedEntity
	for i, e := range entities {
		x, err := Extract(e)
		if err != nil {
			skipped = append(skipped, model.SkippedEntity{Index: i, Reason: err.Error()})
			continue
		}
		exts[i] = x
	}
	return exts, skipped
}

// arcSpan returns the CCW angular span from start to end, normalized to
// (0, 2π]. DXF arcs run counter-clockwise; an end angle numerically
// below the start angle means the arc wraps through 0°.
func arcSpan(start, end float64) float64 {
	span := math.Mod(end-start, 2*math.Pi)
	if span <= 0 {
		span += 2 * math.Pi
	}
	return span
}

// arcPoints samples an arc of the given CCW span starting at startAngle.
// Both true endpoints are always included, the step never exceeds
// maxArcStep, and any quadrant angle (0°/90°/180°/270°) inside the span
// is sampled exactly so the axis extremes of the arc are hit.
func arcPoints(center model.Point2D, radius, startAngle, span float64) []model.Point2D {
	a0 := math.Mod(startAngle, 2*math.Pi)
	if a0 < 0 {
		a0 += 2 * math.Pi
	}

	steps := int(math.Ceil(span / maxArcStep))
	if steps < 1 {
		steps = 1
	}
	angles := make([]float64, 0, steps+5)
	for i := 0; i <= steps; i++ {
		angles = append(angles, a0+span*float64(i)/float64(steps))
	}
	for k := 0; k < 4; k++ {
		q := float64(k) * math.Pi / 2
		for q < a0 {
			q += 2 * math.Pi
		}
		if q <= a0+span {
			angles = append(angles, q)
		}
	}
	sort.Float64s(angles)

	pts := make([]model.Point2D, 0, len(angles))
	for i, a := range angles {
		if i > 0 && a-angles[i-1] < 1e-12 {
			continue
		}
		pts = append(pts, model.Point2D{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}

// extractPolyline decomposes a polyline into straight and bulge (arc)
// sub-segments, concatenating their samples and summing exact lengths.
func extractPolyline(e model.Entity) (Extraction, error) {
	n := len(e.Vertices)
	if n < 2 {
		return Extraction{}, fmt.Errorf("%w: polyline with %d vertices", ErrMalformedEntity, n)
	}

	closed := e.Closed
	if !closed && n > 2 && e.Vertices[0].DistanceTo(e.Vertices[n-1]) < 1e-9 {
		closed = true
	}

	segEnd := n - 1
	if closed {
		segEnd = n // include the closing segment back to the first vertex
	}

	var pts []model.Point2D
	var length float64
	for i := 0; i < segEnd; i++ {
		from := e.Vertices[i]
		to := e.Vertices[(i+1)%n]

		bulge := 0.0
		if i < len(e.Bulges) {
			bulge = e.Bulges[i]
		}

		if math.Abs(bulge) < 1e-9 || from.DistanceTo(to) < 1e-12 {
			pts = append(pts, from)
			length += from.DistanceTo(to)
			continue
		}

		arcPts, arcLen := bulgeArc(from, to, bulge)
		pts = append(pts, arcPts[:len(arcPts)-1]...)
		length += arcLen
	}
	if !closed {
		pts = append(pts, e.Vertices[n-1])
	}

	x := Extraction{Points: pts, Length: length, Closed: closed}
	if !closed {
		x.Start = e.Vertices[0]
		x.End = e.Vertices[n-1]
	}
	return x, nil
}

// bulgeArc samples the arc between two polyline vertices described by a
// DXF bulge factor (the tangent of a quarter of the included angle) and
// returns the sampled points, endpoints included, plus the exact arc
// length. A positive bulge sweeps CCW, a negative one CW.
func bulgeArc(p1, p2 model.Point2D, bulge float64) ([]model.Point2D, float64) {
	chord := p1.DistanceTo(p2)
	included := 4 * math.Atan(math.Abs(bulge))
	radius := chord / (2 * math.Sin(included/2))
	length := radius * included

	// Center lies on the chord's perpendicular bisector, radius minus
	// sagitta away from the midpoint. A CCW (positive) arc keeps its
	// center on the left of the travel direction, a CW arc on the right.
	sagitta := math.Abs(bulge) * chord / 2
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	perpX := -(p2.Y - p1.Y) / chord
	perpY := (p2.X - p1.X) / chord
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	center := model.Point2D{X: mx + perpX*dist, Y: my + perpY*dist}

	startAngle := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	if bulge > 0 {
		return arcPoints(center, radius, startAngle, included), length
	}

	// CW sweep: sample the reversed CCW arc from p2 and flip it.
	endAngle := math.Atan2(p2.Y-center.Y, p2.X-center.X)
	pts := arcPoints(center, radius, endAngle, included)
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts, length
}
