package engine

import (
	"math"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

// rectTieEps breaks near-ties between caliper candidates: a candidate
// replaces the incumbent only when its objective is smaller by more
// than this, so the first hull edge wins ties and results stay
// deterministic on symmetric inputs.
const rectTieEps = 1e-9

// Bounds holds the bounding-geometry descriptors for one point set, in
// drawing units and unrounded. The assembler applies unit conversion
// and rounding.
type Bounds struct {
	AABB       model.Rect
	OBB        model.Rect
	MinMaxRect model.Rect
	SquareSide float64
}

// ComputeBounds derives all bounding descriptors from the combined
// boundary points of the drawing. Zero or one point produces zero-sized
// descriptors; two points degrade to a zero-width rectangle aligned
// with the segment.
func ComputeBounds(points []model.Point2D) Bounds {
	var b Bounds
	if len(points) == 0 {
		return b
	}

	extX, extY := axisExtents(points)
	b.AABB = model.Rect{
		Width:  math.Max(extX, extY),
		Length: math.Min(extX, extY),
	}

	hull := convexHull(points)
	if len(hull) < 2 {
		return b
	}

	bestArea := math.Inf(1)
	bestSquare := math.Inf(1)

	// The sweep below only visits hull-edge orientations, and on a
	// rotated shape the axis alignment is not one of them. The
	// axis-aligned box is still an enclosing rectangle, so it seeds the
	// min-max search: a hull edge has to beat it outright, and the
	// min-max rectangle's longer side never exceeds the AABB's.
	b.MinMaxRect = orientedRect(extX, extY, 1, 0)
	bestMax := b.MinMaxRect.Width

	for i := range hull {
		p := hull[i]
		q := hull[(i+1)%len(hull)]
		edgeLen := p.DistanceTo(q)
		if edgeLen < 1e-12 {
			continue
		}
		ux := (q.X - p.X) / edgeLen
		uy := (q.Y - p.Y) / edgeLen

		// Extents of the hull along the edge direction and its normal.
		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, h := range hull {
			u := h.X*ux + h.Y*uy
			v := -h.X*uy + h.Y*ux
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		extU := maxU - minU
		extV := maxV - minV
		cand := orientedRect(extU, extV, ux, uy)

		if area := extU * extV; area < bestArea-rectTieEps {
			bestArea = area
			b.OBB = cand
		}
		if cand.Width < bestMax-rectTieEps {
			bestMax = cand.Width
			b.MinMaxRect = cand
		}
		// The tightest square at this orientation must cover the longer
		// side; hull edge directions are sufficient candidates by the
		// same supporting-line argument as for the OBB.
		if side := math.Max(extU, extV); side < bestSquare-rectTieEps {
			bestSquare = side
		}
	}
	b.SquareSide = bestSquare
	if math.IsInf(bestSquare, 1) {
		b.SquareSide = 0
	}
	return b
}

func axisExtents(points []model.Point2D) (extX, extY float64) {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// orientedRect builds a Rect from the extents along a unit direction
// (ux, uy) and its normal, reporting the longer side as Width and its
// direction as the angle.
func orientedRect(extU, extV, ux, uy float64) model.Rect {
	r := model.Rect{
		Width:  math.Max(extU, extV),
		Length: math.Min(extU, extV),
	}
	if extU >= extV {
		r.AngleDeg = normalizeAngleDeg(math.Atan2(uy, ux))
	} else {
		r.AngleDeg = normalizeAngleDeg(math.Atan2(ux, -uy))
	}
	return r
}

// normalizeAngleDeg maps a direction in radians to degrees in [0, 180).
// A bounding rectangle side has no orientation sign, so directions that
// differ by 180° are the same angle.
func normalizeAngleDeg(rad float64) float64 {
	deg := math.Mod(rad*180/math.Pi, 180)
	if deg < 0 {
		deg += 180
	}
	if deg >= 180 {
		deg -= 180
	}
	return deg
}
