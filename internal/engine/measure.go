package engine

import (
	"github.com/piwi3910/dxfmeasure/internal/model"
)

// Options configures one measurement call.
type Options struct {
	// JoinTol is the endpoint merge tolerance in drawing units.
	// Zero (the default) requires exact coincidence; negative is a
	// configuration error.
	JoinTol float64

	// Unit is the requested output unit. Defaults to millimeters.
	Unit model.Unit

	// SourceUnit is the unit the drawing coordinates are expressed in,
	// typically resolved from the DXF $INSUNITS header. Unspecified
	// passes values through unscaled.
	SourceUnit model.Unit
}

// Measure computes the full measurement record for one entity set.
// Malformed entities are skipped and reported in the record; an empty
// input yields a zero-valued record with no error. The input is not
// mutated and the engine keeps no state between calls.
func Measure(entities []model.Entity, opts Options) (model.Measurement, error) {
	if opts.Unit == "" {
		opts.Unit = model.Millimeters
	}
	if opts.SourceUnit == "" {
		opts.SourceUnit = model.Unspecified
	}

	exts, skipped := ExtractAll(entities)

	comps, err := Components(exts, opts.JoinTol)
	if err != nil {
		return model.Measurement{}, err
	}

	m := model.Measurement{
		ID:      model.NewRecordID(),
		Unit:    opts.Unit,
		Skipped: skipped,
	}

	// Scale factor from drawing units into the output unit. Lengths are
	// measured in drawing units and converted once at assembly.
	scale := model.Convert(1, opts.SourceUnit, opts.Unit)
	inchScale := model.Convert(1, opts.SourceUnit, model.Inches)

	// Hull input: every entity's sampled boundary, except circles,
	// which contribute the 4 corners of their enclosing square. A
	// circle's minimum bounding rectangle under any rotation is that
	// square, so the closed form avoids sampling error.
	var points []model.Point2D
	componentOf := make(map[int]int)
	for _, c := range comps {
		for _, idx := range c.Entities {
			componentOf[idx] = c.ID
		}
	}
	var totalLen, longestLen float64
	for i, e := range entities {
		x := exts[i]
		if x.Points == nil {
			continue
		}

		if e.Kind == model.KindCircle {
			points = append(points,
				model.Point2D{X: e.Center.X - e.Radius, Y: e.Center.Y - e.Radius},
				model.Point2D{X: e.Center.X - e.Radius, Y: e.Center.Y + e.Radius},
				model.Point2D{X: e.Center.X + e.Radius, Y: e.Center.Y - e.Radius},
				model.Point2D{X: e.Center.X + e.Radius, Y: e.Center.Y + e.Radius},
			)
		} else {
			points = append(points, x.Points...)
		}

		// Vertex count is geometric: polyline vertices, a line's two
		// endpoints, zero for analytic curves. Sample counts are an
		// extraction detail and never surface in diagnostics.
		vertices := 0
		switch e.Kind {
		case model.KindLine:
			m.Counts.Lines++
			vertices = 2
		case model.KindArc:
			m.Counts.Arcs++
		case model.KindCircle:
			m.Counts.Circles++
		case model.KindPolyline:
			m.Counts.Polylines++
			vertices = len(e.Vertices)
		}

		totalLen += x.Length
		if x.Length > longestLen {
			longestLen = x.Length
		}

		info := model.EntityInfo{
			Index:     i,
			Type:      e.Kind,
			Layer:     e.Layer,
			Vertices:  vertices,
			Length:    model.Round3(x.Length * scale),
			Closed:    x.Closed,
			Component: componentOf[i],
		}
		if !x.Closed {
			info.Start = convertPoint(x.Start, scale)
			info.End = convertPoint(x.End, scale)
		}
		m.Entities = append(m.Entities, info)
	}

	b := ComputeBounds(points)
	m.AABB = convertRect(b.AABB, scale)
	m.OBB = convertRect(b.OBB, scale)
	m.MinMaxRect = convertRect(b.MinMaxRect, scale)
	m.MinSquareSide = model.Round3(b.SquareSide * scale)

	m.ObjectWidth = m.AABB.Width
	m.ObjectLength = m.AABB.Length
	// Legacy quoting field: AABB area in square inches, whatever the
	// requested output unit.
	m.SquareInches = model.Round3(b.AABB.Width * inchScale * b.AABB.Length * inchScale)

	m.TotalLength = model.Round3(totalLen * scale)
	m.LongestLength = model.Round3(longestLen * scale)

	m.NumberOfPierces = m.Counts.Total()
	m.ConnectedPierces = len(comps)
	m.Components = comps

	return m, nil
}

func convertPoint(p model.Point2D, scale float64) model.Point2D {
	return model.Point2D{X: model.Round3(p.X * scale), Y: model.Round3(p.Y * scale)}
}

func convertRect(r model.Rect, scale float64) model.Rect {
	return model.Rect{
		Width:    model.Round3(r.Width * scale),
		Length:   model.Round3(r.Length * scale),
		AngleDeg: model.Round3(r.AngleDeg),
	}
}
