package model

import (
	"math"
	"testing"
)

func TestPoint2D_DistanceTo(t *testing.T) {
	a := Point2D{X: 0, Y: 0}
	b := Point2D{X: 3, Y: 4}
	if got := a.DistanceTo(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("expected distance 5, got %g", got)
	}
}

func TestRect_Area(t *testing.T) {
	r := Rect{Width: 10, Length: 5}
	if got := r.Area(); got != 50 {
		t.Errorf("expected area 50, got %g", got)
	}
}

func TestCounts_Total(t *testing.T) {
	c := Counts{Lines: 3, Arcs: 1, Circles: 2, Polylines: 4}
	if got := c.Total(); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}

func TestConstructors_SetKind(t *testing.T) {
	if e := NewLine(Point2D{}, Point2D{X: 1}); e.Kind != KindLine {
		t.Errorf("expected %q, got %q", KindLine, e.Kind)
	}
	if e := NewArc(Point2D{}, 2, 0, math.Pi); e.Kind != KindArc {
		t.Errorf("expected %q, got %q", KindArc, e.Kind)
	}
	if e := NewCircle(Point2D{}, 2); e.Kind != KindCircle {
		t.Errorf("expected %q, got %q", KindCircle, e.Kind)
	}
	pl := NewPolyline([]Point2D{{X: 0}, {X: 1}}, nil, false)
	if pl.Kind != KindPolyline {
		t.Errorf("expected %q, got %q", KindPolyline, pl.Kind)
	}
}

func TestNewRecordID_ShortAndUnique(t *testing.T) {
	a := NewRecordID()
	b := NewRecordID()
	if len(a) != 8 {
		t.Errorf("expected 8-char id, got %q", a)
	}
	if a == b {
		t.Error("expected unique ids")
	}
}
